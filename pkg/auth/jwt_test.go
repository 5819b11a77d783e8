package auth

import (
	"testing"

	"github.com/docebot/docebot/config"
	"github.com/docebot/docebot/pkg/testutils"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	secret, err := testutils.GenerateRandomString(32)
	require.NoError(t, err)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Secret: secret,
		},
	}

	token := GenerateJWT(cfg)

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Auth.Secret), nil
	})

	if assert.NoError(t, err) {
		assert.True(t, parsedToken.Valid)
	}
}
