package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/docebot/docebot/config"
)

// NewTestConfig returns a config with sane defaults and fake credentials.
// Tests that hit an httptest server overwrite Docebo.Domain with its URL.
func NewTestConfig() *config.Config {
	return &config.Config{
		Docebo: config.DoceboConfig{
			Domain:       "test.docebosaas.com",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			Username:     "test-admin",
			Password:     "test-password",
		},
		Server: config.ServerConfig{
			Port:           8000,
			MaxRequestSize: 5242880,
		},
		Chat: config.ChatConfig{
			SearchPageSize:      50,
			DisplayLimit:        10,
			FetchTimeoutSeconds: 15,
			CSV: config.CSVConfig{
				MaxRows:   1000,
				BatchSize: 3,
				// Negative pause means no sleep between batches; zero would
				// fall back to the production default.
				BatchPauseMS: -1,
			},
		},
		Log: config.LogConfig{Level: "debug"},
	}
}

// GenerateRandomString returns a hex string of the given length.
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, (length+1)/2)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}
	return hex.EncodeToString(bytes)[:length], nil
}
