package docebo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/docebot/docebot/config"
	"github.com/docebot/docebot/internal"
	"github.com/docebot/docebot/pkg/models"

	"github.com/avast/retry-go/v4"
	"github.com/hashicorp/go-retryablehttp"
)

var log = internal.GetLogger()

const (
	tokenEndpoint = "/oauth2/token"
	// tokenSafetyMargin is subtracted from expires_in so we refresh slightly
	// before the LMS invalidates the token.
	tokenSafetyMargin = 30 * time.Second

	tokenFetchAttempts = 3
	requestRetryMax    = 3
)

var _ models.LMSClient = &Client{}

// Client is the Docebo API client. It owns a single cached OAuth2 bearer
// token, refreshed on expiry. Safe for concurrent use.
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string

	clientID     string
	clientSecret string
	username     string
	password     string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	// now is swapped out in tests to exercise token expiry.
	now func() time.Time
}

// NewClient creates a Docebo client from config. The domain may be a bare
// hostname (https is assumed) or a full base URL.
func NewClient(cfg *config.Config) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = requestRetryMax
	httpClient.Logger = internal.NewLeveledLogrus(log)

	return &Client{
		httpClient:   httpClient,
		baseURL:      normalizeDomain(cfg.Docebo.Domain),
		clientID:     cfg.Docebo.ClientID,
		clientSecret: cfg.Docebo.ClientSecret,
		username:     cfg.Docebo.Username,
		password:     cfg.Docebo.Password,
		now:          time.Now,
	}
}

func normalizeDomain(domain string) string {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), "/")
	if strings.Contains(domain, "://") {
		return domain
	}
	return "https://" + domain
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// token returns the cached bearer token, fetching a fresh one if the cache is
// empty or expired. On fetch failure the cache is cleared so the next call
// retries from scratch.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.tokenExpiry.After(c.now()) {
		return c.accessToken, nil
	}

	tok, err := retry.DoWithData(
		func() (*tokenResponse, error) { return c.fetchToken(ctx) },
		retry.Attempts(tokenFetchAttempts),
		retry.Context(ctx),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("retrying Docebo token fetch attempt #%d: %s", n, err)
		}),
	)
	if err != nil {
		c.accessToken = ""
		c.tokenExpiry = time.Time{}
		return "", fmt.Errorf("failed to obtain Docebo access token: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSafetyMargin)

	return c.accessToken, nil
}

func (c *Client) fetchToken(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("username", c.username)
	form.Set("password", c.password)
	form.Set("scope", "api")

	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+tokenEndpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, models.NewAPIError(tokenEndpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("unexpected token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token response contained no access_token")
	}

	return &tok, nil
}

// Request performs an authenticated call against the Docebo API and returns
// the raw JSON body. Non-2xx responses are surfaced as *models.APIError with
// the status and body text.
func (c *Client) Request(
	ctx context.Context,
	method string,
	endpoint string,
	body interface{},
	query url.Values,
) (json.RawMessage, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	requestURL := c.baseURL + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = strings.NewReader(string(encoded))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, models.NewAPIError(
			endpoint,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	return json.RawMessage(responseBody), nil
}
