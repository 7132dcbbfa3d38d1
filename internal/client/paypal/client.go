package paypal

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	httpclient "github.com/linkreach/invoicer/internal/client/http"
)

const (
	// SandboxBaseURL is the default API host. Production overrides it via
	// configuration.
	SandboxBaseURL = "https://api-m.sandbox.paypal.com"

	tokenPath = "/v1/oauth2/token"

	// tokenExpiryMargin is subtracted from the advertised token lifetime so
	// a token is refreshed before it can expire mid-request.
	tokenExpiryMargin = 60 * time.Second
)

// TransportError indicates a remote call failed. It carries the HTTP status
// and raw response body when the remote rejected the request.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("paypal request failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("paypal request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// Client talks to the PayPal REST API. It exchanges client credentials for
// an access token on first use and caches the token in-process, refreshing
// it once expired. All operations run sequentially within one invocation so
// the cache needs only a simple mutex.
type Client struct {
	clientID string
	secret   string
	baseURL  string
	http     *httpclient.HTTPClient
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a PayPal API client.
func NewClient(clientID, secret string, options ...ClientOption) *Client {
	c := &Client{
		clientID: clientID,
		secret:   secret,
		baseURL:  SandboxBaseURL,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, option := range options {
		option(c)
	}
	// Built last so the HTTP client sees the final base URL and logger
	// regardless of option order. An injected client always wins.
	if c.http == nil {
		c.http = httpclient.NewHTTPClient(
			httpclient.WithBaseURL(c.baseURL),
			httpclient.WithLogger(c.logger),
		)
	}
	return c
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(client *httpclient.HTTPClient) ClientOption {
	return func(c *Client) {
		c.http = client
	}
}

// WithClock replaces the wall-clock source used for token expiry checks.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ensureToken returns a cached access token, exchanging client credentials
// for a fresh one when the cache is empty or expired.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	resp, err := c.http.Post(ctx, tokenPath, form,
		httpclient.WithFormBody(),
		httpclient.WithBasicAuth(c.clientID, c.secret),
	)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return "", errors.Wrap(err, "failed to obtain access token")
	}

	var token tokenResponse
	if err := c.http.ProcessJSONResponse(resp, &token); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}
	if token.AccessToken == "" {
		return "", errors.New("token response carried no access token")
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)

	c.logger.Debug("obtained paypal access token",
		zap.Int64("expires_in", token.ExpiresIn))

	return c.accessToken, nil
}

// AuthenticatedRequest performs one call against the PayPal API with a valid
// bearer token and returns the decoded JSON body. POST requests carry a
// PayPal-Request-Id header so the provider can deduplicate accidental
// resubmissions on its side.
func (c *Client) AuthenticatedRequest(ctx context.Context, method, path string, body interface{}) (map[string]interface{}, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	options := []httpclient.RequestOption{
		httpclient.WithBearerToken(token),
	}
	if method == "POST" {
		options = append(options, httpclient.WithHeader("PayPal-Request-Id", uuid.NewString()))
	}

	resp, err := c.http.DoRequest(ctx, method, path, body, options...)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &TransportError{
				StatusCode: httpErr.StatusCode,
				Body:       httpErr.Body,
				Err:        httpErr,
			}
		}
		return nil, &TransportError{Err: err}
	}

	defer resp.Body.Close()

	result := map[string]interface{}{}
	if resp.ContentLength == 0 || resp.StatusCode == 204 {
		return result, nil
	}
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "failed to decode response body")}
	}
	return result, nil
}
