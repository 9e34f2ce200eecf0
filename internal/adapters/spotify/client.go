// Package spotify implements the catalog port against the Spotify Web
// API using the client-credentials flow.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/crescendo-labs/backend/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	defaultMaxRetries  = 3
	defaultBackoff     = 500 * time.Millisecond
	defaultRateLimit   = 10 // requests per second
	defaultHTTPTimeout = 15 * time.Second
)

// Config carries the adapter's credentials and transport knobs.
type Config struct {
	ClientID     string  `koanf:"client_id"`
	ClientSecret string  `koanf:"client_secret"`
	BaseURL      string  `koanf:"base_url"`
	TokenURL     string  `koanf:"token_url"`
	MaxRetries   int     `koanf:"max_retries"`
	BackoffMs    int     `koanf:"backoff_ms"`
	RateLimit    float64 `koanf:"rate_limit"`
}

// Client is the HTTP catalog client. It paces requests, retries
// transient failures, and signs calls with a client-credentials token.
type Client struct {
	httpClient  *http.Client
	creds       *clientcredentials.Config
	baseURL     string
	limiter     *rate.Limiter
	logger      *log.Logger
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.Catalog = (*Client)(nil)

// NewClient constructs a Spotify catalog client.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	backoff := time.Duration(cfg.BackoffMs) * time.Millisecond
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if logger == nil {
		logger = log.Default()
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	return &Client{
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		creds:       creds,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:      logger.With("adapter", "spotify"),
		maxRetries:  cfg.MaxRetries,
		baseBackoff: backoff,
	}
}

// Authenticate obtains a fresh access credential before a request's
// discovery work begins. Credential failure here is fatal to the
// request; no partial result is meaningful without catalog access.
func (c *Client) Authenticate(ctx context.Context) error {
	token, err := c.creds.TokenSource(ctx).Token()
	if err != nil {
		return fmt.Errorf("spotify adapter: client credentials grant: %w", err)
	}
	c.logger.Debug("authenticated", "expires", token.Expiry)
	return nil
}

// do paces, signs, and dispatches one request with retry.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("spotify adapter: rate limit wait: %w", err)
	}

	token, err := c.creds.TokenSource(req.Context()).Token()
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: token: %w", err)
	}
	token.SetAuthHeader(req)

	return c.doRequestWithRetry(req)
}
