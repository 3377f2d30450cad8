// Package catalog provides the offer catalog client: query parameter
// composition, a tolerant JSON-to-domain mapping layer, and the catalog
// operations built on top of a pluggable request collaborator.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/donaldgifford/offer-catalog/internal/metrics"
	"github.com/donaldgifford/offer-catalog/pkg/logger"
)

// Requester issues a GET request against url with the given query parameters
// and returns the decoded JSON body.
type Requester interface {
	Get(ctx context.Context, url string, params Params) (Node, error)
}

// TokenSource supplies the current user's API token.
type TokenSource interface {
	// UserToken returns the token if one is already known, without I/O.
	UserToken() (string, bool)
	// FetchUserToken returns the token, obtaining one if necessary.
	FetchUserToken(ctx context.Context) (string, error)
}

// Client implements the catalog operations. Build one per process and share it.
type Client struct {
	baseURL   string
	apiKey    string
	requester Requester
	tokens    TokenSource
	logger    *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the application API key used in derived URLs.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTokenSource sets the user token source used for redemption code images.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.Component(l, "catalog")
	}
}

// New creates a catalog client for the API rooted at baseURL.
func New(baseURL string, requester Requester, opts ...Option) *Client {
	c := &Client{
		baseURL:   NormalizeBaseURL(baseURL),
		requester: requester,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root, always ending in a slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NormalizeBaseURL ensures base ends with exactly one slash.
func NormalizeBaseURL(base string) string {
	return strings.TrimRight(base, "/") + "/"
}

// get issues one request and records its outcome under operation.
func (c *Client) get(ctx context.Context, operation, path string, params Params) (Node, error) {
	start := time.Now()
	n, err := c.requester.Get(ctx, c.baseURL+path, params)
	metrics.CatalogRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(operation, metrics.StatusError).Inc()
		c.logger.Debug("catalog request failed", "operation", operation, "path", path, "err", err)
		return Node{}, err
	}

	metrics.CatalogRequestsTotal.WithLabelValues(operation, metrics.StatusOK).Inc()
	return n, nil
}
