package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/offer-catalog/internal/metrics"
	"github.com/donaldgifford/offer-catalog/pkg/logger"
)

const (
	apiTokenHeader  = "API-Token"
	userTokenHeader = "User-Token"
)

// HTTPRequester implements Requester over net/http. It attaches the API key
// and the known user token as headers, optionally rate limits, and retries
// connection failures and 5xx/429 responses.
type HTTPRequester struct {
	client   *http.Client
	apiKey   string
	tokens   TokenSource
	limiter  *rate.Limiter
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// RequesterOption configures the HTTPRequester.
type RequesterOption func(*HTTPRequester)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) RequesterOption {
	return func(r *HTTPRequester) {
		r.client = hc
	}
}

// WithRequestAPIKey sends key in the API-Token header.
func WithRequestAPIKey(key string) RequesterOption {
	return func(r *HTTPRequester) {
		r.apiKey = key
	}
}

// WithUserTokens sends the known user token in the User-Token header.
// The requester never fetches a token itself.
func WithUserTokens(ts TokenSource) RequesterOption {
	return func(r *HTTPRequester) {
		r.tokens = ts
	}
}

// WithRateLimit limits outgoing requests to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) RequesterOption {
	return func(r *HTTPRequester) {
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRetry makes up to attempts tries per request, waiting delay (with
// backoff) between them. attempts below 1 is treated as 1.
func WithRetry(attempts uint, delay time.Duration) RequesterOption {
	return func(r *HTTPRequester) {
		r.attempts = max(attempts, 1)
		r.delay = delay
	}
}

// WithRequesterLogger sets the logger.
func WithRequesterLogger(l *slog.Logger) RequesterOption {
	return func(r *HTTPRequester) {
		r.logger = logger.Component(l, "requester")
	}
}

// NewHTTPRequester creates a requester with a 30s timeout and no retries.
func NewHTTPRequester(opts ...RequesterOption) *HTTPRequester {
	r := &HTTPRequester{
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: 1,
		delay:    200 * time.Millisecond,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get implements Requester. An empty response body yields an empty Node.
func (r *HTTPRequester) Get(ctx context.Context, rawURL string, params Params) (Node, error) {
	u := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + params.Encode()
	}

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return r.do(ctx, u)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			metrics.CatalogRetriesTotal.Inc()
			r.logger.Warn("retrying catalog request", "attempt", n+1, "url", rawURL, "err", err)
		}),
	)
	if err != nil {
		return Node{}, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return Node{}, nil
	}
	return ParseNode(body)
}

func (r *HTTPRequester) do(ctx context.Context, u string) ([]byte, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set(apiTokenHeader, r.apiKey)
	}
	if r.tokens != nil {
		if token, ok := r.tokens.UserToken(); ok {
			req.Header.Set(userTokenHeader, token)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: string(body)}

	n, err := ParseNode(body)
	if err != nil {
		return e
	}
	e.Code = n.Get("code").StringValue()
	if e.Code == "" {
		e.Code = n.Get("errorCode").StringValue()
	}
	e.Message = n.Get("message").StringValue()
	if e.Message == "" {
		e.Message = n.Get("error").StringValue()
	}
	return e
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError ||
			apiErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
