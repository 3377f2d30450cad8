// Package user provides user token sources for the offer catalog API.
package user

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
	"github.com/donaldgifford/offer-catalog/internal/metrics"
	"github.com/donaldgifford/offer-catalog/pkg/logger"
)

// ErrNoToken is returned when the registration response carries no token.
var ErrNoToken = errors.New("registration returned no user token")

const registerPath = "user/register"

// Provider implements catalog.TokenSource by registering this device with
// the catalog API once and caching the issued user token. Thread-safe via mutex.
type Provider struct {
	registerURL string
	apiKey      string
	deviceID    string
	client      *http.Client
	logger      *slog.Logger

	mu    sync.Mutex
	token string
}

// Option configures the Provider.
type Option func(*Provider)

// WithDeviceID sets the device identifier sent on registration. Without it a
// random UUID is generated per Provider.
func WithDeviceID(id string) Option {
	return func(p *Provider) {
		p.deviceID = id
	}
}

// WithAPIKey sends key in the API-Token header on registration.
func WithAPIKey(key string) Option {
	return func(p *Provider) {
		p.apiKey = key
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		p.client = c
	}
}

// WithToken seeds the cache with a previously issued token.
func WithToken(token string) Option {
	return func(p *Provider) {
		p.token = token
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger.Component(l, "user")
	}
}

// NewProvider creates a Provider registering against the API rooted at baseURL.
func NewProvider(baseURL string, opts ...Option) *Provider {
	p := &Provider{
		registerURL: catalog.NormalizeBaseURL(baseURL) + registerPath,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.deviceID == "" {
		p.deviceID = uuid.NewString()
	}
	return p
}

// DeviceID returns the identifier this provider registers with.
func (p *Provider) DeviceID() string {
	return p.deviceID
}

// UserToken implements catalog.TokenSource.
func (p *Provider) UserToken() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, p.token != ""
}

// FetchUserToken implements catalog.TokenSource, registering on first use.
func (p *Provider) FetchUserToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" {
		metrics.TokenFetchesTotal.WithLabelValues("cached").Inc()
		return p.token, nil
	}

	token, err := p.registerLocked(ctx)
	if err != nil {
		metrics.TokenFetchesTotal.WithLabelValues(metrics.StatusError).Inc()
		return "", err
	}

	metrics.TokenFetchesTotal.WithLabelValues("registered").Inc()
	p.logger.Info("registered device", "device_id", p.deviceID)
	p.token = token
	return token, nil
}

type registerRequest struct {
	DeviceID string `json:"deviceId"`
}

type registerResponse struct {
	UserToken string `json:"userToken"`
}

func (p *Provider) registerLocked(ctx context.Context) (string, error) {
	payload, err := json.Marshal(registerRequest{DeviceID: p.deviceID})
	if err != nil {
		return "", fmt.Errorf("encoding registration request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.registerURL,
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("creating registration request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("API-Token", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing registration request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading registration response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf(
			"registration failed (status %d): %s",
			resp.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	var regResp registerResponse
	if err := json.Unmarshal(body, &regResp); err != nil {
		return "", fmt.Errorf("parsing registration response: %w", err)
	}
	if regResp.UserToken == "" {
		return "", ErrNoToken
	}

	return regResp.UserToken, nil
}

// Static is a TokenSource with a fixed, pre-provisioned token.
type Static string

// UserToken implements catalog.TokenSource.
func (s Static) UserToken() (string, bool) {
	return string(s), s != ""
}

// FetchUserToken implements catalog.TokenSource.
func (s Static) FetchUserToken(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}
