package cmd

import (
	"log/slog"
	"net/http"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
	"github.com/donaldgifford/offer-catalog/internal/config"
	"github.com/donaldgifford/offer-catalog/internal/search"
	"github.com/donaldgifford/offer-catalog/internal/user"
	"github.com/donaldgifford/offer-catalog/pkg/logger"
)

// app holds the wired components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	tokens  *user.Provider
	client  *catalog.Client
	search  *search.Service
	history *search.HistoryStore
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildApp(cfg)
}

func buildApp(cfg *config.Config) (*app, error) {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	httpClient := &http.Client{Timeout: cfg.API.Timeout}

	tokens := user.NewProvider(
		cfg.API.BaseURL,
		user.WithAPIKey(cfg.API.APIKey),
		user.WithDeviceID(cfg.User.DeviceID),
		user.WithToken(cfg.User.Token),
		user.WithHTTPClient(httpClient),
		user.WithLogger(log),
	)

	requester := catalog.NewHTTPRequester(
		catalog.WithHTTPClient(httpClient),
		catalog.WithRequestAPIKey(cfg.API.APIKey),
		catalog.WithUserTokens(tokens),
		catalog.WithRateLimit(cfg.API.RateLimit.PerSecond, cfg.API.RateLimit.Burst),
		catalog.WithRetry(cfg.API.Retry.Attempts, cfg.API.Retry.Delay),
		catalog.WithRequesterLogger(log),
	)

	historyPath := cfg.History.Path
	if historyPath == "" {
		p, err := search.DefaultHistoryPath()
		if err != nil {
			return nil, err
		}
		historyPath = p
	}

	return &app{
		cfg:    cfg,
		logger: log,
		tokens: tokens,
		client: catalog.New(
			cfg.API.BaseURL,
			requester,
			catalog.WithAPIKey(cfg.API.APIKey),
			catalog.WithTokenSource(tokens),
			catalog.WithLogger(log),
		),
		search: search.NewService(cfg.API.BaseURL, requester, tokens, search.WithLogger(log)),
		history: search.NewHistoryStore(
			historyPath,
			search.WithMaxEntries(cfg.History.MaxEntries),
			search.WithHistoryLogger(log),
		),
	}, nil
}
