// Package search implements free-text catalog search and the persisted
// search history that accompanies it.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
	"github.com/donaldgifford/offer-catalog/internal/metrics"
	"github.com/donaldgifford/offer-catalog/pkg/logger"
	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

const searchPath = "search"

// Service runs free-text searches against the catalog API.
type Service struct {
	baseURL   string
	requester catalog.Requester
	tokens    catalog.TokenSource
	logger    *slog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger.Component(l, "search")
	}
}

// NewService creates a search service. Searches require a user token, which
// is obtained from tokens before every request.
func NewService(
	baseURL string,
	requester catalog.Requester,
	tokens catalog.TokenSource,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		baseURL:   catalog.NormalizeBaseURL(baseURL),
		requester: requester,
		tokens:    tokens,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenericSearch fetches the user token and then searches companies and tags
// matching query. A token failure is returned without issuing the search.
func (s *Service) GenericSearch(ctx context.Context, query string) (*domain.SearchResult, error) {
	if _, err := s.tokens.FetchUserToken(ctx); err != nil {
		return nil, fmt.Errorf("fetching user token: %w", err)
	}

	url := s.baseURL + searchPath
	s.logger.Debug("performing search", "url", url, "query", query)

	start := time.Now()
	n, err := s.requester.Get(ctx, url, catalog.Params{"q": query})
	metrics.CatalogRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("search", metrics.StatusError).Inc()
		return nil, err
	}
	metrics.CatalogRequestsTotal.WithLabelValues("search", metrics.StatusOK).Inc()

	result := ParseSearchResult(n)
	return &result, nil
}

// ParseSearchResult maps a search response. Companies are mapped without
// logos.
func ParseSearchResult(n catalog.Node) domain.SearchResult {
	elems := n.Get("companies").Array()
	companies := make([]domain.Company, 0, len(elems))
	for _, e := range elems {
		companies = append(companies, domain.Company{
			ID:   e.Get("id").IntValue(),
			Name: e.Get("name").StringValue(),
		})
	}

	return domain.SearchResult{
		Companies: companies,
		Tags:      n.Get("tags").StringArray(),
	}
}
