package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"GrainIntel/internal/config"
	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
	"GrainIntel/internal/sources"
)

// StrategySource implements ports.ItemSource by running every
// configured source and CSV-driven search query through registered
// strategies. A failing source is logged and skipped; collection keeps
// going so one dead feed cannot empty the batch.
type StrategySource struct {
	registry    *sources.Registry
	sites       []config.SourceConfig
	queries     []AlertQuery
	maxAge      time.Duration
	searchLimit int
	logger      *slog.Logger
}

var _ ports.ItemSource = (*StrategySource)(nil)

// NewStrategySource wires the strategy registry with config-defined sources.
func NewStrategySource(reg *sources.Registry, sites []config.SourceConfig, queries []AlertQuery, maxAge time.Duration, searchLimit int, logger *slog.Logger) *StrategySource {
	return &StrategySource{
		registry:    reg,
		sites:       sites,
		queries:     queries,
		maxAge:      maxAge,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// Fetch aggregates raw items from every source.
func (s *StrategySource) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	var aggregated []domain.RawItem

	for _, site := range s.sites {
		items, err := s.fetchSite(ctx, site)
		if err != nil {
			s.warn("source failed, skipping", "source", site.Name, "error", err)
			continue
		}
		s.debug("source produced items", "source", site.Name, "count", len(items))
		aggregated = append(aggregated, items...)
	}

	for _, query := range s.queries {
		items, err := s.fetchQuery(ctx, query)
		if err != nil {
			s.warn("search query failed, skipping", "query", query.Title, "error", err)
			continue
		}
		aggregated = append(aggregated, items...)
	}

	s.debug("collection done", "total_items", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) fetchSite(ctx context.Context, site config.SourceConfig) ([]domain.RawItem, error) {
	strategy, err := s.registry.Resolve(site.Strategy)
	if err != nil {
		return nil, err
	}

	return strategy.Fetch(ctx, sources.Request{
		Name:     site.Name,
		URL:      site.URL,
		Category: site.Category,
		MaxAge:   s.maxAge,
		Limit:    site.Limit,
		Options:  site.Options,
	})
}

func (s *StrategySource) fetchQuery(ctx context.Context, query AlertQuery) ([]domain.RawItem, error) {
	strategy, err := s.registry.Resolve("search")
	if err != nil {
		return nil, err
	}

	category := query.Section
	if category == "" {
		category = "search_result"
	}

	return strategy.Fetch(ctx, sources.Request{
		Name:     "Scraper: " + query.Title,
		Category: category,
		Limit:    s.searchLimit,
		Options:  map[string]string{"query": query.Query},
	})
}

func (s *StrategySource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
