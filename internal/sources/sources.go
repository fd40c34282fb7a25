package sources

import (
	"context"
	"fmt"
	"time"

	"GrainIntel/internal/domain"
)

// Request carries all parameters required to run one source strategy.
type Request struct {
	Name     string
	URL      string
	Category string
	MaxAge   time.Duration
	Limit    int
	Options  map[string]string
}

// Strategy captures a single collection implementation (RSS feed,
// page scrape, web search, ...).
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.RawItem, error)
}

// Registry keeps a mapping from strategy names to implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[strategy.Name()] = strategy
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if strategy, ok := r.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("source strategy %s is not registered", name)
}
