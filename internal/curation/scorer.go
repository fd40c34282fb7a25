package curation

import (
	"context"
	"log/slog"
	"sync"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
)

const defaultConcurrency = 5

// Scorer computes relevance via the AI-assisted strategy when a judge
// is configured, falling back to the rule-based strategy per item on
// any judge failure. The two strategies are never blended.
type Scorer struct {
	rules       *RuleScorer
	judge       ports.RelevanceJudge
	concurrency int
	logger      *slog.Logger
}

// NewScorer builds a scorer. A nil judge means the rule-based strategy
// is used unconditionally for the whole batch.
func NewScorer(rules *RuleScorer, judge ports.RelevanceJudge, concurrency int, logger *slog.Logger) *Scorer {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Scorer{rules: rules, judge: judge, concurrency: concurrency, logger: logger}
}

// AIEnabled reports whether the AI-assisted strategy is active.
func (s *Scorer) AIEnabled() bool {
	return s.judge != nil
}

// Score evaluates a single item. Judge failures are logged as warnings
// and recovered locally; the caller always receives a judgement.
func (s *Scorer) Score(ctx context.Context, item domain.RawItem) domain.Judgement {
	if s.judge != nil {
		judgement, err := s.judge.Judge(ctx, item)
		if err == nil {
			return judgement
		}
		s.warn("ai scoring failed, using rule-based fallback", "title", item.Title, "error", err)
	}
	return domain.Judgement{Score: s.rules.Score(item)}
}

// ScoreBatch evaluates every item. AI calls run concurrently under a
// bounded semaphore because they are independent and rate-limited
// upstream; results land in an index-addressed slice so the order never
// depends on completion order. Without a judge the batch is scored
// sequentially and never blocks.
func (s *Scorer) ScoreBatch(ctx context.Context, items []domain.RawItem) []domain.Judgement {
	judgements := make([]domain.Judgement, len(items))

	if s.judge == nil {
		for i, item := range items {
			judgements[i] = domain.Judgement{Score: s.rules.Score(item)}
		}
		return judgements
	}

	semaphore := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(index int, it domain.RawItem) {
			defer wg.Done()
			defer func() { <-semaphore }()
			judgements[index] = s.Score(ctx, it)
		}(i, item)
	}

	wg.Wait()
	return judgements
}

func (s *Scorer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
