package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"GrainIntel/internal/curation"
	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
)

const recordSummaryRunes = 200

// Policy carries the selection parameters for one pipeline variant.
type Policy struct {
	MinScore int
	MaxItems int
}

// PipelineDeps wires all driven adapters into the curation pipeline.
type PipelineDeps struct {
	Source     ports.ItemSource
	Scorer     *curation.Scorer
	Tagger     curation.Tagger
	Repository ports.RunRepository
	Writer     ports.ResultWriter
	Notifier   ports.Notifier
	Policy     Policy
	Logger     *slog.Logger
}

// Pipeline implements the curation workflow: dedupe, score, tag,
// select, serialize. It is a full-batch transformation; no state
// survives between runs.
type Pipeline struct {
	source     ports.ItemSource
	scorer     *curation.Scorer
	tagger     curation.Tagger
	repository ports.RunRepository
	writer     ports.ResultWriter
	notifier   ports.Notifier
	policy     Policy
	logger     *slog.Logger
	now        func() time.Time
	newRunID   func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		scorer:     deps.Scorer,
		tagger:     deps.Tagger,
		repository: deps.Repository,
		writer:     deps.Writer,
		notifier:   deps.Notifier,
		policy:     deps.Policy,
		logger:     deps.Logger,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Run executes one full curation pass. Only structural failures
// (unreadable input, unwritable output) abort the run; scoring and
// notification problems degrade gracefully.
func (p *Pipeline) Run(ctx context.Context) (domain.CurationResult, error) {
	raw, err := p.source.Fetch(ctx)
	if err != nil {
		return domain.CurationResult{}, fmt.Errorf("fetch raw items: %w", err)
	}

	deduped, removed := curation.Dedupe(raw)
	p.info("deduplicated batch", "input", len(raw), "removed", removed)

	judgements := p.scorer.ScoreBatch(ctx, deduped)

	scored := make([]domain.ScoredItem, len(deduped))
	for i, item := range deduped {
		scored[i] = domain.ScoredItem{
			RawItem:        item,
			RelevanceScore: judgements[i].Score,
			ScoreReason:    judgements[i].Reason,
			CuratedSummary: judgements[i].Summary,
			CompanyTags:    p.tagger.Tag(item),
		}
	}

	selected := curation.Select(scored, p.policy.MinScore, p.policy.MaxItems)
	p.info("curated batch",
		"selected", len(selected), "scored", len(scored),
		"min_score", p.policy.MinScore)

	result := domain.CurationResult{
		RunID:             p.newRunID(),
		GeneratedAt:       p.now().UTC(),
		InputCount:        len(raw),
		DuplicatesRemoved: removed,
		TotalItems:        len(selected),
		Config: domain.RunConfig{
			MinScore:  p.policy.MinScore,
			MaxItems:  p.policy.MaxItems,
			AIEnabled: p.scorer.AIEnabled(),
		},
		Articles: buildRecords(selected),
	}

	if p.writer != nil {
		if err := p.writer.Write(result); err != nil {
			return domain.CurationResult{}, fmt.Errorf("write curated output: %w", err)
		}
	}

	if p.repository != nil {
		if err := p.repository.SaveRun(ctx, result); err != nil {
			p.warn("run history not saved", "error", err)
		}
	}

	if p.notifier != nil && len(result.Articles) > 0 {
		if err := p.notifier.PublishDigest(ctx, buildDigestMessage(result)); err != nil {
			p.warn("digest notification failed", "error", err)
		}
	}

	return result, nil
}

// buildRecords converts selected items to their external shape:
// 1-based position identifiers, date portion of the timestamp, and a
// bounded summary (the AI summary wins when present).
func buildRecords(items []domain.ScoredItem) []domain.CuratedRecord {
	records := make([]domain.CuratedRecord, 0, len(items))
	for i, item := range items {
		summary := item.CuratedSummary
		if summary == "" {
			summary = item.Summary
		}

		records = append(records, domain.CuratedRecord{
			ID:             fmt.Sprintf("%d", i+1),
			Title:          item.Title,
			Source:         item.Source,
			Date:           datePortion(item.PublishedAt),
			Summary:        truncateRunes(summary, recordSummaryRunes),
			URL:            item.Link,
			Category:       item.Category,
			RelevanceScore: item.RelevanceScore,
			CompanyTags:    item.CompanyTags,
		})
	}
	return records
}

func buildDigestMessage(result domain.CurationResult) string {
	var formatted string
	for _, record := range result.Articles {
		formatted += fmt.Sprintf("- %s\nScore: %d | %s | %s\n%s\n\n",
			record.Title,
			record.RelevanceScore,
			record.Source,
			record.Date,
			record.URL)
	}
	return formatted
}

func datePortion(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
