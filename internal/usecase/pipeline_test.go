package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GrainIntel/internal/curation"
	"GrainIntel/internal/domain"
)

type fakeSource struct {
	items []domain.RawItem
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	return f.items, f.err
}

type fakeWriter struct {
	written *domain.CurationResult
	err     error
}

func (f *fakeWriter) Write(result domain.CurationResult) error {
	if f.err != nil {
		return f.err
	}
	f.written = &result
	return nil
}

type fakeRepository struct {
	saved *domain.CurationResult
	err   error
}

func (f *fakeRepository) SaveRun(ctx context.Context, result domain.CurationResult) error {
	if f.err != nil {
		return f.err
	}
	f.saved = &result
	return nil
}

type fakeNotifier struct {
	digests []string
	err     error
}

func (f *fakeNotifier) PublishDigest(ctx context.Context, digest string) error {
	if f.err != nil {
		return f.err
	}
	f.digests = append(f.digests, digest)
	return nil
}

type fixedJudge struct {
	judgements map[string]domain.Judgement
}

func (f *fixedJudge) Judge(ctx context.Context, item domain.RawItem) (domain.Judgement, error) {
	if j, ok := f.judgements[item.Title]; ok {
		return j, nil
	}
	return domain.Judgement{}, fmt.Errorf("no judgement for %q", item.Title)
}

func testPipeline(t *testing.T, deps PipelineDeps) *Pipeline {
	t.Helper()

	registry, err := curation.NewEntityRegistry(curation.DefaultEntities())
	require.NoError(t, err)
	deps.Tagger = curation.NewTagger(registry)

	if deps.Scorer == nil {
		rules := curation.NewRuleScorer(registry, curation.DefaultKeywords(),
			curation.DefaultTrustedSources(), curation.DefaultCompanyCategory)
		deps.Scorer = curation.NewScorer(rules, nil, 1, nil)
	}

	p := NewPipeline(deps)
	p.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	p.newRunID = func() string { return "run-test" }
	return p
}

func TestRunProducesCuratedResult(t *testing.T) {
	t.Parallel()

	source := &fakeSource{items: []domain.RawItem{
		{
			Title:       "Cgrain launches new analyzer",
			Summary:     "Benchtop system for grain grading built on NIR analysis.",
			Link:        "https://example.com/cgrain",
			Source:      "Cgrain News",
			Category:    "company",
			PublishedAt: "2026-08-27T09:30:00Z",
		},
		{
			Title:       "Cgrain  Launches New Analyzer",
			Summary:     "duplicate from another feed",
			PublishedAt: "2026-08-27T10:00:00Z",
		},
		{
			Title:       "City council zoning meeting",
			Summary:     "Nothing to do with agriculture.",
			PublishedAt: "2026-08-26T08:00:00Z",
		},
	}}
	writer := &fakeWriter{}
	repo := &fakeRepository{}
	notifier := &fakeNotifier{}

	p := testPipeline(t, PipelineDeps{
		Source:     source,
		Writer:     writer,
		Repository: repo,
		Notifier:   notifier,
		Policy:     Policy{MinScore: 60, MaxItems: 15},
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-test", result.RunID)
	assert.Equal(t, 3, result.InputCount)
	assert.Equal(t, 1, result.DuplicatesRemoved)
	assert.Equal(t, 1, result.TotalItems)
	assert.Equal(t, 60, result.Config.MinScore)
	assert.Equal(t, 15, result.Config.MaxItems)
	assert.False(t, result.Config.AIEnabled)

	require.Len(t, result.Articles, 1)
	record := result.Articles[0]
	assert.Equal(t, "1", record.ID)
	assert.Equal(t, "Cgrain launches new analyzer", record.Title)
	assert.Equal(t, "2026-08-27", record.Date)
	assert.Equal(t, "https://example.com/cgrain", record.URL)
	assert.Equal(t, 100, record.RelevanceScore)
	assert.Equal(t, []string{"cgrain"}, record.CompanyTags)

	require.NotNil(t, writer.written)
	assert.Equal(t, result, *writer.written)
	require.NotNil(t, repo.saved)
	require.Len(t, notifier.digests, 1)
	assert.Contains(t, notifier.digests[0], "Cgrain launches new analyzer")
	assert.Contains(t, notifier.digests[0], "Score: 100")
}

func TestRunAbortsOnSourceFailure(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	p := testPipeline(t, PipelineDeps{
		Source: &fakeSource{err: fmt.Errorf("input file missing")},
		Writer: writer,
		Policy: Policy{MinScore: 60, MaxItems: 15},
	})

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch raw items")
	assert.Nil(t, writer.written)
}

func TestRunAbortsOnWriteFailure(t *testing.T) {
	t.Parallel()

	p := testPipeline(t, PipelineDeps{
		Source: &fakeSource{items: []domain.RawItem{{Title: "anything"}}},
		Writer: &fakeWriter{err: fmt.Errorf("disk full")},
		Policy: Policy{MinScore: 0, MaxItems: 0},
	})

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write curated output")
}

func TestRunSurvivesRepositoryAndNotifierFailures(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	p := testPipeline(t, PipelineDeps{
		Source: &fakeSource{items: []domain.RawItem{{
			Title:       "Cgrain launches new analyzer",
			Summary:     "grain grading with NIR analysis",
			Source:      "Cgrain News",
			Category:    "company",
			PublishedAt: "2026-08-27T09:30:00Z",
		}}},
		Writer:     writer,
		Repository: &fakeRepository{err: fmt.Errorf("db down")},
		Notifier:   &fakeNotifier{err: fmt.Errorf("telegram down")},
		Policy:     Policy{MinScore: 60, MaxItems: 15},
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalItems)
	require.NotNil(t, writer.written)
}

func TestRunEmptySelectionStillWritesMetadata(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	notifier := &fakeNotifier{}
	p := testPipeline(t, PipelineDeps{
		Source:   &fakeSource{items: []domain.RawItem{{Title: "Rainfall outlook"}}},
		Writer:   writer,
		Notifier: notifier,
		Policy:   Policy{MinScore: 60, MaxItems: 15},
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.InputCount)
	assert.Equal(t, 0, result.TotalItems)
	assert.Empty(t, result.Articles)
	require.NotNil(t, writer.written, "an empty selection is still a valid run")
	assert.Empty(t, notifier.digests, "no digest for an empty selection")
}

func TestRunUsesAISummaryAndTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("grain quality analysis update, ", 20)
	judge := &fixedJudge{judgements: map[string]domain.Judgement{
		"Cgrain launches new analyzer": {Score: 90, Reason: "on-topic", Summary: long},
	}}

	registry, err := curation.NewEntityRegistry(curation.DefaultEntities())
	require.NoError(t, err)
	rules := curation.NewRuleScorer(registry, curation.DefaultKeywords(),
		curation.DefaultTrustedSources(), curation.DefaultCompanyCategory)

	p := testPipeline(t, PipelineDeps{
		Source: &fakeSource{items: []domain.RawItem{{
			Title:       "Cgrain launches new analyzer",
			Summary:     "raw feed summary",
			PublishedAt: "2026-08-27T09:30:00Z",
		}}},
		Writer: &fakeWriter{},
		Scorer: curation.NewScorer(rules, judge, 1, nil),
		Policy: Policy{MinScore: 60, MaxItems: 15},
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Articles, 1)

	record := result.Articles[0]
	assert.True(t, result.Config.AIEnabled)
	assert.Equal(t, 90, record.RelevanceScore)
	assert.NotEqual(t, "raw feed summary", record.Summary)
	assert.Len(t, []rune(record.Summary), 200)
	assert.True(t, strings.HasPrefix(long, record.Summary))
}

func TestDatePortion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2026-08-27", datePortion("2026-08-27T09:30:00Z"))
	assert.Equal(t, "2026-08-27", datePortion("2026-08-27"))
	assert.Equal(t, "", datePortion(""))
	assert.Equal(t, "2026", datePortion("2026"))
}
