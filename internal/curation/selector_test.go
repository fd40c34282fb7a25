package curation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GrainIntel/internal/domain"
)

func scored(title string, score int, publishedAt string) domain.ScoredItem {
	return domain.ScoredItem{
		RawItem:        domain.RawItem{Title: title, PublishedAt: publishedAt},
		RelevanceScore: score,
	}
}

func TestSelectRespectsThresholdAndCap(t *testing.T) {
	t.Parallel()

	// 30 items, 20 of them at or above the threshold.
	items := make([]domain.ScoredItem, 0, 30)
	for i := 0; i < 20; i++ {
		items = append(items, scored(fmt.Sprintf("hit-%d", i), 60+i, "2026-08-01T00:00:00Z"))
	}
	for i := 0; i < 10; i++ {
		items = append(items, scored(fmt.Sprintf("miss-%d", i), 10+i, "2026-08-01T00:00:00Z"))
	}

	out := Select(items, 60, 15)

	require.Len(t, out, 15)
	for _, item := range out {
		assert.GreaterOrEqual(t, item.RelevanceScore, 60)
	}
	// The cap keeps the top scorers: 79 down to 65.
	assert.Equal(t, 79, out[0].RelevanceScore)
	assert.Equal(t, 65, out[14].RelevanceScore)
}

func TestSelectOrdering(t *testing.T) {
	t.Parallel()

	items := []domain.ScoredItem{
		scored("older high", 90, "2026-08-01T08:00:00Z"),
		scored("low", 40, "2026-08-20T08:00:00Z"),
		scored("newer high", 90, "2026-08-10T08:00:00Z"),
		scored("mid", 70, "2026-08-05T08:00:00Z"),
	}

	out := Select(items, 1, 0)

	require.Len(t, out, 4)
	assert.Equal(t, "newer high", out[0].Title)
	assert.Equal(t, "older high", out[1].Title)
	assert.Equal(t, "mid", out[2].Title)
	assert.Equal(t, "low", out[3].Title)

	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i].RelevanceScore, out[i-1].RelevanceScore)
	}
}

func TestSelectFullTiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	items := []domain.ScoredItem{
		scored("first", 80, "2026-08-01T00:00:00Z"),
		scored("second", 80, "2026-08-01T00:00:00Z"),
		scored("third", 80, "2026-08-01T00:00:00Z"),
	}

	out := Select(items, 1, 0)

	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, "second", out[1].Title)
	assert.Equal(t, "third", out[2].Title)
}

func TestSelectEmptyResultIsNotAnError(t *testing.T) {
	t.Parallel()

	items := []domain.ScoredItem{scored("weak", 10, "2026-08-01T00:00:00Z")}
	out := Select(items, 60, 15)
	assert.Empty(t, out)
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []domain.ScoredItem{
		scored("b", 50, "2026-08-02T00:00:00Z"),
		scored("a", 90, "2026-08-01T00:00:00Z"),
	}

	_ = Select(items, 1, 1)

	assert.Equal(t, "b", items[0].Title)
	assert.Equal(t, "a", items[1].Title)
}
