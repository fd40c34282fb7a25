package curation

import (
	"sort"

	"GrainIntel/internal/domain"
)

// Select filters out items scoring below minScore, orders the rest by
// relevance score descending with publish timestamp descending as the
// tie-break, and truncates to maxCount after sorting. Full ties keep
// their post-filter order. Items are never mutated; a maxCount of zero
// or less means no cap.
func Select(items []domain.ScoredItem, minScore, maxCount int) []domain.ScoredItem {
	selected := make([]domain.ScoredItem, 0, len(items))
	for _, item := range items {
		if item.RelevanceScore >= minScore {
			selected = append(selected, item)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].RelevanceScore != selected[j].RelevanceScore {
			return selected[i].RelevanceScore > selected[j].RelevanceScore
		}
		// RFC 3339 timestamps are fixed-width, so text order is time order.
		return selected[i].PublishedAt > selected[j].PublishedAt
	})

	if maxCount > 0 && len(selected) > maxCount {
		selected = selected[:maxCount]
	}

	return selected
}
