package curation

import "GrainIntel/internal/domain"

// Dedupe collapses items whose titles normalize to the same key,
// keeping the first occurrence and preserving input order. Items with
// empty titles always pass through. The removed count is returned as a
// side observation for metrics.
func Dedupe(items []domain.RawItem) ([]domain.RawItem, int) {
	kept := make([]domain.RawItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	removed := 0

	for _, item := range items {
		key := DedupKey(item.Title)
		if key != "" {
			if _, dup := seen[key]; dup {
				removed++
				continue
			}
			seen[key] = struct{}{}
		}
		kept = append(kept, item)
	}

	return kept, removed
}
