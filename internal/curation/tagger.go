package curation

import (
	"strings"

	"GrainIntel/internal/domain"
)

// Tagger extracts tracked-entity identifiers from item text.
type Tagger struct {
	registry EntityRegistry
}

// NewTagger wires the immutable registry.
func NewTagger(registry EntityRegistry) Tagger {
	return Tagger{registry: registry}
}

// Tag returns the identifiers of every entity with an alias appearing
// in the item's normalized title+summary, sorted by identifier so that
// output is deterministic. An item may carry multiple tags.
func (t Tagger) Tag(item domain.RawItem) []string {
	text := strings.ToLower(CombinedText(item.Title, item.Summary))
	return t.registry.Match(text)
}
