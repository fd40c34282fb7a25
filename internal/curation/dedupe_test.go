package curation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GrainIntel/internal/domain"
)

func item(title, summary string) domain.RawItem {
	return domain.RawItem{Title: title, Summary: summary}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	items := []domain.RawItem{
		item("Wheat prices rise", "first report"),
		item("Barley harvest ahead", ""),
		item("<b>Wheat  Prices</b> Rise", "same story, other feed"),
		item("wheat prices rise", "third copy"),
	}

	kept, removed := Dedupe(items)

	require.Len(t, kept, 2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, "first report", kept[0].Summary)
	assert.Equal(t, "Barley harvest ahead", kept[1].Title)
}

func TestDedupePreservesOrder(t *testing.T) {
	t.Parallel()

	items := []domain.RawItem{
		item("c", ""), item("a", ""), item("b", ""), item("a", "dup"),
	}

	kept, removed := Dedupe(items)

	assert.Equal(t, 1, removed)
	require.Len(t, kept, 3)
	assert.Equal(t, "c", kept[0].Title)
	assert.Equal(t, "a", kept[1].Title)
	assert.Equal(t, "b", kept[2].Title)
}

func TestDedupeEmptyTitlesAllPass(t *testing.T) {
	t.Parallel()

	items := []domain.RawItem{
		item("", "one"), item("", "two"), item("<br/>", "three"),
	}

	kept, removed := Dedupe(items)

	assert.Equal(t, 0, removed)
	assert.Len(t, kept, 3)
}

func TestDedupeEmptyInput(t *testing.T) {
	t.Parallel()

	kept, removed := Dedupe(nil)
	assert.Empty(t, kept)
	assert.Equal(t, 0, removed)
}
