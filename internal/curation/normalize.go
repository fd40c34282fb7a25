package curation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every markup tag; safe for concurrent use.
var strict = bluemonday.StrictPolicy()

// Normalize strips markup from text, decodes entities, and collapses
// whitespace runs to single spaces. It is pure and idempotent.
func Normalize(text string) string {
	cleaned := html.UnescapeString(strict.Sanitize(text))
	return strings.Join(strings.Fields(cleaned), " ")
}

// DedupKey derives the deduplication key for a title. An empty key
// means the item can never collide with another.
func DedupKey(title string) string {
	return strings.ToLower(Normalize(title))
}

// CombinedText joins normalized title and summary with a single space,
// the form scored and tagged throughout the pipeline.
func CombinedText(title, summary string) string {
	return strings.TrimSpace(Normalize(title) + " " + Normalize(summary))
}
