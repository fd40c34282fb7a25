package feeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/sources"
)

const (
	defaultMaxAge     = 7 * 24 * time.Hour
	maxSummaryRunes   = 500
	strategyName      = "rss"
	defaultHTTPExpiry = 20 * time.Second
)

// FeedScanner collects items from RSS/Atom feeds.
type FeedScanner struct {
	parser *gofeed.Parser
	now    func() time.Time
}

var _ sources.Strategy = (*FeedScanner)(nil)

// NewFeedScanner builds a scanner with its own feed parser.
func NewFeedScanner() *FeedScanner {
	return &FeedScanner{parser: gofeed.NewParser(), now: time.Now}
}

// Name identifies the strategy inside the registry.
func (f *FeedScanner) Name() string {
	return strategyName
}

// Fetch parses the feed and keeps entries newer than the max-age
// cutoff. Entries without any timestamp are treated as fresh.
func (f *FeedScanner) Fetch(ctx context.Context, req sources.Request) ([]domain.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultHTTPExpiry)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(req.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", req.URL, err)
	}

	maxAge := req.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	cutoff := f.now().Add(-maxAge)

	items := make([]domain.RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		published := f.now()
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		if published.Before(cutoff) {
			continue
		}

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}

		items = append(items, domain.RawItem{
			Title:       strings.Join(strings.Fields(entry.Title), " "),
			Summary:     truncateRunes(summary, maxSummaryRunes),
			Link:        entry.Link,
			Source:      req.Name,
			Category:    req.Category,
			PublishedAt: published.UTC().Format(time.RFC3339),
		})
	}

	return items, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
