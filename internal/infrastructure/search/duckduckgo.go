package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/sources"
)

const (
	defaultEndpoint = "https://html.duckduckgo.com/html/"
	defaultRegion   = "ca-en"
	defaultLimit    = 5
	defaultDelay    = 2 * time.Second
)

// DuckDuckGoScanner runs query-driven collection against the HTML
// search endpoint; no API key is required.
type DuckDuckGoScanner struct {
	client   *http.Client
	endpoint string
	delay    time.Duration
	now      func() time.Time
}

var _ sources.Strategy = (*DuckDuckGoScanner)(nil)

// NewDuckDuckGoScanner wires an HTTP client; a nil client gets a 10s timeout.
func NewDuckDuckGoScanner(client *http.Client) *DuckDuckGoScanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &DuckDuckGoScanner{
		client:   client,
		endpoint: defaultEndpoint,
		delay:    defaultDelay,
		now:      time.Now,
	}
}

// Name identifies the strategy inside the registry.
func (d *DuckDuckGoScanner) Name() string {
	return "search"
}

// Fetch posts the query from req.Options["query"] and parses the result
// blocks. A polite delay runs before each request to stay under the
// endpoint's informal rate expectations.
func (d *DuckDuckGoScanner) Fetch(ctx context.Context, req sources.Request) ([]domain.RawItem, error) {
	query := strings.TrimSpace(req.Options["query"])
	if query == "" {
		return nil, fmt.Errorf("search source %s has no query", req.Name)
	}

	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	form := url.Values{}
	form.Set("q", query)
	form.Set("kl", defaultRegion)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Referer", "https://duckduckgo.com/")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	collected := make([]domain.RawItem, 0, limit)
	doc.Find(".result").EachWithBreak(func(i int, block *goquery.Selection) bool {
		titleTag := block.Find(".result__title a").First()
		title := strings.TrimSpace(titleTag.Text())
		link, _ := titleTag.Attr("href")

		// Redirect/ad links through the engine itself carry no article.
		if title == "" || strings.Contains(link, "duckduckgo.com") {
			return true
		}

		collected = append(collected, domain.RawItem{
			Title:       title,
			Summary:     strings.TrimSpace(block.Find(".result__snippet").First().Text()),
			Link:        link,
			Source:      req.Name,
			Category:    req.Category,
			PublishedAt: d.now().UTC().Format(time.RFC3339),
		})

		return len(collected) < limit
	})

	return collected, nil
}
