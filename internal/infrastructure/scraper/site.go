package scraper

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
	defaultLimit     = 5
	defaultUserAgent = "GrainIntel/1.0"

	// Selector defaults cover the common news-listing markup of the
	// tracked company sites; override per source via options.
	defaultItemSelector  = "article, .news-item, .news-release, .blog-post"
	defaultTitleSelector = "h1, h2, h3, .title"
)

// SiteScanner scrapes news listings from company pages that publish no
// feed.
type SiteScanner struct {
	client *http.Client
	now    func() time.Time
}

var _ sources.Strategy = (*SiteScanner)(nil)

// NewSiteScanner wires an HTTP client; a nil client gets a 15s timeout default.
func NewSiteScanner(client *http.Client) *SiteScanner {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &SiteScanner{client: client, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (s *SiteScanner) Name() string {
	return "scrape"
}

// Fetch downloads the page and extracts up to req.Limit entries using
// the configured selectors. Scraped pages rarely expose dates, so items
// carry the collection time.
func (s *SiteScanner) Fetch(ctx context.Context, req sources.Request) ([]domain.RawItem, error) {
	doc, base, err := s.fetchDocument(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	itemSelector := option(req.Options, "items", defaultItemSelector)
	titleSelector := option(req.Options, "title", defaultTitleSelector)
	collected := make([]domain.RawItem, 0, limit)

	doc.Find(itemSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find(titleSelector).First().Text())
		if title == "" {
			return true
		}

		link := sel.Find("a").First()
		if goquery.NodeName(sel) == "a" {
			link = sel
		}
		href, _ := link.Attr("href")

		collected = append(collected, domain.RawItem{
			Title:       title,
			Summary:     "",
			Link:        absolutize(base, href),
			Source:      req.Name,
			Category:    req.Category,
			PublishedAt: s.now().UTC().Format(time.RFC3339),
		})

		return len(collected) < limit
	})

	return collected, nil
}

func (s *SiteScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("page %s returned %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("parse page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid page url %s: %w", pageURL, err)
	}

	return doc, base, nil
}

func absolutize(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func option(options map[string]string, key, fallback string) string {
	if v, ok := options[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
