package domain

import "time"

// RawItem is a candidate news item collected from any source adapter.
// PublishedAt carries an RFC 3339 timestamp string as emitted by the
// adapters; the fixed-width format sorts correctly as text.
type RawItem struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	PublishedAt string `json:"published"`
}

// Judgement is the outcome of a relevance evaluation for a single item.
// Reason and Summary are only populated by the AI path.
type Judgement struct {
	Score   int
	Reason  string
	Summary string
}

// ScoredItem is a RawItem annotated with relevance and entity tags.
// It is never mutated after tagging.
type ScoredItem struct {
	RawItem
	RelevanceScore int
	ScoreReason    string
	CuratedSummary string
	CompanyTags    []string
}

// CuratedRecord is the externally visible shape of one selected item.
type CuratedRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Source         string   `json:"source"`
	Date           string   `json:"date"`
	Summary        string   `json:"summary"`
	URL            string   `json:"url"`
	Category       string   `json:"category"`
	RelevanceScore int      `json:"relevance_score"`
	CompanyTags    []string `json:"company_tags,omitempty"`
}

// RunConfig records the curation parameters actually applied to a run.
type RunConfig struct {
	MinScore  int  `json:"min_score"`
	MaxItems  int  `json:"max_articles"`
	AIEnabled bool `json:"ai_enabled"`
}

// CurationResult is the sole artifact of a pipeline run. It is fully
// reconstructible from the input batch and the configuration.
type CurationResult struct {
	RunID             string          `json:"run_id"`
	GeneratedAt       time.Time       `json:"generated_at"`
	InputCount        int             `json:"input_count"`
	DuplicatesRemoved int             `json:"duplicates_removed"`
	TotalItems        int             `json:"total_items"`
	Config            RunConfig       `json:"curation_config"`
	Articles          []CuratedRecord `json:"articles"`
}
