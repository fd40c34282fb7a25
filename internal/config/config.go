package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "GRAIN_INTEL_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv    = "GEMINI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Gemini        GeminiConfig       `yaml:"gemini"`
	Curation      CurationConfig     `yaml:"curation"`
	Notifications NotificationConfig `yaml:"notifications"`
	Artifacts     ArtifactConfig     `yaml:"artifacts"`
	Search        SearchConfig       `yaml:"search"`
	Sources       []SourceConfig     `yaml:"sources"`
	Entities      []EntityConfig     `yaml:"entities"`
	Keywords      KeywordConfig      `yaml:"keywords"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes optional Postgres run-history storage.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines optional periodic execution. Interval is a
// Go duration string such as "6h" or "30m".
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval"`
}

// IntervalDuration resolves the interval string, defaulting to 6h.
func (s SchedulerConfig) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(s.Interval)
	if err != nil || d <= 0 {
		return 6 * time.Hour
	}
	return d
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// CurationConfig carries the digest policy. Two presets exist in
// practice: the AI digest (minScore 60, maxItems 15) and the tagging
// digest (minScore 1, maxItems 25); both are plain configuration here.
type CurationConfig struct {
	MinScore    int   `yaml:"minScore"`
	MaxItems    int   `yaml:"maxItems"`
	AIEnabled   *bool `yaml:"aiEnabled"`
	MaxAgeDays  int   `yaml:"maxAgeDays"`
	Concurrency int   `yaml:"concurrency"`
}

// AIScoring resolves the aiEnabled flag. The flag is a pointer so that
// an explicit `aiEnabled: false` is distinguishable from an absent key;
// unset means enabled.
func (c CurationConfig) AIScoring() bool {
	if c.AIEnabled == nil {
		return true
	}
	return *c.AIEnabled
}

// MaxAge converts the day-based config to a duration.
func (c CurationConfig) MaxAge() time.Duration {
	if c.MaxAgeDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// ArtifactConfig selects file-based input/output. When InputPath is
// set the pipeline reads a raw-intel artifact instead of collecting
// from live sources.
type ArtifactConfig struct {
	InputPath  string `yaml:"inputPath"`
	OutputPath string `yaml:"outputPath"`
}

// SearchConfig drives the CSV-query search collection.
type SearchConfig struct {
	CSVPath    string `yaml:"csvPath"`
	MaxResults int    `yaml:"maxResults"`
}

// SourceConfig describes a single source with its collection strategy.
type SourceConfig struct {
	Name     string            `yaml:"name"`
	Strategy string            `yaml:"strategy"`
	URL      string            `yaml:"url"`
	Category string            `yaml:"category"`
	Limit    int               `yaml:"limit"`
	Options  map[string]string `yaml:"options"`
}

// EntityConfig overrides one tracked entity.
type EntityConfig struct {
	ID      string   `yaml:"id"`
	Aliases []string `yaml:"aliases"`
}

// KeywordConfig overrides the scoring tables; empty sets fall back to
// the built-in defaults.
type KeywordConfig struct {
	Technology      []string `yaml:"technology"`
	Industry        []string `yaml:"industry"`
	Negative        []string `yaml:"negative"`
	TrustedSources  []string `yaml:"trustedSources"`
	CompanyCategory string   `yaml:"companyCategory"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Gemini.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.Interval != "" {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}

	if override.Curation.MinScore != 0 {
		base.Curation.MinScore = override.Curation.MinScore
	}
	if override.Curation.MaxItems != 0 {
		base.Curation.MaxItems = override.Curation.MaxItems
	}
	if override.Curation.AIEnabled != nil {
		base.Curation.AIEnabled = override.Curation.AIEnabled
	}
	if override.Curation.MaxAgeDays != 0 {
		base.Curation.MaxAgeDays = override.Curation.MaxAgeDays
	}
	if override.Curation.Concurrency != 0 {
		base.Curation.Concurrency = override.Curation.Concurrency
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Artifacts.InputPath != "" {
		base.Artifacts.InputPath = override.Artifacts.InputPath
	}
	if override.Artifacts.OutputPath != "" {
		base.Artifacts.OutputPath = override.Artifacts.OutputPath
	}

	if override.Search.CSVPath != "" {
		base.Search.CSVPath = override.Search.CSVPath
	}
	if override.Search.MaxResults != 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}
	if len(override.Entities) > 0 {
		base.Entities = override.Entities
	}

	if len(override.Keywords.Technology) > 0 {
		base.Keywords.Technology = override.Keywords.Technology
	}
	if len(override.Keywords.Industry) > 0 {
		base.Keywords.Industry = override.Keywords.Industry
	}
	if len(override.Keywords.Negative) > 0 {
		base.Keywords.Negative = override.Keywords.Negative
	}
	if len(override.Keywords.TrustedSources) > 0 {
		base.Keywords.TrustedSources = override.Keywords.TrustedSources
	}
	if override.Keywords.CompanyCategory != "" {
		base.Keywords.CompanyCategory = override.Keywords.CompanyCategory
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{Enabled: false, Interval: "6h"},
		Gemini:    GeminiConfig{Model: "gemini-2.0-flash"},
		Curation: CurationConfig{
			MinScore:    60,
			MaxItems:    15,
			MaxAgeDays:  7,
			Concurrency: 5,
		},
		Artifacts: ArtifactConfig{OutputPath: "data/curated_news.json"},
		Search:    SearchConfig{MaxResults: 5},
		Sources: []SourceConfig{
			{Name: "GrainsWest", Strategy: "rss", URL: "https://grainswest.com/feed/", Category: "industry"},
			{Name: "Grain Central", Strategy: "rss", URL: "https://www.graincentral.com/feed/", Category: "industry"},
			{Name: "Ag Funder News", Strategy: "rss", URL: "https://agfundernews.com/feed", Category: "technology"},
			{Name: "Future Farming", Strategy: "rss", URL: "https://www.futurefarming.com/feed/", Category: "technology"},
			{Name: "Protein Industries Canada", Strategy: "scrape", URL: "https://www.proteinindustriescanada.ca/news-releases", Category: "company"},
			{Name: "Ground Truth Ag", Strategy: "scrape", URL: "https://groundtruth.ag/", Category: "company"},
		},
	}
}
