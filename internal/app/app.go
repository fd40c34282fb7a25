package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"GrainIntel/internal/config"
	"GrainIntel/internal/curation"
	"GrainIntel/internal/infrastructure/artifact"
	"GrainIntel/internal/infrastructure/collect"
	"GrainIntel/internal/infrastructure/feeds"
	"GrainIntel/internal/infrastructure/llm"
	"GrainIntel/internal/infrastructure/scheduler"
	"GrainIntel/internal/infrastructure/scraper"
	"GrainIntel/internal/infrastructure/search"
	"GrainIntel/internal/infrastructure/storage"
	"GrainIntel/internal/infrastructure/telegram"
	"GrainIntel/internal/ports"
	"GrainIntel/internal/sources"
	"GrainIntel/internal/usecase"
)

// Application wires configuration to use cases and lifecycle
// orchestration.
type Application struct {
	cfg       config.Config
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Application, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("build entity registry: %w", err)
	}

	keywords, trusted, companyCategory := buildTables(cfg)
	rules := curation.NewRuleScorer(registry, keywords, trusted, companyCategory)

	judge := buildJudge(ctx, cfg, logger)
	scorer := curation.NewScorer(rules, judge, cfg.Curation.Concurrency,
		logger.With("component", "scorer"))

	source, err := buildSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	var repository ports.RunRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	var writer ports.ResultWriter
	if cfg.Artifacts.OutputPath != "" {
		writer = artifact.NewWriter(cfg.Artifacts.OutputPath)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken,
			cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Scorer:     scorer,
		Tagger:     curation.NewTagger(registry),
		Repository: repository,
		Writer:     writer,
		Notifier:   notifier,
		Policy: usecase.Policy{
			MinScore: cfg.Curation.MinScore,
			MaxItems: cfg.Curation.MaxItems,
		},
		Logger: logger.With("component", "pipeline"),
	})

	application := &Application{cfg: cfg, pipeline: pipeline, logger: logger}

	if cfg.Scheduler.Enabled {
		driver := scheduler.NewIntervalScheduler(cfg.Scheduler.IntervalDuration())
		application.scheduler = usecase.NewScheduler(driver, pipeline,
			logger.With("component", "scheduler"))
	}

	return application, nil
}

// Run executes a single curation pass, or keeps running on the
// configured interval when the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		<-ctx.Done()
		return a.scheduler.Stop(context.Background())
	}

	_, err := a.pipeline.Run(ctx)
	return err
}

func buildRegistry(cfg config.Config) (curation.EntityRegistry, error) {
	entities := curation.DefaultEntities()
	if len(cfg.Entities) > 0 {
		entities = make([]curation.Entity, 0, len(cfg.Entities))
		for _, e := range cfg.Entities {
			entities = append(entities, curation.Entity{ID: e.ID, Aliases: e.Aliases})
		}
	}
	return curation.NewEntityRegistry(entities)
}

func buildTables(cfg config.Config) (curation.KeywordTable, []string, string) {
	keywords := curation.DefaultKeywords()
	if len(cfg.Keywords.Technology) > 0 {
		keywords.Technology = cfg.Keywords.Technology
	}
	if len(cfg.Keywords.Industry) > 0 {
		keywords.Industry = cfg.Keywords.Industry
	}
	if len(cfg.Keywords.Negative) > 0 {
		keywords.Negative = cfg.Keywords.Negative
	}
	keywords = curation.NewKeywordTable(keywords.Technology, keywords.Industry, keywords.Negative)

	trusted := curation.DefaultTrustedSources()
	if len(cfg.Keywords.TrustedSources) > 0 {
		trusted = cfg.Keywords.TrustedSources
	}

	companyCategory := curation.DefaultCompanyCategory
	if cfg.Keywords.CompanyCategory != "" {
		companyCategory = cfg.Keywords.CompanyCategory
	}

	return keywords, trusted, companyCategory
}

// buildJudge returns nil when AI scoring is disabled or no credential
// is present; the scorer then runs rule-based for the whole batch.
func buildJudge(ctx context.Context, cfg config.Config, logger *slog.Logger) ports.RelevanceJudge {
	if !cfg.Curation.AIScoring() || cfg.Gemini.APIKey == "" {
		return nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Warn("gemini client unavailable, using rule-based scoring", "error", err)
		return nil
	}

	return llm.NewGeminiJudge(client, cfg.Gemini.Model)
}

func buildSource(cfg config.Config, logger *slog.Logger) (ports.ItemSource, error) {
	if cfg.Artifacts.InputPath != "" {
		return artifact.NewFileSource(cfg.Artifacts.InputPath), nil
	}

	registry := sources.NewRegistry()
	registry.Register(feeds.NewFeedScanner())
	registry.Register(scraper.NewSiteScanner(nil))
	registry.Register(search.NewDuckDuckGoScanner(&http.Client{Timeout: 10 * time.Second}))

	var queries []collect.AlertQuery
	if cfg.Search.CSVPath != "" {
		loaded, err := collect.LoadAlertsCSV(cfg.Search.CSVPath)
		if err != nil {
			logger.Warn("alerts csv not loaded", "path", cfg.Search.CSVPath, "error", err)
		} else {
			queries = loaded
		}
	}

	return collect.NewStrategySource(
		registry,
		cfg.Sources,
		queries,
		cfg.Curation.MaxAge(),
		cfg.Search.MaxResults,
		logger.With("component", "collector"),
	), nil
}
