package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
)

// PostgresRepository records curation runs and their selected items.
// It is nil-safe: without a database handle every call is a no-op, so
// the pipeline works unchanged in file-only deployments.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.RunRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveRun inserts the run header and every curated item.
func (r *PostgresRepository) SaveRun(ctx context.Context, result domain.CurationResult) error {
	if r == nil || r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = r.sb.Insert("curation_runs").
		Columns("id", "generated_at", "input_count", "duplicates_removed",
			"total_items", "min_score", "max_items", "ai_enabled").
		Values(result.RunID, result.GeneratedAt, result.InputCount,
			result.DuplicatesRemoved, result.TotalItems,
			result.Config.MinScore, result.Config.MaxItems, result.Config.AIEnabled).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for position, article := range result.Articles {
		_, err = r.sb.Insert("curation_items").
			Columns("run_id", "position", "title", "source", "published_on",
				"url", "category", "relevance_score", "company_tags").
			Values(result.RunID, position+1, article.Title, article.Source,
				article.Date, article.URL, article.Category,
				article.RelevanceScore, pq.Array(article.CompanyTags)).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", position+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	return nil
}
