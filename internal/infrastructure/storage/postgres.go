// Package storage persists run history and written-keyword state in Postgres.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ceddto100/SEO-LEAD/internal/ports"
)

// PostgresRepository stores workflow runs and the written-keyword index.
// All methods tolerate a nil db so the pipeline can run without Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RunRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyWritten returns the subset of keywords that already have articles.
func (r *PostgresRepository) AlreadyWritten(ctx context.Context, keywords []string) (map[string]bool, error) {
	if r.db == nil || len(keywords) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("keyword").
		From("written_articles").
		Where("keyword = ANY(?)", pq.StringArray(keywords)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build written query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query written: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var keyword string
		if err := rows.Scan(&keyword); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		result[keyword] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// MarkWritten records a finished article for dedup and reporting.
func (r *PostgresRepository) MarkWritten(ctx context.Context, keyword, slug string, seoScore int) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("written_articles").
		Columns("keyword", "slug", "seo_score").
		Values(keyword, slug, seoScore).
		Suffix(`ON CONFLICT (keyword) DO UPDATE
		        SET slug = EXCLUDED.slug,
		            seo_score = EXCLUDED.seo_score,
		            updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build written upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert written: %w", err)
	}
	return nil
}

// SaveRun appends one workflow run with its summary payload.
func (r *PostgresRepository) SaveRun(ctx context.Context, workflow string, summary map[string]any) error {
	if r.db == nil {
		return nil
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	query, args, err := r.builder.
		Insert("workflow_runs").
		Columns("workflow", "summary").
		Values(workflow, payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}
