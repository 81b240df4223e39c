package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"LovdataScanner/internal/domain"
	"LovdataScanner/internal/ports"
)

// PostgresRepository keeps run summaries and per-document classification
// audit records in Postgres. Entirely optional: the ledger itself lives in
// the sheet, this is history for debugging rule changes.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RunRepository = (*PostgresRepository)(nil)

// Open dials Postgres with the pq driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveRun appends one run summary row.
func (r *PostgresRepository) SaveRun(ctx context.Context, run domain.RunSummary) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("scrape_runs").
		Columns("laws_kept", "rows_written", "ambiguous_marked", "stale_marked", "started_at", "finished_at").
		Values(run.LawsKept, run.RowsWritten, run.AmbiguousMarked, run.StaleMarked, run.StartedAt, run.FinishedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// SaveClassifications upserts the latest status and reason per document url.
func (r *PostgresRepository) SaveClassifications(ctx context.Context, docs []domain.Document) error {
	if r.db == nil || len(docs) == 0 {
		return nil
	}

	insert := r.builder.
		Insert("document_classifications").
		Columns("url", "kind", "title", "doc_date", "status", "reason")

	count := 0
	for _, doc := range docs {
		if doc.URL == "" {
			continue
		}
		insert = insert.Values(doc.URL, string(doc.Kind), doc.Title, doc.Date, string(doc.Status), doc.Reason)
		count++
	}
	if count == 0 {
		return nil
	}

	query, args, err := insert.
		Suffix(`ON CONFLICT (url) DO UPDATE
            SET title = EXCLUDED.title,
                doc_date = EXCLUDED.doc_date,
                status = EXCLUDED.status,
                reason = EXCLUDED.reason,
                updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build classification upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert classifications: %w", err)
	}
	return nil
}
