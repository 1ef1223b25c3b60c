package store

import (
	"context"
	"fmt"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/store/xpgx"
)

var importRunColumns = []string{"id", "dataset", "source", "row_count", "anomalies", "imported_at"}

func (s *store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+tableImportRuns+` (
		id          bigserial PRIMARY KEY,
		dataset     text NOT NULL,
		source      text NOT NULL,
		row_count   bigint NOT NULL,
		anomalies   bigint NOT NULL,
		imported_at timestamptz NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("store.EnsureSchema: %w", err)
	}
	return nil
}

func (s *store) RecordImport(ctx context.Context, run *domain.ImportRun) error {
	query := builder().Insert(tableImportRuns).
		Columns("dataset", "source", "row_count", "anomalies").
		Values(run.Dataset, run.Source, run.Rows, run.Anomalies).
		Suffix("RETURNING id, imported_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("store.RecordImport: %w", err)
	}

	if err = s.pool.QueryRow(ctx, sql, args...).Scan(&run.ID, &run.ImportedAt); err != nil {
		return fmt.Errorf("store.RecordImport: %w", wrapErr(err))
	}
	return nil
}

// ListImports returns the latest run of every dataset.
func (s *store) ListImports(ctx context.Context) ([]*domain.ImportRun, error) {
	query := builder().Select(importRunColumns...).
		Options("DISTINCT ON (dataset)").
		From(tableImportRuns).
		OrderBy("dataset", "imported_at DESC")

	runs, err := xpgx.Select[domain.ImportRun](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("store.ListImports: %w", wrapErr(err))
	}
	return runs, nil
}
