package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

// LoadTable reads the SQL table named after the dataset back through the same builder as
// the file loaders, so codes and numbers get the same normalization.
func (s *store) LoadTable(ctx context.Context, schema table.Schema) (*table.Table, error) {
	query := builder().Select("*").From(pgx.Identifier{schema.Name}.Sanitize())

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store.LoadTable %s: %w", schema.Name, wrapErr(err))
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}

	b, err := table.NewBuilder(schema, header)
	if err != nil {
		return nil, fmt.Errorf("store.LoadTable: %w", err)
	}

	record := make([]string, len(header))
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("store.LoadTable %s: %w", schema.Name, err)
		}
		for i, v := range values {
			record[i] = valueText(v)
		}
		b.Append(record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store.LoadTable %s: %w", schema.Name, wrapErr(err))
	}

	return b.Table(), nil
}

// ReplaceTable creates the dataset table when missing and swaps its content for tbl in
// one transaction. Readers never see a half-imported dataset.
func (s *store) ReplaceTable(ctx context.Context, tbl *table.Table) (int64, error) {
	name := tbl.Name()
	columns := tbl.Columns()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("store.ReplaceTable: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Errorf(ctx, "store.ReplaceTable rollback: %s", err.Error())
		}
	}()

	if _, err = tx.Exec(ctx, createTableSQL(tbl.Schema(), columns)); err != nil {
		return 0, fmt.Errorf("store.ReplaceTable create %s: %w", name, err)
	}
	if _, err = tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return 0, fmt.Errorf("store.ReplaceTable truncate %s: %w", name, err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{name}, sqlColumns(columns), pgx.CopyFromRows(copyRows(tbl)))
	if err != nil {
		return 0, fmt.Errorf("store.ReplaceTable copy %s: %w", name, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("store.ReplaceTable commit %s: %w", name, err)
	}

	return n, nil
}

func sqlColumns(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = strings.ToLower(c)
	}
	return out
}

// createTableSQL declares numeric columns as double precision and everything else,
// codes included, as text.
func createTableSQL(schema table.Schema, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		typ := "text"
		if schema.IsNumeric(c) {
			typ = "double precision"
		}
		defs[i] = pgx.Identifier{strings.ToLower(c)}.Sanitize() + " " + typ
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{schema.Name}.Sanitize(), strings.Join(defs, ", "))
}

// copyRows renders the normalized rows: codes padded, numbers parsed.
func copyRows(tbl *table.Table) [][]any {
	schema := tbl.Schema()
	columns := tbl.Columns()
	rows := tbl.Select(table.Query{})

	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		values := make([]any, len(columns))
		for i, c := range columns {
			switch {
			case c == schema.CodeColumn:
				values[i] = r.Code()
			case schema.IsNumeric(c):
				values[i] = r.Float(c)
			default:
				values[i] = r.String(c)
			}
		}
		out = append(out, values)
	}

	return out
}

func valueText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	default:
		return fmt.Sprint(val)
	}
}
