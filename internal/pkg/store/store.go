package store

import (
	"context"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/store/xpgx"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

type Pool = xpgx.Pool

// Store keeps normalized dataset tables in Postgres, one SQL table per dataset, plus a
// log of import runs.
type Store interface {
	LoadTable(ctx context.Context, schema table.Schema) (*table.Table, error)
	ReplaceTable(ctx context.Context, tbl *table.Table) (int64, error)

	EnsureSchema(ctx context.Context) error
	RecordImport(ctx context.Context, run *domain.ImportRun) error
	ListImports(ctx context.Context) ([]*domain.ImportRun, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
