package importer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	tables map[string]*table.Table
	runs   []*domain.ImportRun
}

func (m *memoryStore) LoadTable(_ context.Context, schema table.Schema) (*table.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl, ok := m.tables[schema.Name]
	if !ok {
		return nil, errors.New("no such table")
	}
	return tbl, nil
}

func (m *memoryStore) ReplaceTable(_ context.Context, tbl *table.Table) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[tbl.Name()] = tbl
	return int64(tbl.Len()), nil
}

func (m *memoryStore) EnsureSchema(context.Context) error { return nil }

func (m *memoryStore) RecordImport(_ context.Context, run *domain.ImportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run.ID = int64(len(m.runs) + 1)
	run.ImportedAt = time.Now()
	m.runs = append(m.runs, run)
	return nil
}

func (m *memoryStore) ListImports(context.Context) ([]*domain.ImportRun, error) {
	return m.runs, nil
}

type fixtureSource map[string]*table.Table

func (f fixtureSource) LoadTable(_ context.Context, schema table.Schema) (*table.Table, error) {
	tbl, ok := f[schema.Name]
	if !ok {
		return nil, errors.New("file not found")
	}
	return tbl, nil
}

func TestService_Import(t *testing.T) {
	src := fixtureSource{
		datasets.Geography: datasetstest.Geography(t),
		datasets.Births: datasetstest.Table(t, datasets.Births,
			"GEO;GEO_OBJECT;TIME_PERIOD;OBS_VALUE",
			"59350;COM;2021;2500",
			";COM;2021;1",
		),
	}
	st := &memoryStore{tables: map[string]*table.Table{}}

	geography, _ := datasets.ByName(datasets.Geography)
	births, _ := datasets.ByName(datasets.Births)

	runs, err := NewImporterService(st, src, "./data").Import(context.Background(), []datasets.Dataset{births, geography}, 2)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, datasets.Births, runs[0].Dataset)
	assert.Equal(t, int64(1), runs[0].Rows)
	assert.Equal(t, int64(1), runs[0].Anomalies)
	assert.Equal(t, "./data", runs[0].Source)
	assert.Equal(t, int64(5), runs[1].Rows)
	assert.Len(t, st.runs, 2)
}

func TestService_Import_OneFailureDoesNotStopTheOthers(t *testing.T) {
	src := fixtureSource{datasets.Geography: datasetstest.Geography(t)}
	st := &memoryStore{tables: map[string]*table.Table{}}

	runs, err := NewImporterService(st, src, "./data").Import(context.Background(), datasets.Catalog, 1)
	require.Error(t, err)

	require.Len(t, runs, 1)
	assert.Equal(t, datasets.Geography, runs[0].Dataset)
	assert.Contains(t, st.tables, datasets.Geography)
}
