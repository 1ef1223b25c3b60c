package datasets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DegradesPerDataset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "naissances.csv"),
		[]byte("GEO;GEO_OBJECT;TIME_PERIOD;OBS_VALUE\n1001;COM;2020;12\n1001;COM;2021;x\n"), 0o600))

	births, _ := ByName(Births)
	population, _ := ByName(Population)

	tables := Load(context.Background(), FileSource{Dir: dir}, []Dataset{population, births})

	assert.Nil(t, tables.Get(Population), "missing file leaves the dataset unavailable")
	require.NotNil(t, tables.Get(Births))
	assert.Equal(t, 2, tables.Get(Births).Len())

	status := tables.Status()
	require.Len(t, status, 2)
	assert.False(t, status[0].Available)
	assert.NotEmpty(t, status[0].Error)
	assert.True(t, status[1].Available)
	assert.Equal(t, 1, status[1].Anomalies.NonNumeric)
}

type failingSource struct{}

func (failingSource) LoadTable(context.Context, table.Schema) (*table.Table, error) {
	return nil, errors.New("connection refused")
}

func TestLoad_AllFailing(t *testing.T) {
	tables := Load(context.Background(), failingSource{}, Catalog)

	for _, d := range Catalog {
		assert.Nil(t, tables.Get(d.Name()))
	}
	assert.Len(t, tables.Status(), len(Catalog))
}

func TestCatalog_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Catalog {
		assert.False(t, seen[d.Name()], d.Name())
		seen[d.Name()] = true
		assert.NotEmpty(t, d.File)
	}
}
