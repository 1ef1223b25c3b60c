package datasets

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/metrics"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/spf13/viper"
)

// Source produces a normalized table for a schema.
type Source interface {
	LoadTable(ctx context.Context, schema table.Schema) (*table.Table, error)
}

// FileSource reads datasets from data.dir; datasets.<name>.file overrides a file name.
type FileSource struct {
	Dir string
}

func NewFileSource() FileSource {
	return FileSource{Dir: viper.GetString(constants.ViperDataDirKey)}
}

func (s FileSource) Path(d Dataset) string {
	file := viper.GetString(fmt.Sprintf("%s.%s.file", constants.ViperDatasetsPrefix, d.Name()))
	if file == "" {
		file = d.File
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(s.Dir, file)
}

func (s FileSource) LoadTable(_ context.Context, schema table.Schema) (*table.Table, error) {
	d, ok := ByName(schema.Name)
	if !ok {
		d = Dataset{Schema: schema, File: schema.Name + ".csv"}
	}

	tbl, err := table.ReadFile(s.Path(d), schema)
	if err != nil {
		return nil, fmt.Errorf("table.ReadFile: %w", err)
	}

	return tbl, nil
}

type Status struct {
	Name      string          `json:"name"`
	Available bool            `json:"available"`
	Rows      int             `json:"rows"`
	Anomalies table.Anomalies `json:"anomalies"`
	Error     string          `json:"error,omitempty"`
	LoadTime  string          `json:"load_time"`
}

// Tables is the read-only result of the startup phase. A missing entry means the dataset
// failed to load and its domain is unavailable.
type Tables struct {
	tables map[string]*table.Table
	status []Status
}

func NewTables(tables map[string]*table.Table) *Tables {
	t := &Tables{tables: make(map[string]*table.Table, len(tables))}
	for name, tbl := range tables {
		if tbl == nil {
			continue
		}
		t.tables[name] = tbl
		t.status = append(t.status, Status{Name: name, Available: true, Rows: tbl.Len(), Anomalies: tbl.Anomalies()})
	}
	sort.Slice(t.status, func(i, j int) bool { return t.status[i].Name < t.status[j].Name })
	return t
}

// Get returns nil for an unavailable dataset.
func (t *Tables) Get(name string) *table.Table {
	if t == nil {
		return nil
	}
	return t.tables[name]
}

func (t *Tables) Status() []Status {
	if t == nil {
		return nil
	}
	return append([]Status(nil), t.status...)
}

// Load reads every dataset of the catalog one after the other. A failing dataset is
// logged and skipped; the others still load.
func Load(ctx context.Context, src Source, catalog []Dataset) *Tables {
	tables := &Tables{tables: make(map[string]*table.Table, len(catalog))}

	for _, d := range catalog {
		dctx := logger.WithFields(ctx, "dataset", d.Name())
		start := time.Now()

		tbl, err := src.LoadTable(dctx, d.Schema)
		elapsed := time.Since(start)
		if err != nil {
			logger.Warnf(dctx, "dataset unavailable: %s", err.Error())
			metrics.DatasetFailed(d.Name())
			tables.status = append(tables.status, Status{
				Name:     d.Name(),
				Error:    err.Error(),
				LoadTime: elapsed.String(),
			})
			continue
		}

		anomalies := tbl.Anomalies()
		reportAnomalies(dctx, d.Name(), anomalies)

		metrics.DatasetLoaded(d.Name(), tbl.Len())
		logger.Info(dctx, "dataset loaded", "rows", tbl.Len(), "duration", elapsed.String())

		tables.tables[d.Name()] = tbl
		tables.status = append(tables.status, Status{
			Name:      d.Name(),
			Available: true,
			Rows:      tbl.Len(),
			Anomalies: anomalies,
			LoadTime:  elapsed.String(),
		})
	}

	return tables
}

func reportAnomalies(ctx context.Context, dataset string, a table.Anomalies) {
	metrics.Anomalies(dataset, "non_numeric", a.NonNumeric)
	metrics.Anomalies(dataset, "bad_year", a.BadYear)
	metrics.Anomalies(dataset, "missing_code", a.MissingKey)
	metrics.Anomalies(dataset, "short_row", a.ShortRows)

	if a.Total() > 0 {
		logger.Warn(ctx, "data anomalies absorbed",
			"non_numeric", a.NonNumeric,
			"bad_year", a.BadYear,
			"missing_code", a.MissingKey,
			"short_rows", a.ShortRows,
		)
	}
}
