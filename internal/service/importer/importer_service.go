package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Service copies source files into Postgres so that servers can start from the database.
type Service struct {
	store  store.Store
	source datasets.Source
	label  string
}

// NewImporterService reads datasets from source; label is recorded with every run (the
// data directory, typically).
func NewImporterService(store store.Store, source datasets.Source, label string) *Service {
	return &Service{store: store, source: source, label: label}
}

// Import processes the catalog with at most parallelism datasets in flight. A failing
// dataset does not stop the others; the first error is returned once all are done.
func (s *Service) Import(ctx context.Context, catalog []datasets.Dataset, parallelism int) ([]*domain.ImportRun, error) {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("importer.Import: %w", err)
	}

	runs := make([]*domain.ImportRun, 0, len(catalog))
	runsMx := sync.Mutex{}

	var eg errgroup.Group
	if parallelism > 0 {
		eg.SetLimit(parallelism)
	}

	for _, d := range catalog {
		d := d
		eg.Go(func() error {
			run, err := s.importDataset(ctx, d)
			if err != nil {
				logger.Errorf(ctx, "import %s: %s", d.Name(), err.Error())
				return fmt.Errorf("dataset-%s: %w", d.Name(), err)
			}

			runsMx.Lock()
			defer runsMx.Unlock()
			runs = append(runs, run)
			return nil
		})
	}

	err := eg.Wait()

	sort.Slice(runs, func(i, j int) bool { return runs[i].Dataset < runs[j].Dataset })
	return runs, err
}

func (s *Service) importDataset(ctx context.Context, d datasets.Dataset) (*domain.ImportRun, error) {
	ctx = logger.WithFields(ctx, "dataset", d.Name())

	tbl, err := s.source.LoadTable(ctx, d.Schema)
	if err != nil {
		return nil, fmt.Errorf("source.LoadTable: %w", err)
	}

	n, err := s.store.ReplaceTable(ctx, tbl)
	if err != nil {
		return nil, fmt.Errorf("store.ReplaceTable: %w", err)
	}

	run := &domain.ImportRun{
		Dataset:   d.Name(),
		Source:    s.label,
		Rows:      n,
		Anomalies: int64(tbl.Anomalies().Total()),
	}
	if err = s.store.RecordImport(ctx, run); err != nil {
		return nil, fmt.Errorf("store.RecordImport: %w", err)
	}

	logger.Info(ctx, "dataset imported", "rows", n, "anomalies", run.Anomalies)
	return run, nil
}
