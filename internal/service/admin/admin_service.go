package admin

import (
	"context"
	"fmt"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/store"
)

type DatasetsReport struct {
	Source   string              `json:"source"`
	Datasets []datasets.Status   `json:"datasets"`
	Imports  []*domain.ImportRun `json:"imports,omitempty"`
}

// Service reports what the process loaded at startup. The store is nil when datasets
// are read from files.
type Service struct {
	tables *datasets.Tables
	store  store.Store
	source string
}

func NewAdminService(tables *datasets.Tables, store store.Store, source string) *Service {
	return &Service{tables: tables, store: store, source: source}
}

// Loaded is the startup load report alone; it never touches the database.
func (s *Service) Loaded() []datasets.Status {
	return s.tables.Status()
}

func (s *Service) Datasets(ctx context.Context) (*DatasetsReport, error) {
	report := &DatasetsReport{Source: s.source, Datasets: s.Loaded()}

	if s.store != nil {
		imports, err := s.store.ListImports(ctx)
		if err != nil {
			return nil, fmt.Errorf("store.ListImports: %w", err)
		}
		report.Imports = imports
	}

	return report, nil
}
