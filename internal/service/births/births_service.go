package births

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colObject = "GEO_OBJECT"
	colValue  = "OBS_VALUE"

	// objectCommune marks commune rows; the source also carries pre-aggregated rows for
	// upper levels that must not be added on top.
	objectCommune = "COM"
)

type Service struct {
	tbl *table.Table
}

func NewBirthsService(tbl *table.Table) *Service {
	return &Service{tbl: tbl}
}

func (s *Service) Available() bool {
	return s.tbl != nil
}

func (s *Service) Aggregate(communes []string, years *domain.YearRange) map[domain.Year]domain.BirthsRecord {
	res := make(map[domain.Year]domain.BirthsRecord)
	if s.tbl == nil || len(communes) == 0 {
		return res
	}

	minYear, maxYear := years.Bounds()
	rows := s.tbl.Select(table.Query{
		Codes:   communes,
		MinYear: minYear,
		MaxYear: maxYear,
		Eq:      map[string]string{colObject: objectCommune},
	})

	for year, yearRows := range table.ByYear(rows) {
		res[year] = domain.BirthsRecord{Births: table.Sum(yearRows, colValue)}
	}

	return res
}
