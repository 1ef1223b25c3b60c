package population

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/rate"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colAge   = "AGED100"
	colCount = "NB"
)

// Service aggregates population counts by age band.
type Service struct {
	tbl *table.Table
}

func NewPopulationService(tbl *table.Table) *Service {
	return &Service{tbl: tbl}
}

func (s *Service) Available() bool {
	return s.tbl != nil
}

func ageBetween(from, to float64) func(table.Row) bool {
	return func(r table.Row) bool {
		age := r.Float(colAge)
		return age >= from && age <= to
	}
}

// Aggregate sums the counts of every commune of the group per year; rates are derived
// from the sums.
func (s *Service) Aggregate(communes []string, years *domain.YearRange) map[domain.Year]domain.PopulationRecord {
	res := make(map[domain.Year]domain.PopulationRecord)
	if s.tbl == nil || len(communes) == 0 {
		return res
	}

	minYear, maxYear := years.Bounds()
	rows := s.tbl.Select(table.Query{Codes: communes, MinYear: minYear, MaxYear: maxYear})

	for year, yearRows := range table.ByYear(rows) {
		total := table.Sum(yearRows, colCount)
		under3 := table.SumWhere(yearRows, colCount, ageBetween(0, 2))
		threeToFive := table.SumWhere(yearRows, colCount, ageBetween(3, 5))

		res[year] = domain.PopulationRecord{
			TotalPopulation: total,
			Under3:          under3,
			ThreeToFive:     threeToFive,
			Under3Rate:      rate.SafeRatio(under3, total),
			ThreeToFiveRate: rate.SafeRatio(threeToFive, total),
		}
	}

	return res
}
