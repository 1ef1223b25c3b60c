package families

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/rate"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colHouseholds             = "C_MEN"
	colCouplesWithChildren    = "C_COUPAENF"
	colSingleParents          = "C_FAMMONO"
	colSingleFathers          = "C_HMONO"
	colSingleMothers          = "C_FMONO"
	colCouplesWithoutChildren = "C_COUPSENF"
)

// Service aggregates household composition.
type Service struct {
	tbl *table.Table
}

func NewFamiliesService(tbl *table.Table) *Service {
	return &Service{tbl: tbl}
}

func (s *Service) Available() bool {
	return s.tbl != nil
}

func (s *Service) Aggregate(communes []string, years *domain.YearRange) map[domain.Year]domain.FamilyRecord {
	res := make(map[domain.Year]domain.FamilyRecord)
	if s.tbl == nil || len(communes) == 0 {
		return res
	}

	minYear, maxYear := years.Bounds()
	rows := s.tbl.Select(table.Query{Codes: communes, MinYear: minYear, MaxYear: maxYear})

	for year, yearRows := range table.ByYear(rows) {
		rec := domain.FamilyRecord{
			TotalHouseholds:        table.Sum(yearRows, colHouseholds),
			CouplesWithChildren:    table.Sum(yearRows, colCouplesWithChildren),
			SingleParents:          table.Sum(yearRows, colSingleParents),
			SingleFathers:          table.Sum(yearRows, colSingleFathers),
			SingleMothers:          table.Sum(yearRows, colSingleMothers),
			CouplesWithoutChildren: table.Sum(yearRows, colCouplesWithoutChildren),
		}
		rec.Percentages = domain.FamilyShares{
			CouplesWithChildren:    rate.SafeRatio(rec.CouplesWithChildren, rec.TotalHouseholds),
			SingleParents:          rate.SafeRatio(rec.SingleParents, rec.TotalHouseholds),
			SingleFathers:          rate.SafeRatio(rec.SingleFathers, rec.TotalHouseholds),
			SingleMothers:          rate.SafeRatio(rec.SingleMothers, rec.TotalHouseholds),
			CouplesWithoutChildren: rate.SafeRatio(rec.CouplesWithoutChildren, rec.TotalHouseholds),
		}
		res[year] = rec
	}

	return res
}

// Evolution compares the first and the last year of data. It is nil with fewer than two
// years.
func Evolution(data map[domain.Year]domain.FamilyRecord) map[string]rate.Evolution {
	years := table.SortedYears(data)
	if len(years) < 2 {
		return nil
	}

	first, last := years[0], years[len(years)-1]
	start, end := data[first], data[last]

	evolve := func(from, to float64) rate.Evolution {
		return rate.NewEvolution(first, last, from, to)
	}

	return map[string]rate.Evolution{
		"total_households":         evolve(start.TotalHouseholds, end.TotalHouseholds),
		"couples_with_children":    evolve(start.CouplesWithChildren, end.CouplesWithChildren),
		"single_parents":           evolve(start.SingleParents, end.SingleParents),
		"single_fathers":           evolve(start.SingleFathers, end.SingleFathers),
		"single_mothers":           evolve(start.SingleMothers, end.SingleMothers),
		"couples_without_children": evolve(start.CouplesWithoutChildren, end.CouplesWithoutChildren),
	}
}
