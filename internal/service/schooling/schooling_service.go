package schooling

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/rate"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colAge    = "AGEREV"
	colStatus = "ILETUD"
	colCount  = "NB"
)

// enrolled holds the place-of-study codes that mean the child attends school.
var enrolled = map[string]struct{}{"1": {}, "2": {}, "3": {}, "4": {}}

type Service struct {
	tbl *table.Table
}

func NewSchoolingService(tbl *table.Table) *Service {
	return &Service{tbl: tbl}
}

func (s *Service) Available() bool {
	return s.tbl != nil
}

func (s *Service) Aggregate(communes []string, years *domain.YearRange) map[domain.Year]domain.SchoolingRecord {
	res := make(map[domain.Year]domain.SchoolingRecord)
	if s.tbl == nil || len(communes) == 0 {
		return res
	}

	minYear, maxYear := years.Bounds()
	rows := s.tbl.Select(table.Query{Codes: communes, MinYear: minYear, MaxYear: maxYear})

	for year, yearRows := range table.ByYear(rows) {
		var age2, age3To5 rate.Fraction
		for _, r := range yearRows {
			n := r.Float(colCount)
			f := rate.Fraction{Denominator: n}
			if _, ok := enrolled[r.String(colStatus)]; ok {
				f.Numerator = n
			}

			switch age := r.Float(colAge); {
			case age == 2:
				age2 = age2.Add(f)
			case age >= 3 && age <= 5:
				age3To5 = age3To5.Add(f)
			}
		}

		res[year] = domain.SchoolingRecord{
			Age2Total:       age2.Denominator,
			Age2Enrolled:    age2.Numerator,
			Age2Rate:        age2.Rate(),
			Age3To5Total:    age3To5.Denominator,
			Age3To5Enrolled: age3To5.Numerator,
			Age3To5Rate:     age3To5.Rate(),
		}
	}

	return res
}
