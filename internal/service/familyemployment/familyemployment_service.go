package familyemployment

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/rate"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colCohort   = "AGEFORD"
	colCategory = "TF12"
	colCount    = "NB"

	cohortUnder3      = "00"
	cohortThreeToFive = "03"
)

type category struct {
	code  string
	label string
}

// categories is the order of the published breakdown.
var categories = []category{
	{"11", "Couple, both parents employed"},
	{"12", "Couple, only the father employed"},
	{"13", "Couple, only the mother employed"},
	{"14", "Couple, neither parent employed"},
	{"21", "Single father, employed"},
	{"22", "Single father, not employed"},
	{"23", "Single mother, employed"},
	{"24", "Single mother, not employed"},
}

// Service breaks down young children by the employment situation of their family.
type Service struct {
	tbl *table.Table
}

func NewFamilyEmploymentService(tbl *table.Table) *Service {
	return &Service{tbl: tbl}
}

func (s *Service) Available() bool {
	return s.tbl != nil
}

func (s *Service) Aggregate(communes []string, years *domain.YearRange) map[domain.Year]domain.FamilyEmploymentRecord {
	res := make(map[domain.Year]domain.FamilyEmploymentRecord)
	if s.tbl == nil || len(communes) == 0 {
		return res
	}

	minYear, maxYear := years.Bounds()
	rows := s.tbl.Select(table.Query{
		Codes:   communes,
		MinYear: minYear,
		MaxYear: maxYear,
		In:      map[string][]string{colCohort: {cohortUnder3, cohortThreeToFive}},
	})

	for year, yearRows := range table.ByYear(rows) {
		res[year] = domain.FamilyEmploymentRecord{
			Under3:      breakdown(yearRows, cohortUnder3),
			ThreeToFive: breakdown(yearRows, cohortThreeToFive),
		}
	}

	return res
}

func breakdown(rows []table.Row, cohort string) domain.CohortBreakdown {
	counts := make(map[string]float64, len(categories))
	var total float64
	for _, r := range rows {
		if r.String(colCohort) != cohort {
			continue
		}
		n := r.Float(colCount)
		total += n
		counts[r.String(colCategory)] += n
	}

	out := domain.CohortBreakdown{
		Total:      total,
		Categories: make([]domain.CategoryShare, 0, len(categories)),
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, domain.CategoryShare{
			Code:       c.code,
			Label:      c.label,
			Count:      counts[c.code],
			Percentage: rate.SafeRatio(counts[c.code], total),
		})
	}

	return out
}
