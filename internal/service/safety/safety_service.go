package safety

import (
	"sort"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colClass = "CLASSE"
	colUnit  = "UNITE"
	colFacts = "FAITS"
	colRate  = "TAUX_POUR_MILLE"
)

// Service reads recorded offences published per commune, department and region.
type Service struct {
	tables map[domain.Level]*table.Table
}

func NewSafetyService(tables map[domain.Level]*table.Table) *Service {
	return &Service{tables: tables}
}

func (s *Service) Supports(level domain.Level) bool {
	switch level {
	case domain.LevelCommune, domain.LevelDepartment, domain.LevelRegion:
		return true
	}
	return false
}

func (s *Service) Available(level domain.Level) bool {
	return s.tables[level] != nil
}

// Read returns the indicators of one territory per year, ordered by class. Years the
// source does not publish are absent; the first row of a (year, class) pair wins.
func (s *Service) Read(level domain.Level, code string, years *domain.YearRange) map[domain.Year][]domain.SafetyIndicator {
	res := make(map[domain.Year][]domain.SafetyIndicator)
	if !s.Supports(level) {
		return res
	}

	minYear, maxYear := years.Bounds()
	rows := s.tables[level].Select(table.Query{
		Codes:   []string{level.NormalizeCode(code)},
		MinYear: minYear,
		MaxYear: maxYear,
	})

	type key struct {
		year  domain.Year
		class string
	}
	seen := make(map[key]struct{}, len(rows))

	for _, r := range rows {
		k := key{year: r.Year(), class: r.String(colClass)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		res[k.year] = append(res[k.year], domain.SafetyIndicator{
			Class:        k.class,
			Unit:         r.String(colUnit),
			Facts:        r.Float(colFacts),
			RatePerMille: r.Float(colRate),
		})
	}

	for _, indicators := range res {
		sort.SliceStable(indicators, func(i, j int) bool {
			return indicators[i].Class < indicators[j].Class
		})
	}

	return res
}
