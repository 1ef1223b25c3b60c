package employment

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/rate"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colPopulation = "P_POP1564"
	colActive     = "P_ACT1564"
	colEmployed   = "P_ACTOCC1564"
	colUnemployed = "P_CHOM1564"

	colWomen       = "P_F2554"
	colActiveWomen = "P_F2554_ACT"
)

// Service combines the activity table and the women's characteristics table. Both must be
// loaded; a year present in only one of them is still reported, with the other's figures
// at zero.
type Service struct {
	activity        *table.Table
	characteristics *table.Table
}

func NewEmploymentService(activity, characteristics *table.Table) *Service {
	return &Service{activity: activity, characteristics: characteristics}
}

func (s *Service) Available() bool {
	return s.activity != nil && s.characteristics != nil
}

func (s *Service) Aggregate(communes []string, years *domain.YearRange) map[domain.Year]domain.EmploymentRecord {
	res := make(map[domain.Year]domain.EmploymentRecord)
	if !s.Available() || len(communes) == 0 {
		return res
	}

	minYear, maxYear := years.Bounds()
	q := table.Query{Codes: communes, MinYear: minYear, MaxYear: maxYear}

	for year, rows := range table.ByYear(s.activity.Select(q)) {
		rec := res[year]
		rec.Population1564 = table.Sum(rows, colPopulation)
		rec.Active1564 = table.Sum(rows, colActive)
		rec.Employed1564 = table.Sum(rows, colEmployed)
		rec.Unemployed1564 = table.Sum(rows, colUnemployed)
		res[year] = rec
	}

	for year, rows := range table.ByYear(s.characteristics.Select(q)) {
		rec := res[year]
		rec.Women2554 = table.Sum(rows, colWomen)
		rec.ActiveWomen2554 = table.Sum(rows, colActiveWomen)
		res[year] = rec
	}

	for year, rec := range res {
		rec.ActivityRate = rate.SafeRatio(rec.Active1564, rec.Population1564)
		rec.EmploymentRate = rate.SafeRatio(rec.Employed1564, rec.Population1564)
		rec.UnemploymentRate = rate.SafeRatio(rec.Unemployed1564, rec.Active1564)
		rec.WomenActivityRate = rate.SafeRatio(rec.ActiveWomen2554, rec.Women2554)
		res[year] = rec
	}

	return res
}
