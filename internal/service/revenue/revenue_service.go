package revenue

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

const (
	colMedian      = "MED"
	colFirstDecile = "D1"
	colNinthDecile = "D9"
	colPovertyRate = "TP60"
)

// Service reads income figures from per-level tables. Medians and deciles cannot be
// summed, so every level has its own source and no aggregation happens here.
type Service struct {
	tables map[domain.Level]*table.Table
}

func NewRevenueService(tables map[domain.Level]*table.Table) *Service {
	return &Service{tables: tables}
}

func (s *Service) Available(level domain.Level) bool {
	return s.tables[level] != nil
}

func (s *Service) Read(level domain.Level, code string, years *domain.YearRange) map[domain.Year]domain.RevenueRecord {
	res := make(map[domain.Year]domain.RevenueRecord)

	tbl := s.tables[level]
	if tbl == nil {
		return res
	}

	minYear, maxYear := years.Bounds()
	q := table.Query{MinYear: minYear, MaxYear: maxYear}
	if level != domain.LevelCountry {
		q.Codes = []string{level.NormalizeCode(code)}
	}

	for _, row := range tbl.Select(q) {
		if _, ok := res[row.Year()]; ok {
			continue
		}
		res[row.Year()] = domain.RevenueRecord{
			MedianIncome: row.Float(colMedian),
			FirstDecile:  row.Float(colFirstDecile),
			NinthDecile:  row.Float(colNinthDecile),
			PovertyRate:  row.Float(colPovertyRate),
		}
	}

	return res
}
