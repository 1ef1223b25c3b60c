package childcare

import (
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

var (
	primaryColumns = columns{
		global:      "TAUX_GLOBAL",
		collective:  "TAUX_EAJE",
		childminder: "TAUX_AM",
		preschool:   "TAUX_PRESCO",
		homeCare:    "TAUX_GARDE_DOM",
	}
	historyColumns = columns{
		global:      "TAUX_COUV_GLOBAL",
		collective:  "TAUX_COUV_EAJE",
		childminder: "TAUX_COUV_AM",
		preschool:   "TAUX_COUV_PRESCO",
		homeCare:    "TAUX_COUV_GARDE_DOM",
	}
)

type columns struct {
	global, collective, childminder, preschool, homeCare string
}

func (c columns) record(row table.Row, source domain.ChildcareSource) domain.ChildcareRecord {
	return domain.ChildcareRecord{
		GlobalRate:      row.Float(c.global),
		CollectiveRate:  row.Float(c.collective),
		ChildminderRate: row.Float(c.childminder),
		PreschoolRate:   row.Float(c.preschool),
		HomeCareRate:    row.Float(c.homeCare),
		Source:          source,
	}
}

// Service reads coverage rates published per level. Communes missing from the current
// table are served from the historical commune table instead.
type Service struct {
	tables  map[domain.Level]*table.Table
	history *table.Table
}

func NewChildcareService(tables map[domain.Level]*table.Table, history *table.Table) *Service {
	return &Service{tables: tables, history: history}
}

func (s *Service) Available(level domain.Level) bool {
	if level == domain.LevelCommune && s.history != nil {
		return true
	}
	return s.tables[level] != nil
}

func (s *Service) Read(level domain.Level, code string, years *domain.YearRange) map[domain.Year]domain.ChildcareRecord {
	res := make(map[domain.Year]domain.ChildcareRecord)

	minYear, maxYear := years.Bounds()
	q := table.Query{MinYear: minYear, MaxYear: maxYear}
	if level != domain.LevelCountry {
		q.Codes = []string{level.NormalizeCode(code)}
	}

	tbl := s.tables[level]
	if level == domain.LevelCommune && !s.covers(tbl, q.Codes) {
		collect(res, s.history.Select(q), historyColumns, domain.ChildcareSourceHistory)
		return res
	}

	collect(res, tbl.Select(q), primaryColumns, domain.ChildcareSourcePrimary)
	return res
}

// covers reports whether tbl has any row for the commune, whatever the year. The fallback
// is decided per commune, never per year, so sources are not mixed in one series.
func (s *Service) covers(tbl *table.Table, codes []string) bool {
	return len(tbl.Select(table.Query{Codes: codes})) > 0
}

func collect(res map[domain.Year]domain.ChildcareRecord, rows []table.Row, cols columns, source domain.ChildcareSource) {
	for _, row := range rows {
		if _, ok := res[row.Year()]; ok {
			continue
		}
		res[row.Year()] = cols.record(row, source)
	}
}
