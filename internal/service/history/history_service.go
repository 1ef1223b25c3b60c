package history

import (
	"regexp"
	"strconv"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

// censusColumn matches the wide census columns: municipal population (PMUN), population
// without double counts (PSDC) and total population (PTOT), suffixed by the year.
var censusColumn = regexp.MustCompile(`^P(MUN|SDC|TOT)(\d{4})$`)

// priority decides which column wins when a year is published under several prefixes.
var priority = map[string]int{"MUN": 0, "SDC": 1, "TOT": 2}

// Service serves the long-run population series of a single commune.
type Service struct {
	tbl *table.Table
}

func NewHistoryService(tbl *table.Table) *Service {
	return &Service{tbl: tbl}
}

func (s *Service) Supports(level domain.Level) bool {
	return level == domain.LevelCommune
}

func (s *Service) Available() bool {
	return s.tbl != nil
}

func (s *Service) Read(code string, years *domain.YearRange) map[domain.Year]domain.HistoryRecord {
	res := make(map[domain.Year]domain.HistoryRecord)

	rows := s.tbl.Select(table.Query{Codes: []string{domain.LevelCommune.NormalizeCode(code)}})
	if len(rows) == 0 {
		return res
	}
	row := rows[0]

	ranks := make(map[domain.Year]int)
	for _, col := range s.tbl.Columns() {
		m := censusColumn.FindStringSubmatch(col)
		if m == nil || row.String(col) == "" {
			continue
		}

		year, err := strconv.Atoi(m[2])
		if err != nil || !years.Contains(year) {
			continue
		}

		rank := priority[m[1]]
		if prev, ok := ranks[year]; ok && prev <= rank {
			continue
		}
		ranks[year] = rank
		res[year] = domain.HistoryRecord{Population: row.Float(col), Column: col}
	}

	return res
}
