package dto

import (
	"fmt"

	"github.com/ougirez/territory-stats/internal/domain"
)

// StatsRequest is bound from /api/v1/<domain>/:level/:code?start_year=&end_year=.
type StatsRequest struct {
	Level     string `param:"level" validate:"required,oneof=commune epci department region country"`
	Code      string `param:"code" validate:"required,max=16"`
	StartYear int    `query:"start_year" validate:"omitempty,min=1800,max=2100"`
	EndYear   int    `query:"end_year" validate:"omitempty,min=1800,max=2100"`
}

func (r *StatsRequest) Query() domain.Query {
	q := domain.Query{Level: domain.Level(r.Level), Code: r.Code}
	if r.StartYear != 0 || r.EndYear != 0 {
		q.Years = &domain.YearRange{Start: r.StartYear, End: r.EndYear}
	}
	return q
}

// CacheKey identifies the normalized query, so "1" and "01" share an entry.
func (r *StatsRequest) CacheKey() []string {
	level := domain.Level(r.Level)
	return []string{r.Level, level.NormalizeCode(r.Code), fmt.Sprintf("%d-%d", r.StartYear, r.EndYear)}
}

type TerritoryRequest struct {
	Level string `param:"level" validate:"required,oneof=commune epci department region country"`
	Code  string `param:"code" validate:"required,max=16"`
}

type AdminLoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}
