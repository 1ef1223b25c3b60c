package domain

import "github.com/ougirez/territory-stats/internal/pkg/rate"

// Status tags how a result should be read.
type Status string

const (
	// StatusFound: the territory exists and the data covers the request.
	StatusFound Status = "found"
	// StatusNotFound: no such territory. Data is empty, which does not mean zero.
	StatusNotFound Status = "not_found"
	// StatusPartial: some years of the requested window have no data; see MissingYears.
	StatusPartial Status = "partial"
	// StatusUnavailable: the dataset backing the domain could not be loaded.
	StatusUnavailable Status = "unavailable"
)

type Result[T any] struct {
	Status       Status                    `json:"status"`
	Territory    Territory                 `json:"territory"`
	Data         map[Year]T                `json:"data"`
	MissingYears []Year                    `json:"missing_years,omitempty"`
	Evolution    map[string]rate.Evolution `json:"evolution,omitempty"`
	Parents      []Parent[T]               `json:"parents,omitempty"`
}

// Parent carries the data of an enclosing territory, attached for context.
type Parent[T any] struct {
	Territory Territory  `json:"territory"`
	Data      map[Year]T `json:"data"`
}
