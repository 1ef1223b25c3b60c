package domain

import (
	"fmt"
	"strings"

	"github.com/ougirez/territory-stats/internal/pkg/table"
)

// Level is a tier of the French administrative hierarchy.
type Level string

const (
	LevelCommune    Level = "commune"
	LevelEPCI       Level = "epci"
	LevelDepartment Level = "department"
	LevelRegion     Level = "region"
	LevelCountry    Level = "country"
)

var Levels = []Level{LevelCommune, LevelEPCI, LevelDepartment, LevelRegion, LevelCountry}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown territory level %q", s)
}

// CodeWidth is the canonical width of codes at this level; 0 for the country.
func (l Level) CodeWidth() int {
	switch l {
	case LevelCommune:
		return table.CommuneCodeWidth
	case LevelEPCI:
		return table.EPCICodeWidth
	case LevelDepartment:
		return table.DepartmentCodeWidth
	case LevelRegion:
		return table.RegionCodeWidth
	default:
		return 0
	}
}

// NormalizeCode applies the load-time normalization to a code received from a caller, so
// lookups compare like with like.
func (l Level) NormalizeCode(code string) string {
	if l == LevelCountry {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return table.NormalizeCode(code, l.CodeWidth())
}

type GeoRecord struct {
	CommuneCode    string `json:"commune_code"`
	CommuneName    string `json:"commune_name"`
	EPCICode       string `json:"epci_code,omitempty"`
	EPCIName       string `json:"epci_name,omitempty"`
	DepartmentCode string `json:"department_code"`
	DepartmentName string `json:"department_name,omitempty"`
	RegionCode     string `json:"region_code"`
	RegionName     string `json:"region_name,omitempty"`
}

// Set bounds of a YearRange must lie within [MinYear, MaxYear].
const (
	MinYear Year = 1800
	MaxYear Year = 2100
)

// YearRange is an inclusive window of years. A zero bound is open.
type YearRange struct {
	Start Year `json:"start"`
	End   Year `json:"end"`
}

func (r *YearRange) Contains(y Year) bool {
	if r == nil {
		return true
	}
	return (r.Start == 0 || y >= r.Start) && (r.End == 0 || y <= r.End)
}

// Closed reports whether both bounds are set, i.e. the years of the window can be listed.
func (r *YearRange) Closed() bool {
	return r != nil && r.Start != 0 && r.End != 0
}

// InBounds reports whether every set bound lies within [MinYear, MaxYear].
func (r *YearRange) InBounds() bool {
	if r == nil {
		return true
	}
	for _, y := range []Year{r.Start, r.End} {
		if y != 0 && (y < MinYear || y > MaxYear) {
			return false
		}
	}
	return true
}

func (r *YearRange) Bounds() (Year, Year) {
	if r == nil {
		return 0, 0
	}
	return r.Start, r.End
}

type Query struct {
	Level Level
	Code  string
	Years *YearRange
}

type TerritoryRef struct {
	Level Level  `json:"level"`
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
}

// Territory describes the resolved area a result was aggregated over. Name is nil when the
// territory is unknown.
type Territory struct {
	Level            Level          `json:"level"`
	Code             string         `json:"code"`
	Name             *string        `json:"name"`
	Hierarchy        []TerritoryRef `json:"hierarchy,omitempty"`
	Communes         []string       `json:"communes"`
	CommunesCount    int            `json:"communes_count"`
	EPCICount        int            `json:"epci_count,omitempty"`
	DepartmentsCount int            `json:"departments_count,omitempty"`
	RegionsCount     int            `json:"regions_count,omitempty"`
}

func (t Territory) Found() bool {
	return t.Name != nil
}
