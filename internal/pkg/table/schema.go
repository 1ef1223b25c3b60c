package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Code widths of the French administrative codes.
const (
	CommuneCodeWidth    = 5
	DepartmentCodeWidth = 2
	RegionCodeWidth     = 2
	EPCICodeWidth       = 9
)

// Schema describes how a source file maps onto a Table.
type Schema struct {
	Name string
	// CodeColumn holds the territory code every row is keyed by. It is normalized to
	// CodeWidth on load. Empty for single-territory sources (the France-wide tables).
	CodeColumn string
	CodeWidth  int
	// YearColumn is optional; rows whose year cannot be parsed are dropped.
	YearColumn string
	// Numeric columns are parsed once on load.
	Numeric []string
	// NumericPattern marks additional numeric columns by name.
	NumericPattern *regexp.Regexp
}

// IsNumeric reports whether col is parsed as a number on load.
func (s Schema) IsNumeric(col string) bool {
	for _, n := range s.Numeric {
		if n == col {
			return true
		}
	}
	return s.NumericPattern != nil && s.NumericPattern.MatchString(col)
}

// NormalizeCode brings a territory code to its canonical fixed-width form: surrounding
// spaces and a float artefact (".0") are dropped, letters are upper-cased (Corsica "2a")
// and the code is left-padded with zeros to width. Applying it twice is a no-op.
func NormalizeCode(raw string, width int) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return ""
	}

	if dot := strings.IndexByte(code, '.'); dot > 0 && strings.Trim(code[dot+1:], "0") == "" {
		code = code[:dot]
	}

	if len(code) < width {
		code = strings.Repeat("0", width-len(code)) + code
	}

	return code
}

// ParseNumber accepts both decimal separators and blanks used as thousands separators.
// An empty value is a legitimate zero; ok is false only for garbage.
func ParseNumber(raw string) (val float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	s = strings.ReplaceAll(s, ",", ".")

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}

	return val, true
}

func parseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 4 {
		return 0, false
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, false
	}

	return year, true
}
