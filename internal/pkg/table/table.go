package table

import (
	"sort"
)

// Anomalies counts the data-quality problems absorbed while loading a table.
type Anomalies struct {
	NonNumeric int `json:"non_numeric"`
	BadYear    int `json:"bad_year"`
	MissingKey int `json:"missing_code"`
	ShortRows  int `json:"short_rows"`
}

func (a Anomalies) Total() int {
	return a.NonNumeric + a.BadYear + a.MissingKey + a.ShortRows
}

// Table is an immutable in-memory data set. It is safe for concurrent reads.
type Table struct {
	schema  Schema
	columns []string
	colIdx  map[string]int

	records [][]string
	numbers map[string][]float64
	codes   []string
	years   []int

	byCode    map[string][]int
	anomalies Anomalies
}

func (t *Table) Name() string {
	return t.schema.Name
}

func (t *Table) Schema() Schema {
	return t.schema
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(col string) bool {
	_, ok := t.colIdx[col]
	return ok
}

func (t *Table) Len() int {
	return len(t.records)
}

func (t *Table) Anomalies() Anomalies {
	return t.anomalies
}

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	seen := make(map[int]struct{})
	for _, y := range t.years {
		seen[y] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	return years
}

// Codes returns the distinct territory codes present, ascending.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.byCode))
	for c := range t.byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	return codes
}

// Query restricts a selection. Every condition is an exact match.
type Query struct {
	// Codes keeps rows whose normalized code is in the list. Nil disables the filter.
	Codes []string
	// MinYear and MaxYear bound the year inclusively; zero means unbounded.
	MinYear int
	MaxYear int
	Eq      map[string]string
	In      map[string][]string
}

// Select returns the matching rows in load order.
func (t *Table) Select(q Query) []Row {
	if t == nil {
		return nil
	}

	var candidates []int
	if q.Codes != nil && t.schema.CodeColumn != "" {
		for _, code := range q.Codes {
			candidates = append(candidates, t.byCode[code]...)
		}
		sort.Ints(candidates)
		candidates = dedupeSorted(candidates)
	} else {
		candidates = make([]int, len(t.records))
		for i := range candidates {
			candidates[i] = i
		}
	}

	in := make(map[int]map[string]struct{}, len(q.In))
	for col, values := range q.In {
		idx, ok := t.colIdx[col]
		if !ok {
			return nil
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		in[idx] = set
	}

	eq := make(map[int]string, len(q.Eq))
	for col, v := range q.Eq {
		idx, ok := t.colIdx[col]
		if !ok {
			return nil
		}
		eq[idx] = v
	}

	rows := make([]Row, 0, len(candidates))
	for _, i := range candidates {
		if t.schema.YearColumn != "" {
			if q.MinYear != 0 && t.years[i] < q.MinYear {
				continue
			}
			if q.MaxYear != 0 && t.years[i] > q.MaxYear {
				continue
			}
		}

		if !matches(t.records[i], eq, in) {
			continue
		}

		rows = append(rows, Row{t: t, i: i})
	}

	return rows
}

func matches(record []string, eq map[int]string, in map[int]map[string]struct{}) bool {
	for idx, v := range eq {
		if record[idx] != v {
			return false
		}
	}
	for idx, set := range in {
		if _, ok := set[record[idx]]; !ok {
			return false
		}
	}
	return true
}

func dedupeSorted(xs []int) []int {
	if len(xs) < 2 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// Row is a read-only view of one record.
type Row struct {
	t *Table
	i int
}

func (r Row) Code() string {
	if r.t.codes == nil {
		return ""
	}
	return r.t.codes[r.i]
}

func (r Row) Year() int {
	if r.t.years == nil {
		return 0
	}
	return r.t.years[r.i]
}

func (r Row) String(col string) string {
	idx, ok := r.t.colIdx[col]
	if !ok {
		return ""
	}
	return r.t.records[r.i][idx]
}

// Float returns a numeric column value. Columns not declared numeric are parsed on the
// fly and read as 0 when they are not numbers.
func (r Row) Float(col string) float64 {
	if nums, ok := r.t.numbers[col]; ok {
		return nums[r.i]
	}
	val, _ := ParseNumber(r.String(col))
	return val
}

func Sum(rows []Row, col string) float64 {
	var total float64
	for _, r := range rows {
		total += r.Float(col)
	}
	return total
}

// SumWhere sums col over the rows accepted by keep.
func SumWhere(rows []Row, col string, keep func(Row) bool) float64 {
	var total float64
	for _, r := range rows {
		if keep(r) {
			total += r.Float(col)
		}
	}
	return total
}

// ByYear groups rows by year, keeping load order inside each group.
func ByYear(rows []Row) map[int][]Row {
	grouped := make(map[int][]Row)
	for _, r := range rows {
		grouped[r.Year()] = append(grouped[r.Year()], r)
	}
	return grouped
}

// SortedYears returns the keys of a year-indexed map in ascending order.
func SortedYears[T any](m map[int]T) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
