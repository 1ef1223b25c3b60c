package table

import (
	"fmt"
	"strings"
)

// Builder assembles a Table row by row, normalizing codes and parsing numbers once.
type Builder struct {
	t       *Table
	codeIdx int
	yearIdx int
	numIdx  map[int]string
}

// NewBuilder matches header against schema. Header names are compared trimmed and
// upper-cased; a UTF-8 BOM on the first name is ignored.
func NewBuilder(schema Schema, header []string) (*Builder, error) {
	t := &Table{
		schema:  schema,
		columns: make([]string, len(header)),
		colIdx:  make(map[string]int, len(header)),
		numbers: make(map[string][]float64),
		byCode:  make(map[string][]int),
	}

	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		t.columns[i] = name
		t.colIdx[name] = i
	}

	b := &Builder{t: t, codeIdx: -1, yearIdx: -1, numIdx: make(map[int]string)}

	if schema.CodeColumn != "" {
		idx, ok := t.colIdx[schema.CodeColumn]
		if !ok {
			return nil, fmt.Errorf("%s: missing code column %s", schema.Name, schema.CodeColumn)
		}
		b.codeIdx = idx
		t.codes = []string{}
	}

	if schema.YearColumn != "" {
		idx, ok := t.colIdx[schema.YearColumn]
		if !ok {
			return nil, fmt.Errorf("%s: missing year column %s", schema.Name, schema.YearColumn)
		}
		b.yearIdx = idx
		t.years = []int{}
	}

	for _, col := range schema.Numeric {
		if _, ok := t.colIdx[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %s", schema.Name, col)
		}
	}

	for i, name := range t.columns {
		if schema.IsNumeric(name) {
			b.numIdx[i] = name
			t.numbers[name] = []float64{}
		}
	}

	return b, nil
}

// Append adds one record. Records that cannot be keyed are dropped and counted.
func (b *Builder) Append(record []string) {
	t := b.t

	if len(record) < len(t.columns) {
		t.anomalies.ShortRows++
	}
	// The caller may reuse its slice.
	own := make([]string, len(t.columns))
	copy(own, record)
	record = own

	var code string
	if b.codeIdx >= 0 {
		code = NormalizeCode(record[b.codeIdx], t.schema.CodeWidth)
		if code == "" {
			t.anomalies.MissingKey++
			return
		}
		record[b.codeIdx] = code
	}

	var year int
	if b.yearIdx >= 0 {
		var ok bool
		year, ok = parseYear(record[b.yearIdx])
		if !ok {
			t.anomalies.BadYear++
			return
		}
	}

	i := len(t.records)
	for idx := range record {
		record[idx] = strings.TrimSpace(record[idx])
	}
	t.records = append(t.records, record)

	if b.codeIdx >= 0 {
		t.codes = append(t.codes, code)
		t.byCode[code] = append(t.byCode[code], i)
	}
	if b.yearIdx >= 0 {
		t.years = append(t.years, year)
	}

	for idx, name := range b.numIdx {
		val, ok := ParseNumber(record[idx])
		if !ok {
			t.anomalies.NonNumeric++
		}
		t.numbers[name] = append(t.numbers[name], val)
	}
}

// Table returns the built table. The builder must not be used afterwards.
func (b *Builder) Table() *Table {
	t := b.t
	b.t = nil
	return t
}
