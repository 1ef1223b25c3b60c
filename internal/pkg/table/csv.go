package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a delimited text source. A zero delimiter is sniffed from the header
// line (INSEE files mix ';' and ',').
func ReadCSV(r io.Reader, schema Schema, delimiter rune) (*Table, error) {
	br := bufio.NewReader(r)

	if delimiter == 0 {
		delimiter = sniffDelimiter(br)
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", schema.Name)
		}
		return nil, fmt.Errorf("%s: read header: %w", schema.Name, err)
	}

	b, err := NewBuilder(schema, header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				b.t.anomalies.ShortRows++
				continue
			}
			return nil, fmt.Errorf("%s: read record: %w", schema.Name, err)
		}

		b.Append(record)
	}

	return b.Table(), nil
}

func ReadCSVFile(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f, schema, 0)
}

func sniffDelimiter(br *bufio.Reader) rune {
	line, _ := br.Peek(4096)
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t', '|'} {
		if c := bytes.Count(line, []byte(string(d))); c > bestCount {
			best, bestCount = d, c
		}
	}

	return best
}
