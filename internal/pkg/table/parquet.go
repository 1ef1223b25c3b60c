package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

const parquetBatchSize = 1024

// ReadParquet loads a flat parquet file. Nested columns are addressed by their dotted
// path; every value is carried as text and numeric columns are parsed like CSV cells.
func ReadParquet(r io.ReaderAt, size int64, schema Schema) (*Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%s: parquet.OpenFile: %w", schema.Name, err)
	}

	paths := f.Schema().Columns()
	header := make([]string, len(paths))
	for i, p := range paths {
		header[i] = strings.Join(p, ".")
	}

	b, err := NewBuilder(schema, header)
	if err != nil {
		return nil, err
	}

	buf := make([]parquet.Row, parquetBatchSize)
	for _, rg := range f.RowGroups() {
		if err := readRowGroup(rg, buf, len(header), b); err != nil {
			return nil, fmt.Errorf("%s: %w", schema.Name, err)
		}
	}

	return b.Table(), nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, width int, b *Builder) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			record := make([]string, width)
			for _, v := range row {
				if col := v.Column(); col >= 0 && col < width {
					record[col] = parquetText(v)
				}
			}
			b.Append(record)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("ReadRows: %w", err)
		}
	}
}

func parquetText(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}

	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	default:
		return string(v.ByteArray())
	}
}

func ReadParquetFile(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return ReadParquet(f, info.Size(), schema)
}

// ReadFile picks the reader from the file extension.
func ReadFile(path string, schema Schema) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return ReadParquetFile(path, schema)
	}
	return ReadCSVFile(path, schema)
}
