package helpers

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"

	"github.com/spektr-org/bubbly/engine"
	"github.com/spektr-org/bubbly/schema"
)

// ============================================================================
// CSV HELPER: Parses CSV data into an engine.Dataset
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, stdin, HTTP body).
// This helper converts the raw bytes into a typed column table.
// ============================================================================

// ParseCSV parses CSV bytes into a Dataset. Columns whose every cell is an
// integer become []int, every cell a number []float64, anything else []string.
func ParseCSV(data []byte) (*engine.Dataset, error) {
	headers, rows, err := readCSV(data)
	if err != nil {
		return nil, err
	}
	return engine.NewDataset(table.TableFromStrings(headers, rows, true)), nil
}

// ParseCSVSchema parses CSV bytes using a discovered schema. Only the
// schema's usable columns are kept, and each column is typed by its kind:
// numeric columns become numbers even when some cells are null (NaN),
// categorical columns stay strings even when they look numeric.
func ParseCSVSchema(data []byte, sch schema.Config) (*engine.Dataset, error) {
	headers, rows, err := readCSV(data)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	b := table.NewBuilder(nil)
	for _, col := range sch.Columns {
		i, ok := index[col.Key]
		if !ok {
			return nil, errors.Wrapf(engine.ErrColumnNotFound, "schema column %q", col.Key)
		}
		cells := make([]string, len(rows))
		for r, row := range rows {
			cells[r] = strings.TrimSpace(row[i])
		}
		typed, err := typedColumn(col, cells)
		if err != nil {
			return nil, err
		}
		b.Add(col.Key, typed)
	}
	return engine.NewDataset(b.Done()), nil
}

// readCSV returns the trimmed header and all data rows. Rows with a different
// field count than the header are an error.
func readCSV(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("CSV has no header")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read CSV headers")
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read CSV rows")
	}
	return headers, rows, nil
}

// typedColumn converts one column's cells according to its discovered kind.
func typedColumn(col schema.ColumnMeta, cells []string) (table.Slice, error) {
	if col.Summary == nil || (col.Kind != schema.KindNumeric && col.Kind != schema.KindTemporal) {
		return cells, nil
	}

	if col.IsInteger && col.NullCount == 0 {
		out := make([]int, len(cells))
		for i, c := range cells {
			n, err := strconv.Atoi(schema.CleanNumber(c))
			if err != nil {
				return nil, errors.Wrapf(engine.ErrNonNumeric, "column %q row %d: %q", col.Key, i+1, c)
			}
			out[i] = n
		}
		return out, nil
	}

	out := make([]float64, len(cells))
	for i, c := range cells {
		if schema.IsNull(c) {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(schema.CleanNumber(c), 64)
		if err != nil {
			return nil, errors.Wrapf(engine.ErrNonNumeric, "column %q row %d: %q", col.Key, i+1, c)
		}
		out[i] = f
	}
	return out, nil
}
