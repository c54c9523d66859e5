package engine

import (
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
)

// ============================================================================
// DATASET: Immutable column store the assembler reads from
// ============================================================================
// Backed by a go-gg table: every column is a typed slice ([]int, []float64,
// []string, []bool, ...). The engine never mutates it; grouping and
// conversions always produce new slices.
// ============================================================================

// ColumnKind is the encoding class of a column, decided from its element type.
type ColumnKind int

const (
	// KindNumeric columns hold integers or floats.
	KindNumeric ColumnKind = iota
	// KindCategorical columns hold anything else (strings, bools, times).
	KindCategorical
)

func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "categorical"
}

// Dataset wraps a go-gg table.
type Dataset struct {
	tab *table.Table
}

// NewDataset wraps t. A nil table is treated as empty.
func NewDataset(t *table.Table) *Dataset {
	if t == nil {
		t = new(table.Table)
	}
	return &Dataset{tab: t}
}

// Table returns the underlying table.
func (d *Dataset) Table() *table.Table { return d.tab }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.tab.Len() }

// Columns returns the column names in table order.
func (d *Dataset) Columns() []string { return d.tab.Columns() }

// Column returns the values of the named column.
func (d *Dataset) Column(name string) (table.Slice, error) {
	col := d.tab.Column(name)
	if col == nil {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}
	return col, nil
}

// Kind classifies the named column by its element type.
func (d *Dataset) Kind(name string) (ColumnKind, error) {
	if _, err := d.Column(name); err != nil {
		return KindCategorical, err
	}
	switch table.ColType(d.tab, name).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumeric, nil
	}
	return KindCategorical, nil
}

// Floats returns the named numeric column converted to float64.
func (d *Dataset) Floats(name string) ([]float64, error) {
	kind, err := d.Kind(name)
	if err != nil {
		return nil, err
	}
	if kind != KindNumeric {
		return nil, errors.Wrapf(ErrNonNumeric, "column %q", name)
	}
	var xs []float64
	slice.Convert(&xs, d.tab.Column(name))
	return xs, nil
}

// Distinct returns the unique values of the named column in order of first
// occurrence, as a slice of the column's own type.
func (d *Dataset) Distinct(name string) (table.Slice, error) {
	col, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	return slice.Nub(col), nil
}

// values flattens a typed slice into []any.
func values(s table.Slice) []any {
	rv := reflect.ValueOf(s)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func sliceLen(s table.Slice) int {
	if s == nil {
		return 0
	}
	return reflect.ValueOf(s).Len()
}
