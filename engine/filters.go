package engine

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
)

// ============================================================================
// FILTERS: Column-value row filtering before assembly
// ============================================================================
// Single-pass filter: checks ALL column constraints per row in one loop.
// Values are compared as text, case-insensitively, so a year column can be
// filtered with "2007" and a continent column with "asia".
// ============================================================================

// Filters maps a column name to its allowed values.
// Columns are AND-combined; values within a column are OR-combined.
type Filters map[string][]string

// IsEmpty reports whether f restricts nothing.
func (f Filters) IsEmpty() bool {
	for _, allowed := range f {
		if len(allowed) > 0 {
			return false
		}
	}
	return true
}

const keepColumn = "__keep"

// FilterRows returns the rows of ds matching all filters.
// Empty filter = no restriction (returns ds).
func FilterRows(ds *Dataset, filters Filters) (*Dataset, error) {
	if filters.IsEmpty() || ds.Len() == 0 {
		return ds, nil
	}

	// Pre-build lowercase lookup sets and column values
	sets := make(map[string]map[string]bool)
	cols := make(map[string][]any)
	for col, allowed := range filters {
		if len(allowed) == 0 {
			continue
		}
		s, err := ds.Column(col)
		if err != nil {
			return nil, errors.Wrap(err, "filter")
		}
		sets[col] = toLowerSet(allowed)
		cols[col] = values(s)
	}

	// Single pass: row passes if it matches ALL column filters
	keep := make([]bool, ds.Len())
	kept := 0
	for i := range keep {
		keep[i] = true
		for col, set := range sets {
			if !set[strings.ToLower(fmt.Sprint(cols[col][i]))] {
				keep[i] = false
				break
			}
		}
		if keep[i] {
			kept++
		}
	}
	if kept == 0 {
		return emptyLike(ds), nil
	}

	t := table.NewBuilder(ds.Table()).Add(keepColumn, keep).Done()
	g := table.Filter(t, func(k bool) bool { return k }, keepColumn)
	return NewDataset(table.Flatten(table.Remove(g, keepColumn))), nil
}

// emptyLike returns a zero-row dataset with the columns and types of ds.
func emptyLike(ds *Dataset) *Dataset {
	b := table.NewBuilder(nil)
	for _, col := range ds.Columns() {
		typ := reflect.TypeOf(ds.Table().Column(col))
		b.Add(col, reflect.MakeSlice(typ, 0, 0).Interface())
	}
	return NewDataset(b.Done())
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = true
	}
	return set
}
