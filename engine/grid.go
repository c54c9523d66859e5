package engine

import (
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
)

// ============================================================================
// GRID BUILDER: Long-format index of column values per time/category
// ============================================================================
// For every distinct time value (or one implicit bucket) and every distinct
// category (or one implicit bucket) the grid stores each requested column's
// values restricted to the matching rows. A combination with no rows gets no
// entry; Lookup reports ErrMissingCell for it.
// ============================================================================

// GridKey addresses one column slice. Time and Category are nil when the
// figure has no time or category column.
type GridKey struct {
	Time     any
	Category any
	Column   string
}

// Grid is the output of BuildGrid.
type Grid struct {
	cells map[GridKey]table.Slice

	timeColumn     string
	categoryColumn string

	// Distinct values in first-occurrence order, typed like their column.
	times      table.Slice
	categories table.Slice
}

// BuildGrid partitions the named columns of ds by timeColumn and
// categoryColumn. Either may be empty.
func BuildGrid(ds *Dataset, columns []string, timeColumn, categoryColumn string) (*Grid, error) {
	for _, name := range columns {
		if _, err := ds.Column(name); err != nil {
			return nil, err
		}
	}

	g := &Grid{
		cells:          make(map[GridKey]table.Slice),
		timeColumn:     timeColumn,
		categoryColumn: categoryColumn,
	}

	var by []string
	if timeColumn != "" {
		times, err := ds.Distinct(timeColumn)
		if err != nil {
			return nil, err
		}
		g.times = times
		by = append(by, timeColumn)
	}
	if categoryColumn != "" {
		cats, err := ds.Distinct(categoryColumn)
		if err != nil {
			return nil, err
		}
		g.categories = cats
		by = append(by, categoryColumn)
	}

	if ds.Len() == 0 {
		return g, nil
	}

	// GroupBy nests category groups under time groups and only
	// yields groups that have rows.
	groups := table.GroupBy(ds.Table(), by...)
	for _, gid := range groups.Tables() {
		sub := groups.Table(gid)

		var key GridKey
		level := gid
		if categoryColumn != "" {
			key.Category = level.Label()
			level = level.Parent()
		}
		if timeColumn != "" {
			key.Time = level.Label()
		}

		for _, name := range columns {
			vals := sub.Column(name)
			if sliceLen(vals) == 0 {
				continue
			}
			key.Column = name
			g.cells[key] = vals
		}
	}
	return g, nil
}

// Lookup returns the values stored for the given time, category and column.
func (g *Grid) Lookup(time, category any, column string) (table.Slice, error) {
	vals, ok := g.cells[GridKey{Time: time, Category: category, Column: column}]
	if !ok {
		return nil, errors.Wrapf(ErrMissingCell, "time=%v category=%v column=%q", time, category, column)
	}
	return vals, nil
}

// Len returns the number of stored cells.
func (g *Grid) Len() int { return len(g.cells) }

// HasTime reports whether the grid is partitioned by time.
func (g *Grid) HasTime() bool { return g.timeColumn != "" }

// HasCategory reports whether the grid is partitioned by category.
func (g *Grid) HasCategory() bool { return g.categoryColumn != "" }

// Times returns the distinct time values in discovery order, or a single
// nil bucket when the grid has no time column.
func (g *Grid) Times() []any {
	if !g.HasTime() {
		return []any{nil}
	}
	return values(g.times)
}

// Categories returns the distinct categories in discovery order, or a single
// nil bucket when the grid has no category column.
func (g *Grid) Categories() []any {
	if !g.HasCategory() {
		return []any{nil}
	}
	return values(g.categories)
}

// BaseTime returns the minimum time value by natural order and its position
// in Times. Without a time column it returns the nil bucket.
func (g *Grid) BaseTime() (any, int, error) {
	if !g.HasTime() {
		return nil, 0, nil
	}
	if sliceLen(g.times) == 0 {
		return nil, 0, errors.Wrapf(ErrEmptyDataset, "time column %q", g.timeColumn)
	}
	i := slice.ArgMin(g.times)
	return values(g.times)[i], i, nil
}
