package engine_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bubbly/engine"
)

func TestFilterRows(t *testing.T) {
	ds, err := engine.FilterRows(continentsDataset(), engine.Filters{
		"continent": {"asia"},
		"year":      {"2000", "1999"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"year", "continent", "country", "gdp", "life", "pop"}, ds.Columns())

	countries, err := ds.Column("country")
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan", "India"}, countries)

	pop, err := ds.Column("pop")
	require.NoError(t, err)
	assert.Equal(t, []int{126, 1000}, pop)
}

func TestFilterRowsEmptyFilter(t *testing.T) {
	ds := continentsDataset()

	got, err := engine.FilterRows(ds, nil)
	require.NoError(t, err)
	assert.Same(t, ds, got)

	got, err = engine.FilterRows(ds, engine.Filters{"continent": {}})
	require.NoError(t, err)
	assert.Same(t, ds, got)
}

func TestFilterRowsNoMatchFeedsEmptyError(t *testing.T) {
	ds, err := engine.FilterRows(continentsDataset(), engine.Filters{"continent": {"Oceania"}})
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	_, err = engine.BubblePlot(ds, engine.Columns{X: "gdp", Y: "life", Label: "country", Time: "year"})
	assert.Equal(t, engine.ErrEmptyDataset, errors.Cause(err))
}

func TestFilterRowsUnknownColumn(t *testing.T) {
	_, err := engine.FilterRows(continentsDataset(), engine.Filters{"planet": {"earth"}})
	assert.Equal(t, engine.ErrColumnNotFound, errors.Cause(err))
}
