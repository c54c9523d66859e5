package engine_test

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bubbly/engine"
)

func TestColorScaleJSON(t *testing.T) {
	raw, err := json.Marshal(engine.NamedColorScale("Jet"))
	require.NoError(t, err)
	assert.JSONEq(t, `"Jet"`, string(raw))

	raw, err = json.Marshal(engine.ColorScaleTable(
		engine.ColorStop{At: 0, Color: "rgb(0,0,255)"},
		engine.ColorStop{At: 1, Color: "rgb(255,0,0)"},
	))
	require.NoError(t, err)
	assert.JSONEq(t, `[[0,"rgb(0,0,255)"],[1,"rgb(255,0,0)"]]`, string(raw))
}

func TestPaletteColorScale(t *testing.T) {
	gradient := palette.RGBGradient{Colors: []color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}}

	s := engine.PaletteColorScale(gradient, 5)
	require.Len(t, s.Stops, 5)
	assert.Equal(t, 0.0, s.Stops[0].At)
	assert.Equal(t, 1.0, s.Stops[4].At)
	assert.Equal(t, "rgb(0,0,0)", s.Stops[0].Color)
	assert.Equal(t, "rgb(255,255,255)", s.Stops[4].Color)

	assert.Len(t, engine.PaletteColorScale(gradient, 0).Stops, 2)
	assert.Len(t, engine.ViridisColorScale().Stops, 11)
}

func TestDatasetKinds(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("n", []int{1, 2}).
		Add("f", []float64{1.5, 2}).
		Add("s", []string{"a", "b"}).
		Add("b", []bool{true, false}).
		Done())

	for name, want := range map[string]engine.ColumnKind{
		"n": engine.KindNumeric,
		"f": engine.KindNumeric,
		"s": engine.KindCategorical,
		"b": engine.KindCategorical,
	} {
		got, err := ds.Kind(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	xs, err := ds.Floats("n")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, xs)

	_, err = ds.Floats("s")
	assert.Error(t, err)

	distinct, err := ds.Distinct("b")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, distinct)

	assert.Equal(t, 0, engine.NewDataset(nil).Len())
}

func TestBooleanColorIsCategorical(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []int{1, 2, 3}).
		Add("y", []int{1, 2, 3}).
		Add("name", []string{"a", "b", "c"}).
		Add("flag", []bool{true, false, true}).
		Done())

	fig, err := engine.BubblePlot(ds, engine.Columns{X: "x", Y: "y", Label: "name", Color: "flag"})
	require.NoError(t, err)
	require.Len(t, fig.Data, 2)
	assert.Equal(t, "true", fig.Data[0].Name)
	assert.Equal(t, "false", fig.Data[1].Name)
	assert.Equal(t, []string{"a", "c"}, fig.Data[0].Text)
}
