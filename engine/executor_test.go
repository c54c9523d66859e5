package engine_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bubbly/engine"
)

func yearsDataset() *engine.Dataset {
	return engine.NewDataset(table.NewBuilder(nil).
		Add("year", []int{2000, 2000, 2001, 2001}).
		Add("x", []int{1, 2, 3, 4}).
		Add("y", []int{5, 6, 7, 8}).
		Add("name", []string{"a", "b", "a", "b"}).
		Done())
}

var yearsColumns = engine.Columns{X: "x", Y: "y", Label: "name", Time: "year"}

func TestBubblePlot_TwoYears(t *testing.T) {
	fig, err := engine.BubblePlot(yearsDataset(), yearsColumns)
	require.NoError(t, err)

	require.Len(t, fig.Frames, 2)
	assert.Equal(t, "2000", fig.Frames[0].Name)
	assert.Equal(t, "2001", fig.Frames[1].Name)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, fig.Frames[0].Data, fig.Data)
	assert.Equal(t, []int{1, 2}, fig.Data[0].X)
	assert.Equal(t, []int{5, 6}, fig.Data[0].Y)
	assert.Equal(t, []string{"a", "b"}, fig.Data[0].Text)
	assert.Equal(t, "markers", fig.Data[0].Mode)
	assert.Empty(t, fig.Data[0].Name)

	require.Len(t, fig.Layout.Sliders, 1)
	slider := fig.Layout.Sliders[0]
	require.Len(t, slider.Steps, 2)
	assert.Equal(t, "2000", slider.Steps[0].Label)
	assert.Equal(t, "animate", slider.Steps[1].Method)
	assert.Equal(t, 0, slider.Active)
	assert.Equal(t, "Year:", slider.CurrentValue.Prefix)

	require.Len(t, fig.Layout.UpdateMenus, 1)
	assert.False(t, fig.Layout.ShowLegend)
}

func TestBubblePlot_BaseFrameIsMinimumTime(t *testing.T) {
	fig, err := engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Label: "country", Time: "year",
	})
	require.NoError(t, err)

	require.Len(t, fig.Frames, 2)
	assert.Equal(t, "2001", fig.Frames[0].Name)
	assert.Equal(t, "2000", fig.Frames[1].Name)
	assert.Equal(t, fig.Frames[1].Data, fig.Data)
	assert.Equal(t, 1, fig.Layout.Sliders[0].Active)
}

func TestBubblePlot_SizeRef(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []float64{1, 2, 3}).
		Add("y", []float64{4, 5, 6}).
		Add("label", []string{"p", "q", "r"}).
		Add("size", []int{10, 20, 40}).
		Done())

	fig, err := engine.BubblePlot(ds, engine.Columns{X: "x", Y: "y", Label: "label", Size: "size"})
	require.NoError(t, err)

	marker := fig.Data[0].Marker
	assert.InDelta(t, 0.0125, marker.SizeRef, 1e-12)
	assert.Equal(t, "area", marker.SizeMode)
	assert.Equal(t, []int{10, 20, 40}, marker.Size.Values)

	fig, err = engine.BubblePlot(ds, engine.Columns{X: "x", Y: "y", Label: "label", Size: "size"},
		engine.WithBubbleScale(2))
	require.NoError(t, err)
	assert.InDelta(t, 2*40/(2*6400.0), fig.Data[0].Marker.SizeRef, 1e-12)
}

func TestBubblePlot_ConstantSizeWithoutSizeColumn(t *testing.T) {
	fig, err := engine.BubblePlot(yearsDataset(), yearsColumns, engine.WithBubbleScale(1.5))
	require.NoError(t, err)

	marker := fig.Data[0].Marker
	assert.Nil(t, marker.Size.Values)
	assert.Equal(t, 15.0, marker.Size.Constant)
	assert.Zero(t, marker.SizeRef)
}

func TestBubblePlot_CategoricalColor(t *testing.T) {
	fig, err := engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Label: "country", Time: "year", Size: "pop", Color: "continent",
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "Asia", fig.Data[0].Name)
	assert.Equal(t, "Europe", fig.Data[1].Name)
	assert.Equal(t, []string{"Japan", "India"}, fig.Data[0].Text)
	assert.Nil(t, fig.Data[0].Marker.ColorBar)
	assert.Nil(t, fig.Data[0].Marker.Color)
	assert.True(t, fig.Layout.ShowLegend)

	for _, frame := range fig.Frames {
		require.Len(t, frame.Data, 2)
	}

	fig, err = engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Label: "country", Color: "continent",
	}, engine.WithLegend(false))
	require.NoError(t, err)
	assert.False(t, fig.Layout.ShowLegend)
	assert.Equal(t, []string{"Japan", "India", "Japan", "India"}, fig.Data[0].Text)
}

func TestBubblePlot_ContinuousColor(t *testing.T) {
	cols := engine.Columns{X: "gdp", Y: "life", Label: "country", Time: "year", Color: "pop"}

	fig, err := engine.BubblePlot(continentsDataset(), cols,
		engine.WithColorbarTitle("Population"),
		engine.WithColorScale(engine.NamedColorScale("Viridis")))
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	marker := fig.Data[0].Marker
	assert.Equal(t, []int{59, 126, 1000}, marker.Color)
	require.NotNil(t, marker.ColorBar)
	assert.Equal(t, "Population", marker.ColorBar.Title)
	assert.Equal(t, "Viridis", marker.ColorScale.Name)
	require.NotNil(t, marker.ShowScale)
	assert.True(t, *marker.ShowScale)
	assert.False(t, fig.Layout.ShowLegend)

	fig, err = engine.BubblePlot(continentsDataset(), cols, engine.WithColorbar(false))
	require.NoError(t, err)
	assert.False(t, *fig.Data[0].Marker.ShowScale)
}

func TestBubblePlot_NoTimeColumn(t *testing.T) {
	cols := yearsColumns
	cols.Time = ""

	fig, err := engine.BubblePlot(yearsDataset(), cols, engine.WithSlider(true), engine.WithButton(true))
	require.NoError(t, err)

	assert.Empty(t, fig.Frames)
	assert.Empty(t, fig.Layout.Sliders)
	assert.Empty(t, fig.Layout.UpdateMenus)
	require.Len(t, fig.Data, 1)
	assert.Equal(t, []int{1, 2, 3, 4}, fig.Data[0].X)
}

func TestBubblePlot_SingleTimeValue(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("year", []int{1999, 1999}).
		Add("x", []int{1, 2}).
		Add("y", []int{3, 4}).
		Add("name", []string{"a", "b"}).
		Done())

	fig, err := engine.BubblePlot(ds, yearsColumns)
	require.NoError(t, err)
	require.Len(t, fig.Frames, 1)
	require.Len(t, fig.Layout.Sliders[0].Steps, 1)
	assert.Equal(t, "1999", fig.Layout.Sliders[0].Steps[0].Label)
}

func TestBubblePlot_Toggles(t *testing.T) {
	fig, err := engine.BubblePlot(yearsDataset(), yearsColumns,
		engine.WithSlider(false), engine.WithButton(false),
		engine.WithSize(800, 600), engine.WithTitle("Years"),
		engine.WithSliderPrefix("Season:"))
	require.NoError(t, err)

	assert.Len(t, fig.Frames, 2)
	assert.Empty(t, fig.Layout.Sliders)
	assert.Empty(t, fig.Layout.UpdateMenus)
	assert.Equal(t, 800, fig.Layout.Width)
	assert.Equal(t, 600, fig.Layout.Height)
	assert.Equal(t, "Years", fig.Layout.Title)
}

func TestBubblePlot_LinearRanges(t *testing.T) {
	fig, err := engine.BubblePlot(yearsDataset(), yearsColumns, engine.WithAxisTitles("X", "Y", "ignored"))
	require.NoError(t, err)

	require.NotNil(t, fig.Layout.XAxis)
	assert.Nil(t, fig.Layout.Scene)
	assert.Equal(t, "X", fig.Layout.XAxis.Title)
	assert.False(t, fig.Layout.XAxis.AutoRange)
	assert.InDeltaSlice(t, []float64{0.7, 5.6}, fig.Layout.XAxis.Range, 1e-9)
	assert.InDeltaSlice(t, []float64{3.5, 11.2}, fig.Layout.YAxis.Range, 1e-9)
}

func TestBubblePlot_LogRangesAndExplicitRange(t *testing.T) {
	fig, err := engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Label: "country", Time: "year",
	}, engine.WithLogAxes(true, false, false), engine.WithYRange(50, 90))
	require.NoError(t, err)

	assert.Equal(t, "log", fig.Layout.XAxis.Type)
	assert.Empty(t, fig.Layout.YAxis.Type)
	want := []float64{math.Log10(1.5) * 0.97, math.Log10(40) * 1.04}
	assert.InDeltaSlice(t, want, fig.Layout.XAxis.Range, 1e-9)
	assert.Equal(t, []float64{50, 90}, fig.Layout.YAxis.Range)
}

func TestBubblePlot_3D(t *testing.T) {
	fig, err := engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Z: "pop", Label: "country", Time: "year",
	}, engine.WithLogAxes(false, false, true), engine.WithAxisTitles("GDP", "Life", "Population"))
	require.NoError(t, err)

	require.NotNil(t, fig.Layout.Scene)
	assert.Nil(t, fig.Layout.XAxis)
	assert.Equal(t, "Population", fig.Layout.Scene.ZAxis.Title)
	assert.Equal(t, "log", fig.Layout.Scene.ZAxis.Type)
	assert.InDeltaSlice(t, []float64{math.Log10(59) * 0.97, math.Log10(1050) * 1.04},
		fig.Layout.Scene.ZAxis.Range, 1e-9)

	assert.Equal(t, "scatter3d", fig.Data[0].Type)
	assert.Equal(t, []int{59, 126, 1000}, fig.Data[0].Z)
	for _, frame := range fig.Frames {
		assert.Equal(t, "scatter3d", frame.Data[0].Type)
	}
}

func TestBubblePlot_Idempotent(t *testing.T) {
	cols := engine.Columns{X: "gdp", Y: "life", Label: "country", Time: "year", Size: "pop", Color: "continent"}

	a, err := engine.BubblePlot(continentsDataset(), cols)
	require.NoError(t, err)
	b, err := engine.BubblePlot(continentsDataset(), cols)
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(ja), string(jb))
}

func TestBubblePlot_Errors(t *testing.T) {
	_, err := engine.BubblePlot(yearsDataset(), engine.Columns{X: "x", Y: "missing", Label: "name"})
	assert.Equal(t, engine.ErrColumnNotFound, errors.Cause(err))

	_, err = engine.BubblePlot(yearsDataset(), engine.Columns{X: "x", Y: "y", Label: "name", Color: "hue"})
	assert.Equal(t, engine.ErrColumnNotFound, errors.Cause(err))

	// Europe has no row in 2000.
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("year", []int{2000, 2001, 2001}).
		Add("continent", []string{"Asia", "Asia", "Europe"}).
		Add("x", []int{1, 2, 3}).
		Add("y", []int{1, 2, 3}).
		Add("name", []string{"a", "b", "c"}).
		Done())
	_, err = engine.BubblePlot(ds, engine.Columns{X: "x", Y: "y", Label: "name", Time: "year", Color: "continent"})
	assert.Equal(t, engine.ErrMissingCell, errors.Cause(err))

	_, err = engine.BubblePlot(yearsDataset(), engine.Columns{X: "name", Y: "y", Label: "name"})
	assert.Equal(t, engine.ErrNonNumeric, errors.Cause(err))

	empty := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []int{}).Add("y", []int{}).Add("name", []string{}).Done())
	_, err = engine.BubblePlot(empty, engine.Columns{X: "x", Y: "y", Label: "name"})
	assert.Equal(t, engine.ErrEmptyDataset, errors.Cause(err))
}

func TestFigureJSON(t *testing.T) {
	fig, err := engine.BubblePlot(yearsDataset(), yearsColumns)
	require.NoError(t, err)

	raw, err := json.Marshal(fig)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	layout := doc["layout"].(map[string]any)
	assert.Equal(t, "closest", layout["hovermode"])

	buttons := layout["updatemenus"].([]any)[0].(map[string]any)["buttons"].([]any)
	play := buttons[0].(map[string]any)["args"].([]any)
	assert.Nil(t, play[0])
	assert.Equal(t, true, play[1].(map[string]any)["fromcurrent"])
	pause := buttons[1].(map[string]any)["args"].([]any)
	assert.Equal(t, []any{nil}, pause[0])
	assert.Equal(t, "immediate", pause[1].(map[string]any)["mode"])

	step := layout["sliders"].([]any)[0].(map[string]any)["steps"].([]any)[1].(map[string]any)
	assert.Equal(t, []any{"2001"}, step["args"].([]any)[0])

	trace := doc["data"].([]any)[0].(map[string]any)
	assert.Equal(t, 10.0, trace["marker"].(map[string]any)["size"])
	assert.NotContains(t, trace, "z")
}

func TestBubblePlot_RangesSkipNaN(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []float64{math.NaN(), 2, 10}).
		Add("y", []float64{1, 2, 3}).
		Add("name", []string{"a", "b", "c"}).
		Done())

	fig, err := engine.BubblePlot(ds, engine.Columns{X: "x", Y: "y", Label: "name"})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.4, 14}, fig.Layout.XAxis.Range, 1e-9)
}

func TestBubblePlot_LogRangeSkipsNonPositive(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []float64{0, 1, 10}).
		Add("y", []float64{1, 2, 3}).
		Add("name", []string{"a", "b", "c"}).
		Done())
	cols := engine.Columns{X: "x", Y: "y", Label: "name"}

	fig, err := engine.BubblePlot(ds, cols, engine.WithLogAxes(true, false, false))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1.04}, fig.Layout.XAxis.Range, 1e-9)

	_, err = json.Marshal(fig)
	require.NoError(t, err)

	neg := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []float64{-1, 0}).
		Add("y", []float64{1, 2}).
		Add("name", []string{"a", "b"}).
		Done())
	_, err = engine.BubblePlot(neg, cols, engine.WithLogAxes(true, false, false))
	assert.Equal(t, engine.ErrNoPositiveValues, errors.Cause(err))
}

func TestFigureJSON_NonFiniteAsNull(t *testing.T) {
	ds := engine.NewDataset(table.NewBuilder(nil).
		Add("x", []float64{math.NaN(), 2, 10}).
		Add("y", []float64{1, math.Inf(1), 3}).
		Add("pop", []float64{1, math.NaN(), 3}).
		Add("score", []float64{0.5, math.NaN(), 1}).
		Add("name", []string{"a", "b", "c"}).
		Done())

	fig, err := engine.BubblePlot(ds, engine.Columns{X: "x", Y: "y", Label: "name", Size: "pop", Color: "score"},
		engine.WithYRange(0, 5))
	require.NoError(t, err)

	raw, err := json.Marshal(fig)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	trace := doc["data"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{nil, 2.0, 10.0}, trace["x"])
	assert.Equal(t, []any{1.0, nil, 3.0}, trace["y"])
	marker := trace["marker"].(map[string]any)
	assert.Equal(t, []any{1.0, nil, 3.0}, marker["size"])
	assert.Equal(t, []any{0.5, nil, 1.0}, marker["color"])

	// The figure itself keeps the raw values.
	assert.True(t, math.IsNaN(fig.Data[0].X.([]float64)[0]))
}
