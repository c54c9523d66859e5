// Package bubbly builds animated plotly bubble charts from tabular data.
// Gapminder-style charts for any dataset.
//
// Usage:
//
//	import "github.com/spektr-org/bubbly/engine"
//
//	fig, err := engine.BubblePlot(ds, engine.Columns{
//	    X: "gdpPercap", Y: "lifeExp", Label: "country",
//	    Time: "year", Size: "pop", Color: "continent",
//	}, engine.WithLogAxes(true, false, false))
//
// The engine groups rows by time and category (the grid), then assembles a
// plotly figure: base traces for the earliest time, one frame per time
// value, a slider and play/pause buttons.
//
// CSV parsing, schema discovery, chart files and export are handled by the
// helpers, schema and chartspec packages. Nothing here calls an external
// service; the HTML export only references plotly.js from its CDN.
package bubbly
