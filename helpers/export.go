package helpers

import (
	"encoding/csv"
	"encoding/json"
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/spektr-org/bubbly/engine"
)

// ============================================================================
// EXPORT HELPERS: Figure → JSON / standalone HTML / CSV
// ============================================================================
// The JSON is the plotly figure object ({data, layout, frames}) and can be
// handed to any plotly binding. The HTML page loads plotly.js from the CDN,
// draws the base traces and registers the frames so Play and the slider work.
// ============================================================================

// PlotlyCDN is the plotly.js bundle referenced by WriteHTML.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// WriteJSON encodes fig to w, indented when pretty is set.
func WriteJSON(w io.Writer, fig *engine.Figure, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(fig), "failed to encode figure")
}

var pageTemplate = template.Must(template.New("figure").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.CDN}}"></script>
</head>
<body>
<div id="figure"></div>
<script>
var fig = {{.Figure}};
Plotly.newPlot('figure', fig.data, fig.layout).then(function() {
	if (fig.frames) {
		Plotly.addFrames('figure', fig.frames);
	}
});
</script>
</body>
</html>
`))

// WriteHTML renders fig as a standalone page.
func WriteHTML(w io.Writer, fig *engine.Figure, title string) error {
	raw, err := json.Marshal(fig)
	if err != nil {
		return errors.Wrap(err, "failed to encode figure")
	}
	if title == "" {
		title = fig.Layout.Title
	}
	if title == "" {
		title = "Bubble chart"
	}
	type pageData struct {
		Title  string
		CDN    string
		Figure template.JS
	}
	return errors.Wrap(pageTemplate.Execute(w, pageData{
		Title:  title,
		CDN:    PlotlyCDN,
		Figure: template.JS(raw),
	}), "failed to render page")
}

// WriteCSV writes one row per bubble per frame (see engine.BuildFrameTable),
// ready for Sheets or Excel.
func WriteCSV(w io.Writer, fig *engine.Figure) error {
	ft := engine.BuildFrameTable(fig)
	cw := csv.NewWriter(w)
	if err := cw.Write(ft.Columns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	if err := cw.WriteAll(ft.Rows); err != nil {
		return errors.Wrap(err, "failed to write CSV rows")
	}
	return nil
}
