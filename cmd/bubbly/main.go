package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/spektr-org/bubbly/chartspec"
	"github.com/spektr-org/bubbly/engine"
	"github.com/spektr-org/bubbly/helpers"
	"github.com/spektr-org/bubbly/schema"
)

// ============================================================================
// BUBBLY CLI: Animated bubble charts from any CSV
// ============================================================================

const version = "0.1.0"

var (
	app   = kingpin.New("bubbly", "Animated bubble charts from any CSV.")
	debug = app.Flag("debug", "Enable debug logging.").Bool()
	out   = app.Flag("out", "Write output to file instead of stdout.").Short('o').String()

	discoverCmd    = app.Command("discover", "Print the auto-detected schema and suggested roles.")
	discoverFile   = discoverCmd.Flag("file", "Path to CSV data file.").Required().ExistingFile()
	discoverFormat = discoverCmd.Flag("format", "Output format: json, pretty.").Default("pretty").Enum("json", "pretty")

	renderCmd    = app.Command("render", "Build an animated bubble chart figure.")
	renderFile   = renderCmd.Flag("file", "Path to CSV data file.").Required().ExistingFile()
	chartFile    = renderCmd.Flag("chart", "Path to an HCL chart file.").ExistingFile()
	renderFormat = renderCmd.Flag("format", "Output format: json, pretty, html, csv, text.").Default("json").Enum("json", "pretty", "html", "csv", "text")

	xCol     = renderCmd.Flag("x", "X axis column.").String()
	yCol     = renderCmd.Flag("y", "Y axis column.").String()
	zCol     = renderCmd.Flag("z", "Z axis column (3D figure).").String()
	labelCol = renderCmd.Flag("label", "Bubble label column.").String()
	timeCol  = renderCmd.Flag("time", "Animation time column.").String()
	sizeCol  = renderCmd.Flag("size", "Bubble size column.").String()
	colorCol = renderCmd.Flag("color", "Bubble color column.").String()

	logX     = renderCmd.Flag("log-x", "Log scale x axis.").Bool()
	logY     = renderCmd.Flag("log-y", "Log scale y axis.").Bool()
	logZ     = renderCmd.Flag("log-z", "Log scale z axis.").Bool()
	title    = renderCmd.Flag("title", "Figure title.").String()
	scale    = renderCmd.Flag("scale", "Bubble scale factor.").Float64()
	width    = renderCmd.Flag("width", "Figure width in pixels.").Int()
	height   = renderCmd.Flag("height", "Figure height in pixels.").Int()
	slider   = renderCmd.Flag("slider", "Show the time slider (--no-slider to hide).").Default("true").Bool()
	button   = renderCmd.Flag("button", "Show play/pause buttons (--no-button to hide).").Default("true").Bool()
	colorbar = renderCmd.Flag("colorbar", "Show the colorbar (--no-colorbar to hide).").Default("true").Bool()
	filters  = renderCmd.Flag("filter", "Keep rows where COLUMN is one of V1,V2 (repeatable).").PlaceHolder("COLUMN=V1,V2").StringMap()
	suggest  = renderCmd.Flag("suggest", "Fill unnamed roles from the detected schema.").Default("true").Bool()
)

func main() {
	app.Version(version)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	var err error
	switch command {
	case discoverCmd.FullCommand():
		err = withOutput(discover)
	case renderCmd.FullCommand():
		err = withOutput(render)
	}
	if err != nil {
		if *debug {
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// withOutput runs fn against stdout or the --out file.
func withOutput(fn func(io.Writer) error) error {
	if *out == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	log.WithField("path", *out).Info("output written")
	return errors.Wrap(f.Close(), "failed to close output file")
}

// ============================================================================
// DISCOVER
// ============================================================================

type discoverOutput struct {
	Schema *schema.Config `json:"schema"`
	Roles  schema.Roles   `json:"suggestedRoles"`
}

func discover(w io.Writer) error {
	sch, _, err := loadSchema(*discoverFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if *discoverFormat == "pretty" {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(discoverOutput{Schema: sch, Roles: sch.SuggestRoles()}), "failed to encode schema")
}

func loadSchema(path string) (*schema.Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read file")
	}
	sch, err := schema.DiscoverFromCSV(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "auto-detect failed")
	}
	log.WithFields(log.Fields{
		"columns": len(sch.Columns),
		"skipped": len(sch.SkippedColumns),
		"rows":    sch.RowCount,
	}).Debug("schema discovered")
	return sch, data, nil
}

// ============================================================================
// RENDER
// ============================================================================

func render(w io.Writer) error {
	sch, data, err := loadSchema(*renderFile)
	if err != nil {
		return err
	}

	spec := &chartspec.Spec{}
	if *chartFile != "" {
		if spec, err = chartspec.Load(*chartFile); err != nil {
			return err
		}
		log.WithField("path", *chartFile).Debug("chart file loaded")
	}
	applyFlags(spec)
	if *suggest {
		fillRoles(spec, sch.SuggestRoles())
	}
	if spec.X == "" || spec.Y == "" || spec.Label == "" {
		return errors.New("x, y and label columns are required (use --x, --y and --label)")
	}

	ds, err := helpers.ParseCSVSchema(data, *sch)
	if err != nil {
		return errors.Wrap(err, "failed to parse CSV")
	}
	if ds, err = engine.FilterRows(ds, spec.Filters()); err != nil {
		return err
	}

	cols := spec.Columns()
	log.WithFields(log.Fields{
		"x": cols.X, "y": cols.Y, "z": cols.Z, "label": cols.Label,
		"time": cols.Time, "size": cols.Size, "color": cols.Color,
	}).Info("rendering bubble chart")

	fig, err := engine.BubblePlot(ds, cols, spec.Options()...)
	if err != nil {
		return errors.Wrap(err, "bubble plot failed")
	}

	switch *renderFormat {
	case "text":
		_, err := fmt.Fprintln(w, engine.Summarize(fig))
		return err
	case "html":
		return helpers.WriteHTML(w, fig, "")
	case "csv":
		return helpers.WriteCSV(w, fig)
	case "pretty":
		return helpers.WriteJSON(w, fig, true)
	default:
		return helpers.WriteJSON(w, fig, false)
	}
}

// applyFlags layers command line settings over the chart file.
func applyFlags(spec *chartspec.Spec) {
	setIf(&spec.X, *xCol)
	setIf(&spec.Y, *yCol)
	setIf(&spec.Z, *zCol)
	setIf(&spec.Label, *labelCol)
	setIf(&spec.Time, *timeCol)
	setIf(&spec.Size, *sizeCol)
	setIf(&spec.Color, *colorCol)
	setIf(&spec.Title, *title)

	for col, vals := range *filters {
		if spec.Filter == nil {
			spec.Filter = map[string][]string{}
		}
		spec.Filter[col] = strings.Split(vals, ",")
	}

	if *logX {
		spec.EnsureAxis("x").Log = true
	}
	if *logY {
		spec.EnsureAxis("y").Log = true
	}
	if *logZ {
		spec.EnsureAxis("z").Log = true
	}

	if *scale > 0 {
		spec.EnsureDisplay().BubbleScale = *scale
	}
	if *width > 0 {
		spec.EnsureDisplay().Width = *width
	}
	if *height > 0 {
		spec.EnsureDisplay().Height = *height
	}
	if !*slider {
		spec.EnsureDisplay().Slider = slider
	}
	if !*button {
		spec.EnsureDisplay().Button = button
	}
	if !*colorbar {
		spec.EnsureDisplay().Colorbar = colorbar
	}
}

// fillRoles uses suggested columns for roles still unnamed. Suggestions
// never pick z and skip columns already used by another role.
func fillRoles(spec *chartspec.Spec, roles schema.Roles) {
	used := map[string]bool{}
	for _, c := range []string{spec.X, spec.Y, spec.Z, spec.Label, spec.Time, spec.Size, spec.Color} {
		if c != "" {
			used[c] = true
		}
	}
	fill := func(dst *string, suggested string) {
		if *dst != "" || suggested == "" || used[suggested] {
			return
		}
		*dst = suggested
		used[suggested] = true
		log.WithField("column", suggested).Debug("using suggested column")
	}
	fill(&spec.X, roles.X)
	fill(&spec.Y, roles.Y)
	fill(&spec.Label, roles.Label)
	fill(&spec.Time, roles.Time)
	fill(&spec.Size, roles.Size)
	fill(&spec.Color, roles.Color)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
