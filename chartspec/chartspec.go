// Package chartspec loads bubble chart definitions written in HCL.
//
// A chart file names the dataset columns for each role and, optionally,
// per-axis settings and display toggles:
//
//	x     = "gdpPercap"
//	y     = "lifeExp"
//	label = "country"
//	time  = "year"
//	size  = "pop"
//	color = "continent"
//	title = "Life expectancy vs GDP"
//
//	filter = {
//	  continent = ["Asia", "Europe"]
//	}
//
//	axis "x" {
//	  title = "GDP per capita"
//	  log   = true
//	}
//
//	display {
//	  bubble_scale = 1.5
//	  slider       = true
//	}
package chartspec

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"

	"github.com/spektr-org/bubbly/engine"
)

// Spec is one decoded chart file.
type Spec struct {
	X     string `hcl:"x"`
	Y     string `hcl:"y"`
	Label string `hcl:"label"`
	Z     string `hcl:"z,optional"`
	Time  string `hcl:"time,optional"`
	Size  string `hcl:"size,optional"`
	Color string `hcl:"color,optional"`
	Title string `hcl:"title,optional"`

	// Filter keeps rows whose column value is one of the listed values.
	Filter map[string][]string `hcl:"filter,optional"`

	Axes    []*Axis  `hcl:"axis,block"`
	Display *Display `hcl:"display,block"`
}

// Axis holds the settings of one named axis ("x", "y" or "z").
type Axis struct {
	Name  string    `hcl:"name,label"`
	Title string    `hcl:"title,optional"`
	Log   bool      `hcl:"log,optional"`
	Range []float64 `hcl:"range,optional"`
}

// Display holds the figure-wide toggles. Unset fields keep engine defaults.
type Display struct {
	Width         int     `hcl:"width,optional"`
	Height        int     `hcl:"height,optional"`
	BubbleScale   float64 `hcl:"bubble_scale,optional"`
	Slider        *bool   `hcl:"slider,optional"`
	Button        *bool   `hcl:"button,optional"`
	Colorbar      *bool   `hcl:"colorbar,optional"`
	Legend        *bool   `hcl:"legend,optional"`
	ColorScale    string  `hcl:"colorscale,optional"`
	ColorbarTitle string  `hcl:"colorbar_title,optional"`
	SliderPrefix  *string `hcl:"slider_prefix,optional"`
}

// Load parses and validates the chart file at path.
func Load(path string) (*Spec, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse chart file %s", path)
	}
	return decode(path, file)
}

// Parse parses and validates chart source held in memory. filename is only
// used in diagnostics.
func Parse(filename string, src []byte) (*Spec, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse chart file %s", filename)
	}
	return decode(filename, file)
}

func decode(filename string, file *hcl.File) (*Spec, error) {
	var spec Spec
	if diags := gohcl.DecodeBody(file.Body, nil, &spec); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to decode chart file %s", filename)
	}
	if err := spec.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid chart file %s", filename)
	}
	return &spec, nil
}

func (s *Spec) validate() error {
	seen := make(map[string]bool)
	for _, a := range s.Axes {
		switch a.Name {
		case "x", "y", "z":
		default:
			return fmt.Errorf("unknown axis %q (want x, y or z)", a.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("axis %q defined twice", a.Name)
		}
		seen[a.Name] = true
		if a.Range != nil && len(a.Range) != 2 {
			return fmt.Errorf("axis %q: range must be [min, max], got %d values", a.Name, len(a.Range))
		}
	}
	if seen["z"] && s.Z == "" {
		return errors.New(`axis "z" given but no z column`)
	}
	return nil
}

// axis returns the named axis block, or nil.
func (s *Spec) axis(name string) *Axis {
	for _, a := range s.Axes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Columns returns the column roles named by the chart file.
func (s *Spec) Columns() engine.Columns {
	return engine.Columns{
		X:     s.X,
		Y:     s.Y,
		Z:     s.Z,
		Label: s.Label,
		Time:  s.Time,
		Size:  s.Size,
		Color: s.Color,
	}
}

// Filters returns the row filters named by the chart file.
func (s *Spec) Filters() engine.Filters {
	return engine.Filters(s.Filter)
}

// Options converts the chart file settings into engine options.
func (s *Spec) Options() []engine.Option {
	var opts []engine.Option
	if s.Title != "" {
		opts = append(opts, engine.WithTitle(s.Title))
	}

	var titles [3]string
	var logs [3]bool
	for i, name := range []string{"x", "y", "z"} {
		a := s.axis(name)
		if a == nil {
			continue
		}
		titles[i], logs[i] = a.Title, a.Log
		if a.Range != nil {
			lo, hi := a.Range[0], a.Range[1]
			switch name {
			case "x":
				opts = append(opts, engine.WithXRange(lo, hi))
			case "y":
				opts = append(opts, engine.WithYRange(lo, hi))
			case "z":
				opts = append(opts, engine.WithZRange(lo, hi))
			}
		}
	}
	opts = append(opts,
		engine.WithAxisTitles(titles[0], titles[1], titles[2]),
		engine.WithLogAxes(logs[0], logs[1], logs[2]),
	)

	d := s.Display
	if d == nil {
		return opts
	}
	if d.Width > 0 || d.Height > 0 {
		opts = append(opts, engine.WithSize(d.Width, d.Height))
	}
	if d.BubbleScale > 0 {
		opts = append(opts, engine.WithBubbleScale(d.BubbleScale))
	}
	if d.Slider != nil {
		opts = append(opts, engine.WithSlider(*d.Slider))
	}
	if d.Button != nil {
		opts = append(opts, engine.WithButton(*d.Button))
	}
	if d.Colorbar != nil {
		opts = append(opts, engine.WithColorbar(*d.Colorbar))
	}
	if d.Legend != nil {
		opts = append(opts, engine.WithLegend(*d.Legend))
	}
	if d.ColorScale != "" {
		opts = append(opts, engine.WithColorScale(ColorScale(d.ColorScale)))
	}
	if d.ColorbarTitle != "" {
		opts = append(opts, engine.WithColorbarTitle(d.ColorbarTitle))
	}
	if d.SliderPrefix != nil {
		opts = append(opts, engine.WithSliderPrefix(*d.SliderPrefix))
	}
	return opts
}

// ColorScale maps a colorscale name to an engine color scale. "viridis" is
// sampled from the go-gg palette; any other name is passed to plotly as is.
func ColorScale(name string) *engine.ColorScale {
	if name == "viridis" {
		return engine.ViridisColorScale()
	}
	return engine.NamedColorScale(name)
}

// EnsureAxis returns the named axis block, adding an empty one if needed.
func (s *Spec) EnsureAxis(name string) *Axis {
	if a := s.axis(name); a != nil {
		return a
	}
	a := &Axis{Name: name}
	s.Axes = append(s.Axes, a)
	return a
}

// EnsureDisplay returns the display block, adding an empty one if needed.
func (s *Spec) EnsureDisplay() *Display {
	if s.Display == nil {
		s.Display = &Display{}
	}
	return s.Display
}
