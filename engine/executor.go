package engine

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// EXECUTOR: Figure assembly pipeline
// ============================================================================
// Entry point: BubblePlot(dataset, columns, opts...)
//
// Pipeline:
//   1. Resolve the color column into a ColorMode (once)
//   2. Build the grid (time × category × column)
//   3. Build the layout (2D axes or 3D scene, legend, size)
//   4. Base traces from the earliest time value
//   5. One frame (and slider step) per time value, in discovery order
//   6. Play/pause buttons
//   7. Axis ranges from raw column bounds
// ============================================================================

// ColorMode is how the color column is encoded.
type ColorMode int

const (
	// ColorNone means no color column was given.
	ColorNone ColorMode = iota
	// ColorCategorical splits the figure into one named trace per category.
	ColorCategorical
	// ColorContinuous maps numeric values onto a gradient with a colorbar.
	ColorContinuous
)

func (m ColorMode) String() string {
	switch m {
	case ColorCategorical:
		return "categorical"
	case ColorContinuous:
		return "continuous"
	}
	return "none"
}

// colorRole is the resolved color encoding. Exactly one of category and
// color is set unless mode is ColorNone.
type colorRole struct {
	mode     ColorMode
	category string
	color    string
}

func resolveColor(ds *Dataset, column string) (colorRole, error) {
	if column == "" {
		return colorRole{mode: ColorNone}, nil
	}
	kind, err := ds.Kind(column)
	if err != nil {
		return colorRole{}, err
	}
	if kind == KindNumeric {
		return colorRole{mode: ColorContinuous, color: column}, nil
	}
	return colorRole{mode: ColorCategorical, category: column}, nil
}

// BubblePlot assembles an animated bubble chart from ds.
func BubblePlot(ds *Dataset, cols Columns, opts ...Option) (*Figure, error) {
	cfg := applyOptions(opts)

	role, err := resolveColor(ds, cols.Color)
	if err != nil {
		return nil, errors.Wrap(err, "color column")
	}

	if cols.Time == "" {
		cfg.ShowSlider = false
		cfg.ShowButton = false
	}

	axes3D := cols.Z != ""
	columns := []string{cols.X, cols.Y}
	if axes3D {
		columns = append(columns, cols.Z)
	}
	columns = append(columns, cols.Label)
	if cols.Size != "" {
		columns = append(columns, cols.Size)
	}
	if role.mode == ColorContinuous {
		columns = append(columns, role.color)
	}

	grid, err := BuildGrid(ds, columns, cols.Time, role.category)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, errors.Wrap(ErrEmptyDataset, "bubble plot")
	}

	showLegend := role.mode == ColorCategorical
	if cfg.ShowLegend != nil {
		showLegend = *cfg.ShowLegend
	}

	fig := &Figure{
		Data:   []Trace{},
		Layout: newLayout(cfg, axes3D, showLegend),
		Frames: []Frame{},
	}

	tb := &traceBuilder{grid: grid, cols: cols, role: role, cfg: cfg, axes3D: axes3D}
	if cols.Size != "" {
		if tb.sizeref, err = sizeRef(ds, cols.Size, cfg.BubbleScale); err != nil {
			return nil, errors.Wrap(err, "size column")
		}
	}

	// ── Base frame ───────────────────────────────────────────────────────
	base, baseIndex, err := grid.BaseTime()
	if err != nil {
		return nil, err
	}
	if fig.Data, err = tb.traces(base); err != nil {
		return nil, err
	}

	// ── Time frames ──────────────────────────────────────────────────────
	if grid.HasTime() {
		slider := newSlider(cfg.SliderPrefix)
		slider.Active = baseIndex
		for _, t := range grid.Times() {
			traces, err := tb.traces(t)
			if err != nil {
				return nil, err
			}
			name := fmt.Sprint(t)
			fig.Frames = append(fig.Frames, Frame{Name: name, Data: traces})
			slider.Steps = append(slider.Steps, newSliderStep(name))
		}
		if cfg.ShowSlider {
			fig.Layout.Sliders = []Slider{slider}
		}
	}
	if cfg.ShowButton {
		fig.Layout.UpdateMenus = []UpdateMenu{newPlayPauseMenu()}
	}

	// ── Axis ranges ──────────────────────────────────────────────────────
	xAxis, yAxis, zAxis := fig.Layout.axes()
	if xAxis.Range, err = resolveRange(ds, cfg.XRange, cols.X, cfg.XLog); err != nil {
		return nil, errors.Wrap(err, "x range")
	}
	if yAxis.Range, err = resolveRange(ds, cfg.YRange, cols.Y, cfg.YLog); err != nil {
		return nil, errors.Wrap(err, "y range")
	}
	if zAxis != nil {
		if zAxis.Range, err = resolveRange(ds, cfg.ZRange, cols.Z, cfg.ZLog); err != nil {
			return nil, errors.Wrap(err, "z range")
		}
	}

	logrus.WithFields(logrus.Fields{
		"rows":   ds.Len(),
		"frames": len(fig.Frames),
		"traces": len(fig.Data),
		"color":  role.mode,
		"3d":     axes3D,
	}).Debug("bubble figure assembled")

	return fig, nil
}

func resolveRange(ds *Dataset, explicit []float64, column string, logscale bool) ([]float64, error) {
	if explicit != nil {
		return append([]float64(nil), explicit...), nil
	}
	return axisRange(ds, column, logscale)
}

// ============================================================================
// TRACE BUILDER
// ============================================================================

type traceBuilder struct {
	grid    *Grid
	cols    Columns
	role    colorRole
	cfg     *config
	axes3D  bool
	sizeref float64
}

// traces builds one trace per category (or a single trace) for time t.
func (b *traceBuilder) traces(t any) ([]Trace, error) {
	cats := b.grid.Categories()
	out := make([]Trace, 0, len(cats))
	for _, cat := range cats {
		tr, err := b.trace(t, cat)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}

func (b *traceBuilder) trace(t, category any) (Trace, error) {
	var err error
	lookup := func(column string) table.Slice {
		if err != nil {
			return nil
		}
		var vals table.Slice
		vals, err = b.grid.Lookup(t, category, column)
		return vals
	}

	tr := Trace{
		X:    lookup(b.cols.X),
		Y:    lookup(b.cols.Y),
		Text: lookup(b.cols.Label),
		Mode: "markers",
	}
	if b.axes3D {
		tr.Z = lookup(b.cols.Z)
		tr.Type = "scatter3d"
	}

	if b.cols.Size != "" {
		tr.Marker = Marker{
			Size:     MarkerSize{Values: lookup(b.cols.Size)},
			SizeMode: "area",
			SizeRef:  b.sizeref,
		}
	} else {
		tr.Marker = Marker{Size: MarkerSize{Constant: 10 * b.cfg.BubbleScale}}
	}

	switch b.role.mode {
	case ColorContinuous:
		show := b.cfg.ShowColorbar
		tr.Marker.Color = lookup(b.role.color)
		tr.Marker.ColorBar = &ColorBar{Title: b.cfg.ColorbarTitle}
		tr.Marker.ColorScale = b.cfg.ColorScale
		tr.Marker.ShowScale = &show
	case ColorCategorical:
		tr.Name = fmt.Sprint(category)
	}

	if err != nil {
		return Trace{}, err
	}
	return tr, nil
}
