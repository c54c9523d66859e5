package engine

// ============================================================================
// ENGINE OPTIONS: Functional options for BubblePlot()
// ============================================================================

// Option configures figure assembly via functional options pattern.
type Option func(*config)

type config struct {
	Title         string
	XTitle        string
	YTitle        string
	ZTitle        string
	ColorbarTitle string

	XLog, YLog, ZLog bool

	// Explicit ranges; nil means derive from the data.
	XRange, YRange, ZRange []float64

	BubbleScale float64
	ColorScale  *ColorScale
	Width       int
	Height      int

	ShowSlider   bool
	ShowButton   bool
	ShowColorbar bool
	ShowLegend   *bool // nil → shown only for categorical color

	SliderPrefix string
}

// WithTitle sets the figure title.
func WithTitle(title string) Option {
	return func(c *config) { c.Title = title }
}

// WithAxisTitles sets the axis titles. z is ignored for 2D figures.
func WithAxisTitles(x, y, z string) Option {
	return func(c *config) {
		c.XTitle, c.YTitle, c.ZTitle = x, y, z
	}
}

// WithColorbarTitle titles the colorbar of a continuous color encoding.
func WithColorbarTitle(title string) Option {
	return func(c *config) { c.ColorbarTitle = title }
}

// WithLogAxes switches the given axes to a log10 scale.
func WithLogAxes(x, y, z bool) Option {
	return func(c *config) {
		c.XLog, c.YLog, c.ZLog = x, y, z
	}
}

// WithXRange fixes the x axis range. For log axes the bounds are log10 units.
func WithXRange(min, max float64) Option {
	return func(c *config) { c.XRange = []float64{min, max} }
}

// WithYRange fixes the y axis range.
func WithYRange(min, max float64) Option {
	return func(c *config) { c.YRange = []float64{min, max} }
}

// WithZRange fixes the z axis range.
func WithZRange(min, max float64) Option {
	return func(c *config) { c.ZRange = []float64{min, max} }
}

// WithBubbleScale scales every bubble. Values <= 0 are ignored.
func WithBubbleScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.BubbleScale = scale
		}
	}
}

// WithColorScale sets the gradient used by a continuous color column.
func WithColorScale(s *ColorScale) Option {
	return func(c *config) { c.ColorScale = s }
}

// WithSize sets the figure size in pixels; zero leaves it to the renderer.
func WithSize(width, height int) Option {
	return func(c *config) {
		c.Width, c.Height = width, height
	}
}

// WithSlider toggles the time slider.
func WithSlider(show bool) Option {
	return func(c *config) { c.ShowSlider = show }
}

// WithButton toggles the play/pause buttons.
func WithButton(show bool) Option {
	return func(c *config) { c.ShowButton = show }
}

// WithColorbar toggles the colorbar of a continuous color encoding.
func WithColorbar(show bool) Option {
	return func(c *config) { c.ShowColorbar = show }
}

// WithLegend forces the legend on or off.
func WithLegend(show bool) Option {
	return func(c *config) { c.ShowLegend = &show }
}

// WithSliderPrefix sets the text shown before the current slider value.
func WithSliderPrefix(prefix string) Option {
	return func(c *config) { c.SliderPrefix = prefix }
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		BubbleScale:  1,
		ShowSlider:   true,
		ShowButton:   true,
		ShowColorbar: true,
		SliderPrefix: "Year:",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
