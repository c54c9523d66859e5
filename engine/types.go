package engine

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/aclements/go-gg/table"
)

// ============================================================================
// BUBBLY ENGINE TYPES: Typed plotly figure
// ============================================================================
// Every struct marshals to the key names plotly.js expects, so a Figure can
// be handed to Plotly.newPlot / Plotly.addFrames unchanged.
// ============================================================================

// ============================================================================
// COLUMNS: Caller-chosen column roles
// ============================================================================

// Columns names the dataset columns playing each role. X, Y and Label are
// required; the rest are optional.
type Columns struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Z     string `json:"z,omitempty"`
	Label string `json:"label"` // bubble hover text
	Time  string `json:"time,omitempty"`
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// ============================================================================
// FIGURE
// ============================================================================

// Figure is the complete render-ready output.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames"`
}

// Frame is one animation step.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// Trace is one renderable series.
type Trace struct {
	X      table.Slice `json:"x"`
	Y      table.Slice `json:"y"`
	Z      table.Slice `json:"z,omitempty"`
	Text   table.Slice `json:"text"`
	Mode   string      `json:"mode"`
	Type   string      `json:"type,omitempty"`
	Name   string      `json:"name,omitempty"`
	Marker Marker      `json:"marker"`
}

// MarshalJSON writes non-finite coordinates as null, which plotly draws as gaps.
func (t Trace) MarshalJSON() ([]byte, error) {
	type plain Trace
	p := plain(t)
	p.X, p.Y, p.Z, p.Text = finite(t.X), finite(t.Y), finite(t.Z), finite(t.Text)
	return json.Marshal(p)
}

// Marker describes bubble size and color.
type Marker struct {
	Size       MarkerSize  `json:"size"`
	SizeMode   string      `json:"sizemode,omitempty"`
	SizeRef    float64     `json:"sizeref,omitempty"`
	Color      table.Slice `json:"color,omitempty"`
	ColorBar   *ColorBar   `json:"colorbar,omitempty"`
	ColorScale *ColorScale `json:"colorscale,omitempty"`
	ShowScale  *bool       `json:"showscale,omitempty"`
}

// MarshalJSON writes non-finite color values as null.
func (m Marker) MarshalJSON() ([]byte, error) {
	type plain Marker
	p := plain(m)
	p.Color = finite(m.Color)
	return json.Marshal(p)
}

// MarkerSize is either a per-point array or one constant size.
type MarkerSize struct {
	Values   table.Slice
	Constant float64
}

// MarshalJSON emits the array when present, the constant otherwise.
func (s MarkerSize) MarshalJSON() ([]byte, error) {
	if s.Values != nil {
		return json.Marshal(finite(s.Values))
	}
	return json.Marshal(s.Constant)
}

// finite returns s unchanged unless it is a float column holding NaN or
// ±Inf, in which case those cells become nil pointers (JSON null).
func finite(s table.Slice) table.Slice {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Slice {
		return s
	}
	switch v.Type().Elem().Kind() {
	case reflect.Float32, reflect.Float64:
	default:
		return s
	}

	clean := true
	for i := 0; i < v.Len() && clean; i++ {
		f := v.Index(i).Float()
		clean = !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	if clean {
		return s
	}

	out := make([]*float64, v.Len())
	for i := range out {
		f := v.Index(i).Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out[i] = &f
	}
	return out
}

// ColorBar labels the continuous color gradient.
type ColorBar struct {
	Title string `json:"title,omitempty"`
}

// ============================================================================
// LAYOUT
// ============================================================================

// Layout holds everything outside the traces.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Scene       *Scene       `json:"scene,omitempty"`
	HoverMode   string       `json:"hovermode"`
	ShowLegend  bool         `json:"showlegend"`
	Margin      Margin       `json:"margin"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	Sliders     []Slider     `json:"sliders,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
}

// Scene holds the three axes of a 3D figure.
type Scene struct {
	XAxis *Axis `json:"xaxis"`
	YAxis *Axis `json:"yaxis"`
	ZAxis *Axis `json:"zaxis"`
}

// Axis is one plot axis. Range is in log10 units for log axes.
type Axis struct {
	Title     string    `json:"title,omitempty"`
	AutoRange bool      `json:"autorange"`
	Type      string    `json:"type,omitempty"`
	Range     []float64 `json:"range,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	B   int `json:"b"`
	T   int `json:"t"`
	Pad int `json:"pad"`
}

// Pad is used by sliders and menus; zero sides are omitted.
type Pad struct {
	B int `json:"b,omitempty"`
	T int `json:"t,omitempty"`
	R int `json:"r,omitempty"`
}

// ============================================================================
// SLIDER
// ============================================================================

// Slider scrubs through the frames.
type Slider struct {
	Active       int          `json:"active"`
	YAnchor      string       `json:"yanchor"`
	XAnchor      string       `json:"xanchor"`
	CurrentValue CurrentValue `json:"currentvalue"`
	Transition   Transition   `json:"transition"`
	Pad          Pad          `json:"pad"`
	Len          float64      `json:"len"`
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	Steps        []SliderStep `json:"steps"`
}

// CurrentValue is the label showing the selected step.
type CurrentValue struct {
	Font    Font   `json:"font"`
	Prefix  string `json:"prefix"`
	Visible bool   `json:"visible"`
	XAnchor string `json:"xanchor"`
}

// Font size in points.
type Font struct {
	Size int `json:"size"`
}

// SliderStep animates to one frame.
type SliderStep struct {
	Args   AnimateArgs `json:"args"`
	Label  string      `json:"label"`
	Method string      `json:"method"`
}

// ============================================================================
// BUTTONS
// ============================================================================

// UpdateMenu is the play/pause button group.
type UpdateMenu struct {
	Buttons    []Button `json:"buttons"`
	Direction  string   `json:"direction"`
	Pad        Pad      `json:"pad"`
	ShowActive bool     `json:"showactive"`
	Type       string   `json:"type"`
	X          float64  `json:"x"`
	XAnchor    string   `json:"xanchor"`
	Y          float64  `json:"y"`
	YAnchor    string   `json:"yanchor"`
}

// Button triggers an animate call.
type Button struct {
	Args   AnimateArgs `json:"args"`
	Label  string      `json:"label"`
	Method string      `json:"method"`
}

// ============================================================================
// ANIMATION ARGUMENTS
// ============================================================================

// AnimateArgs is the two-element argument list of Plotly.animate:
// [frames, options]. A nil Frames marshals to null ("all frames"); a slice
// holding one nil pointer marshals to [null] ("stop").
type AnimateArgs struct {
	Frames  []*string
	Options AnimationOptions
}

// MarshalJSON emits the [frames, options] pair.
func (a AnimateArgs) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Frames, a.Options})
}

// AnimationOptions configures one animate call.
type AnimationOptions struct {
	Frame       FrameOptions `json:"frame"`
	Mode        string       `json:"mode,omitempty"`
	FromCurrent bool         `json:"fromcurrent,omitempty"`
	Transition  Transition   `json:"transition"`
}

// FrameOptions controls per-frame timing.
type FrameOptions struct {
	Duration int  `json:"duration"`
	Redraw   bool `json:"redraw"`
}

// Transition controls tweening between frames.
type Transition struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing,omitempty"`
}
