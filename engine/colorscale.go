package engine

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// ColorScale maps continuous color values to colors. Either Name (a plotly
// built-in such as "Viridis" or "Jet") or Stops is set.
type ColorScale struct {
	Name  string
	Stops []ColorStop
}

// ColorStop pins Color at position At in [0, 1].
type ColorStop struct {
	At    float64
	Color string
}

// NamedColorScale refers to a built-in plotly scale.
func NamedColorScale(name string) *ColorScale {
	return &ColorScale{Name: name}
}

// ColorScaleTable builds a scale from explicit stops.
func ColorScaleTable(stops ...ColorStop) *ColorScale {
	return &ColorScale{Stops: stops}
}

// PaletteColorScale samples p at n evenly spaced positions.
func PaletteColorScale(p palette.Continuous, n int) *ColorScale {
	if n < 2 {
		n = 2
	}
	stops := make([]ColorStop, n)
	for i := range stops {
		at := float64(i) / float64(n-1)
		stops[i] = ColorStop{At: at, Color: cssRGB(p.Map(at))}
	}
	return &ColorScale{Stops: stops}
}

// ViridisColorScale is the go-gg viridis palette as a stop table.
func ViridisColorScale() *ColorScale {
	return PaletteColorScale(palette.Viridis, 11)
}

// MarshalJSON emits the name, or the [[at, color], ...] table.
func (s ColorScale) MarshalJSON() ([]byte, error) {
	if s.Name != "" {
		return json.Marshal(s.Name)
	}
	table := make([][2]any, len(s.Stops))
	for i, st := range s.Stops {
		table[i] = [2]any{st.At, st.Color}
	}
	return json.Marshal(table)
}

func cssRGB(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("rgb(%d,%d,%d)", rgba.R, rgba.G, rgba.B)
}
