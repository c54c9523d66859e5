package engine

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/table"
)

// ============================================================================
// FRAME TABLE: Flattens a Figure into one row per bubble per frame
// ============================================================================
// Columns: frame, trace, label, x, y, then z / size / color when the figure
// carries them. A figure without frames yields its base traces with an
// empty frame column.
// ============================================================================

// FrameTable is a string table ready for CSV export.
type FrameTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// BuildFrameTable flattens fig.
func BuildFrameTable(fig *Figure) *FrameTable {
	frames := fig.Frames
	if len(frames) == 0 {
		frames = []Frame{{Data: fig.Data}}
	}

	var hasZ, hasSize, hasColor bool
	for _, tr := range fig.Data {
		hasZ = hasZ || tr.Z != nil
		hasSize = hasSize || tr.Marker.Size.Values != nil
		hasColor = hasColor || tr.Marker.Color != nil
	}

	ft := &FrameTable{
		Columns: []string{"frame", "trace", "label", "x", "y"},
		Rows:    [][]string{},
	}
	if hasZ {
		ft.Columns = append(ft.Columns, "z")
	}
	if hasSize {
		ft.Columns = append(ft.Columns, "size")
	}
	if hasColor {
		ft.Columns = append(ft.Columns, "color")
	}

	for _, frame := range frames {
		for _, tr := range frame.Data {
			for i := 0; i < sliceLen(tr.X); i++ {
				row := []string{frame.Name, tr.Name, cell(tr.Text, i), cell(tr.X, i), cell(tr.Y, i)}
				if hasZ {
					row = append(row, cell(tr.Z, i))
				}
				if hasSize {
					row = append(row, cell(tr.Marker.Size.Values, i))
				}
				if hasColor {
					row = append(row, cell(tr.Marker.Color, i))
				}
				ft.Rows = append(ft.Rows, row)
			}
		}
	}
	return ft
}

// cell formats element i of s, or "" when s is absent or short.
func cell(s table.Slice, i int) string {
	if i >= sliceLen(s) {
		return ""
	}
	return fmt.Sprint(reflect.ValueOf(s).Index(i).Interface())
}
