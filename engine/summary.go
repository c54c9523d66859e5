package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// SUMMARY: Human-readable description of an assembled figure
// ============================================================================

// Summary describes the shape of a Figure.
type Summary struct {
	Title   string `json:"title,omitempty"`
	Kind    string `json:"kind"` // "2d" or "3d"
	Traces  int    `json:"traces"`
	Bubbles int    `json:"bubbles"` // in the base frame
	Frames  int    `json:"frames"`
	Period  string `json:"period"`
}

// Summarize describes fig.
func Summarize(fig *Figure) *Summary {
	s := &Summary{
		Title:  fig.Layout.Title,
		Kind:   "2d",
		Traces: len(fig.Data),
		Frames: len(fig.Frames),
		Period: derivePeriod(fig.Frames),
	}
	if fig.Layout.Scene != nil {
		s.Kind = "3d"
	}
	for _, tr := range fig.Data {
		s.Bubbles += sliceLen(tr.X)
	}
	return s
}

func (s *Summary) String() string {
	var b strings.Builder
	if s.Title != "" {
		fmt.Fprintf(&b, "%s\n", s.Title)
	}
	fmt.Fprintf(&b, "%s bubble chart: %d bubbles in %d traces", strings.ToUpper(s.Kind), s.Bubbles, s.Traces)
	if s.Frames > 0 {
		fmt.Fprintf(&b, ", %d frames (%s)", s.Frames, s.Period)
	}
	return b.String()
}

// derivePeriod spans the first and last frame names.
func derivePeriod(frames []Frame) string {
	switch len(frames) {
	case 0:
		return "static"
	case 1:
		return frames[0].Name
	}
	return fmt.Sprintf("%s – %s", frames[0].Name, frames[len(frames)-1].Name)
}
