package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bubbly/engine"
)

func TestSummarize(t *testing.T) {
	fig, err := engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Label: "country", Time: "year", Color: "continent",
	}, engine.WithTitle("Countries"))
	require.NoError(t, err)

	s := engine.Summarize(fig)
	assert.Equal(t, "2d", s.Kind)
	assert.Equal(t, 2, s.Traces)
	assert.Equal(t, 3, s.Bubbles)
	assert.Equal(t, 2, s.Frames)
	assert.Equal(t, "2001 – 2000", s.Period)
	assert.Equal(t, "Countries\n2D bubble chart: 3 bubbles in 2 traces, 2 frames (2001 – 2000)", s.String())
}

func TestSummarizeStatic(t *testing.T) {
	fig, err := engine.BubblePlot(continentsDataset(), engine.Columns{
		X: "gdp", Y: "life", Z: "pop", Label: "country",
	})
	require.NoError(t, err)

	s := engine.Summarize(fig)
	assert.Equal(t, "3d", s.Kind)
	assert.Equal(t, 6, s.Bubbles)
	assert.Equal(t, "static", s.Period)
	assert.Equal(t, "3D bubble chart: 6 bubbles in 1 traces", s.String())
}
