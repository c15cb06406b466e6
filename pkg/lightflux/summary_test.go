package lightflux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/spectrum"
)

func TestSummarize(t *testing.T) {
	wl, err := emath.NewFloatGridFromRows([][]float64{
		{450, 450, 450, 450, 450},
		{740 - 1e-9, 740 - 1e-9, 740 - 1e-9, 740 - 1e-9, 740 - 1e-9},
	})
	require.NoError(t, err)
	freq := spectrum.Frequencies(wl.Scale(spectrum.NanometresToMetres))

	s := Summarize(wl, freq)
	assert.Equal(t, 10, s.Pixels)
	assert.InDelta(t, 595, s.MeanWavelength, 1e-6)
	assert.InDelta(t, 145, s.StdDevWavelength, 1e-6)
	assert.InDelta(t, 450, s.P10, 1)
	assert.InDelta(t, 740, s.P90, 1)
	assert.InDelta(t, 405.1, s.MinFrequency, 0.1)
	assert.InDelta(t, 666.2, s.MaxFrequency, 0.1)

	assert.Equal(t, 0, s.Dropped)
	assert.Contains(t, s.String(), "10 pixels")
	assert.NotContains(t, s.String(), "out of range")
}

func TestSummarizeOutOfRange(t *testing.T) {
	wl, err := emath.NewFloatGridFromRows([][]float64{
		{500, 500, 500},
		{1e9, -5, 500},
	})
	require.NoError(t, err)
	freq := spectrum.Frequencies(wl.Scale(spectrum.NanometresToMetres))

	s := Summarize(wl, freq)
	assert.Equal(t, 6, s.Pixels)
	assert.Equal(t, 2, s.Dropped)
	assert.InDelta(t, 500, s.P10, 1)
	assert.InDelta(t, 500, s.P90, 1)
	assert.Contains(t, s.String(), "(2 out of range)")
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(emath.FloatGrid{}, emath.FloatGrid{}))
}
