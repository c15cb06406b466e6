package lightflux

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalImages(t *testing.T) {
	dir := t.TempDir()
	a1 := writeTestImage(t, filepath.Join(dir, "a.png"), gradientImage(20, 10))
	b1 := writeTestImage(t, filepath.Join(dir, "b.png"), gradientImage(20, 10))

	a, logger := newTestAnalyzer(t, nil)
	c, err := a.Compare(a1, b1, filepath.Join(dir, "out"), MeasureFlux|MeasurePower)
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.FluxScore)
	assert.Equal(t, 1.0, c.PowerScore)
	assert.Equal(t, c.Flux1, c.Power1, "flux of an intensity grid with itself is its power")
	assert.Greater(t, c.Flux1, 0.0)

	for _, name := range []string{"power_a.png.png", "power_b.png.png"} {
		_, err := os.Stat(filepath.Join(dir, "out", name))
		assert.NoError(t, err, name)
	}
	assert.True(t, logger.contains("-> Done"))
}

// A uniform image normalizes to the bottom of the jet colormap, (0,0,127),
// which reads back as gray level 14.
func TestCompareUniformImages(t *testing.T) {
	dir := t.TempDir()
	small := writeTestImage(t, filepath.Join(dir, "small.png"), uniformImage(4, 4, color.NRGBA{10, 200, 30, 255}))
	large := writeTestImage(t, filepath.Join(dir, "large.png"), uniformImage(8, 4, color.NRGBA{250, 0, 90, 255}))

	a, _ := newTestAnalyzer(t, nil)
	c, err := a.Compare(small, large, dir, MeasureFlux|MeasurePower)
	require.NoError(t, err)

	assert.Equal(t, 16*14.0*14.0, c.Flux1)
	assert.Equal(t, 32*14.0*14.0, c.Flux2)
	assert.Equal(t, 0.5, c.FluxScore)
	assert.Equal(t, 0.5, c.PowerScore)

	flux, err := a.CompareFlux(small, large, dir)
	require.NoError(t, err)
	assert.Equal(t, 0.5, flux)

	power, err := a.ComparePower(large, small, dir)
	require.NoError(t, err)
	assert.Equal(t, 0.5, power)
}

func TestCompareIsSymmetric(t *testing.T) {
	dir := t.TempDir()
	img1 := writeTestImage(t, filepath.Join(dir, "one.png"), gradientImage(24, 16))
	img2 := writeTestImage(t, filepath.Join(dir, "two.png"), primariesImage())

	for _, sequential := range []bool{false, true} {
		a, _ := newTestAnalyzer(t, func(c *Config) { c.Sequential = sequential })

		fwd, err := a.CompareFlux(img1, img2, filepath.Join(dir, "fwd"))
		require.NoError(t, err)
		rev, err := a.CompareFlux(img2, img1, filepath.Join(dir, "rev"))
		require.NoError(t, err)

		assert.Equal(t, fwd, rev)
		assert.Less(t, fwd, 1.0)
		assert.Greater(t, fwd, 0.0)
	}
}

// Same basename, so both images write (and read back) the same artifact.
func TestCompareCollidingBasenames(t *testing.T) {
	dir := t.TempDir()
	img1 := writeTestImage(t, filepath.Join(dir, "1", "img.png"), uniformImage(4, 4, color.NRGBA{255, 0, 0, 255}))
	img2 := writeTestImage(t, filepath.Join(dir, "2", "img.png"), gradientImage(8, 8))

	a, _ := newTestAnalyzer(t, nil)
	c, err := a.Compare(img1, img2, filepath.Join(dir, "out"), MeasureFlux)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.FluxScore)
	assert.Equal(t, 64, c.Image2.Summary.Pixels)
}

func TestCompareFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeTestImage(t, filepath.Join(dir, "good.png"), gradientImage(8, 8))

	a, logger := newTestAnalyzer(t, nil)

	score, err := a.CompareFlux(good, filepath.Join(dir, "missing.png"), dir)
	assert.True(t, errors.Is(err, ErrDecode), "%v", err)
	assert.Equal(t, 0.0, score)
	assert.True(t, logger.contains("failed in"))

	_, err = a.ComparePower(filepath.Join(dir, "notes.txt"), good, dir)
	assert.True(t, errors.Is(err, ErrUnsupportedFileType), "%v", err)
}

func TestCompareFailureNamesFailingPipeline(t *testing.T) {
	dir := t.TempDir()
	good := writeTestImage(t, filepath.Join(dir, "good.png"), gradientImage(8, 8))
	missing := filepath.Join(dir, "missing.png")

	for _, sequential := range []bool{false, true} {
		a, logger := newTestAnalyzer(t, func(c *Config) { c.Sequential = sequential })

		_, err := a.CompareFlux(missing, good, filepath.Join(dir, "out1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compare, RunPipelineForImage1:", "sequential=%v", sequential)
		assert.NotContains(t, err.Error(), "RunPipelineForImage2", "sequential=%v", sequential)
		assert.True(t, logger.contains("failed in RunPipelineForImage1"))

		_, err = a.CompareFlux(good, missing, filepath.Join(dir, "out2"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compare, RunPipelineForImage2:", "sequential=%v", sequential)
	}
}

func TestCompareStateString(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "LoadPersistedArtifacts", LoadPersistedArtifacts.String())
	assert.Equal(t, "Done", Done.String())
	assert.Equal(t, "CompareState(42)", CompareState(42).String())
}
