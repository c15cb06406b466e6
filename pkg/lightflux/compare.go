package lightflux

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/metrics"
)

// DefaultCompareDir is where comparisons write their artifacts when no
// directory is given.
const DefaultCompareDir = "comparison_results"

// CompareState tracks how far a comparison has got. Any failure aborts
// the comparison, so Done is only reached with a score.
type CompareState int

const (
	Idle CompareState = iota
	RunPipelineForImage1
	RunPipelineForImage2
	LoadPersistedArtifacts
	ComputeScalars
	ComputeScore
	Done
)

var compareStateNames = []string{
	"Idle",
	"RunPipelineForImage1",
	"RunPipelineForImage2",
	"LoadPersistedArtifacts",
	"ComputeScalars",
	"ComputeScore",
	"Done",
}

func (s CompareState) String() string {
	if s < 0 || int(s) >= len(compareStateNames) {
		return fmt.Sprintf("CompareState(%d)", int(s))
	}
	return compareStateNames[s]
}

// Measure picks what a comparison scores; combine with |.
type Measure int

const (
	MeasureFlux Measure = 1 << iota
	MeasurePower
)

// A Comparison holds the scalars and scores of a two-image comparison.
// Fields for measures that weren't asked for are left zero.
type Comparison struct {
	Image1, Image2 *SpectralImage

	Flux1, Flux2   float64
	Power1, Power2 float64

	FluxScore  float64
	PowerScore float64

	PowerArtifacts []ArtifactPath
}

// CompareFlux scores how similar the two images' flux is, 1.0 meaning
// identical.
func (a *Analyzer) CompareFlux(filename1, filename2, outDir string) (float64, error) {
	c, err := a.Compare(filename1, filename2, outDir, MeasureFlux)
	return c.FluxScore, err
}

// ComparePower scores how similar the two images' power is, and writes a
// power_<basename>.png artifact for each.
func (a *Analyzer) ComparePower(filename1, filename2, outDir string) (float64, error) {
	c, err := a.Compare(filename1, filename2, outDir, MeasurePower)
	return c.PowerScore, err
}

// Compare runs both images through the pipeline, reads their frequency
// artifacts back in as grayscale intensity grids, and scores them. The
// intensity is what was persisted, so colormapping and file format losses
// are part of the result.
//
// The two pipelines run concurrently, unless the images share a basename
// (their artifacts would collide) or the config asks for Sequential.
func (a *Analyzer) Compare(filename1, filename2, outDir string, m Measure) (Comparison, error) {
	if outDir == "" {
		outDir = DefaultCompareDir
	}

	c := Comparison{}
	state := Idle
	transition := func(next CompareState) {
		a.vlogf("compare %s vs %s: %s -> %s", filepath.Base(filename1), filepath.Base(filename2), state, next)
		state = next
	}
	fail := func(err error) (Comparison, error) {
		a.Log.Printf("compare %s vs %s: failed in %s: %v", filename1, filename2, state, err)
		return Comparison{}, fmt.Errorf("compare, %s: %w", state, err)
	}

	if a.Sequential || filepath.Base(filename1) == filepath.Base(filename2) {
		transition(RunPipelineForImage1)
		si, err := a.ProcessSingleImage(filename1, outDir)
		if err != nil {
			return fail(err)
		}
		c.Image1 = si

		transition(RunPipelineForImage2)
		if si, err = a.ProcessSingleImage(filename2, outDir); err != nil {
			return fail(err)
		}
		c.Image2 = si

	} else {
		var g errgroup.Group
		var err1, err2 error
		transition(RunPipelineForImage1)
		g.Go(func() error {
			c.Image1, err1 = a.ProcessSingleImage(filename1, outDir)
			return err1
		})
		transition(RunPipelineForImage2)
		g.Go(func() error {
			c.Image2, err2 = a.ProcessSingleImage(filename2, outDir)
			return err2
		})
		g.Wait()

		// Blame the pipeline that actually failed, image 1 first if both did.
		switch {
		case err1 != nil:
			state = RunPipelineForImage1
			return fail(err1)
		case err2 != nil:
			return fail(err2)
		}
	}

	transition(LoadPersistedArtifacts)
	intensity1, err := LoadIntensity(NewArtifactPath(outDir, KindFrequency, filename1))
	if err != nil {
		return fail(err)
	}
	intensity2, err := LoadIntensity(NewArtifactPath(outDir, KindFrequency, filename2))
	if err != nil {
		return fail(err)
	}

	transition(ComputeScalars)
	if m&MeasureFlux != 0 {
		// Each image's flux is its intensity against itself.
		if c.Flux1, err = metrics.CalculateFlux(intensity1, intensity1); err != nil {
			return fail(err)
		}
		if c.Flux2, err = metrics.CalculateFlux(intensity2, intensity2); err != nil {
			return fail(err)
		}
	}
	if m&MeasurePower != 0 {
		c.Power1 = metrics.CalculatePower(intensity1)
		c.Power2 = metrics.CalculatePower(intensity2)

		for _, in := range []struct {
			fg     emath.FloatGrid
			source string
		}{{intensity1, filename1}, {intensity2, filename2}} {
			p, err := a.renderPower(in.fg, outDir, in.source)
			if err != nil {
				return fail(err)
			}
			c.PowerArtifacts = append(c.PowerArtifacts, p)
		}
	}

	transition(ComputeScore)
	if m&MeasureFlux != 0 {
		if c.FluxScore, err = metrics.Similarity(c.Flux1, c.Flux2); err != nil {
			return fail(err)
		}
		a.vlogf("flux %g vs %g, similarity %g", c.Flux1, c.Flux2, c.FluxScore)
	}
	if m&MeasurePower != 0 {
		if c.PowerScore, err = metrics.Similarity(c.Power1, c.Power2); err != nil {
			return fail(err)
		}
		a.vlogf("power %g vs %g, similarity %g", c.Power1, c.Power2, c.PowerScore)
	}

	transition(Done)
	return c, nil
}
