package lightflux

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abworrall/lightflux/pkg/edges"
	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/metrics"
	"github.com/abworrall/lightflux/pkg/raster"
	"github.com/abworrall/lightflux/pkg/spectrum"
)

// A SpectralImage is everything the pipeline derived from one source
// image.
type SpectralImage struct {
	Source string

	RGB         raster.RGBGrid
	Wavelengths emath.FloatGrid // nm
	Frequencies emath.FloatGrid // Hz
	Edges       emath.FloatGrid // empty unless edge detection is on

	Exposure *ExposureValue // nil if the file had no usable EXIF
	Summary  Summary

	Artifacts []ArtifactPath
}

func (si SpectralImage) String() string {
	s := fmt.Sprintf("%s [%dx%d] %s", filepath.Base(si.Source), si.RGB.Cols, si.RGB.Rows, si.Summary)
	if si.Exposure != nil {
		s += fmt.Sprintf("; %s", si.Exposure)
	}
	return s
}

// ProcessSingleImage runs one image through the pipeline: validate,
// decode, convert to RGB, map each pixel to a wavelength and a frequency,
// and write the rgb_, wavelength_ and frequency_ artifacts into outDir
// (plus edges_ and the .hdr sidecars, if configured). outDir is created
// if needed.
func (a *Analyzer) ProcessSingleImage(filename, outDir string) (*SpectralImage, error) {
	g, ev, err := a.LoadImage(filename)
	if err != nil {
		return nil, err
	}

	rgb, err := raster.ToRGB(g)
	if err != nil {
		a.Log.Printf("Failed to convert %s to RGB: %v", filename, err)
		return nil, fmt.Errorf("process %s: %w", filename, err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("process %s: %w", filename, err)
	}

	si := &SpectralImage{
		Source:   filename,
		RGB:      rgb,
		Exposure: ev,
	}
	base := filepath.Base(filename)

	rgbPath := NewArtifactPath(outDir, KindRGB, filename)
	if err := WriteImage(rgb.ToImage(), rgbPath); err != nil {
		return nil, err
	}
	si.Artifacts = append(si.Artifacts, rgbPath)
	a.vlogf("Processed and saved RGB image to %s", rgbPath)

	si.Wavelengths = a.mapper.Wavelengths(rgb)
	si.Frequencies = a.mapper.Frequencies(si.Wavelengths.Scale(spectrum.NanometresToMetres))
	terahertz := si.Frequencies.Scale(spectrum.HzToTHz)

	wlPath := NewArtifactPath(outDir, KindWavelength, filename)
	if err := a.renderTo(wlPath, si.Wavelengths, a.wavelengthCM, rangeCaption("wavelength", base, si.Wavelengths, "nm")); err != nil {
		return nil, err
	}
	si.Artifacts = append(si.Artifacts, wlPath)

	// This one gets read back in as an intensity grid, so never caption it.
	freqPath := NewArtifactPath(outDir, KindFrequency, filename)
	if err := a.renderTo(freqPath, terahertz, a.frequencyCM, ""); err != nil {
		return nil, err
	}
	si.Artifacts = append(si.Artifacts, freqPath)

	if a.edgeMethod != edges.None {
		if si.Edges, err = edges.Detect(g, a.edgeMethod); err != nil {
			return nil, fmt.Errorf("process %s: %w", filename, err)
		}
		edgePath := NewArtifactPath(outDir, KindEdges, filename)
		if err := a.renderTo(edgePath, si.Edges, a.edgeCM, fmt.Sprintf("%s edges %s", a.edgeMethod, base)); err != nil {
			return nil, err
		}
		si.Artifacts = append(si.Artifacts, edgePath)
	}

	if a.WriteHDR {
		for _, sidecar := range []struct {
			kind ArtifactKind
			fg   emath.FloatGrid
		}{{KindWavelength, si.Wavelengths}, {KindFrequency, terahertz}} {
			p := NewArtifactPath(outDir, sidecar.kind, filename).WithExt(".hdr")
			if err := WriteHDR(sidecar.fg, p); err != nil {
				return nil, err
			}
			si.Artifacts = append(si.Artifacts, p)
		}
	}

	si.Summary = Summarize(si.Wavelengths, si.Frequencies)
	a.vlogf("%s", si)

	return si, nil
}

// ProcessPair runs both images through the pipeline, one after the other,
// into the same output directory.
func (a *Analyzer) ProcessPair(filename1, filename2, outDir string) (*SpectralImage, *SpectralImage, error) {
	si1, err := a.ProcessSingleImage(filename1, outDir)
	if err != nil {
		return nil, nil, err
	}
	si2, err := a.ProcessSingleImage(filename2, outDir)
	if err != nil {
		return nil, nil, err
	}
	return si1, si2, nil
}

// renderPower writes intensity^2 as the power_<basename>.png artifact.
func (a *Analyzer) renderPower(intensity emath.FloatGrid, outDir, source string) (ArtifactPath, error) {
	power := intensity.Map(func(v float64) float64 { return v * v })
	p := NewArtifactPath(outDir, KindPower, source).WithExt(".png")

	caption := fmt.Sprintf("power %s: %.4g", filepath.Base(source), metrics.CalculatePower(intensity))
	if err := a.renderTo(p, power, a.powerCM, caption); err != nil {
		return p, err
	}
	return p, nil
}
