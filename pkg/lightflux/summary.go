package lightflux

import (
	"fmt"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/spectrum"
)

// Wavelengths go into the histogram in tenths of a nanometre.
const histScale = 10

// A Summary describes the spread of wavelengths and frequencies across an
// image.
type Summary struct {
	Pixels int

	MeanWavelength   float64 // nm
	StdDevWavelength float64
	P10, P50, P90    float64 // wavelength percentiles, nm

	MinFrequency, MaxFrequency float64 // THz

	Dropped int // wavelengths outside the histogram, left out of the percentiles
}

// Summarize expects a wavelength grid in nm, and the matching frequency
// grid in Hz.
func Summarize(wavelengths, frequencies emath.FloatGrid) Summary {
	s := Summary{Pixels: wavelengths.Len()}
	if s.Pixels == 0 {
		return s
	}

	s.MeanWavelength, s.StdDevWavelength = stat.PopMeanStdDev(wavelengths.Values(), nil)

	h := hdrhistogram.New(1, int64(spectrum.MaxWavelength*histScale)+1, 3)
	for _, nm := range wavelengths.Values() {
		if !(nm >= 0 && nm <= spectrum.MaxWavelength) {
			s.Dropped++
			continue
		}
		if err := h.RecordValue(int64(nm * histScale)); err != nil {
			s.Dropped++
		}
	}
	s.P10 = float64(h.ValueAtQuantile(10)) / histScale
	s.P50 = float64(h.ValueAtQuantile(50)) / histScale
	s.P90 = float64(h.ValueAtQuantile(90)) / histScale

	lo, hi := frequencies.MinMax()
	s.MinFrequency, s.MaxFrequency = lo*spectrum.HzToTHz, hi*spectrum.HzToTHz

	return s
}

func (s Summary) String() string {
	str := fmt.Sprintf("%d pixels; wavelength mean %.1fnm (sd %.1f), p10/p50/p90 %.1f/%.1f/%.1fnm; frequency %.1f-%.1fTHz",
		s.Pixels, s.MeanWavelength, s.StdDevWavelength, s.P10, s.P50, s.P90, s.MinFrequency, s.MaxFrequency)
	if s.Dropped > 0 {
		str += fmt.Sprintf(" (%d out of range)", s.Dropped)
	}
	return str
}
