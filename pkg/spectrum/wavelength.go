// Package spectrum maps pixel colors onto the visible spectrum: a hue
// for each RGB triple, a wavelength for each hue, and a frequency for
// each wavelength.
//
// The wavelength mapping is a heuristic remap of hue, not a calibrated
// color science model; the band table below must be reproduced exactly,
// discontinuities and all.
package spectrum

import "math"

// The four hue bands, and the wavelength range (nm) each is stretched onto.
// The two red bands (either side of 0/360) share a range.
var bands = []struct {
	hueMin, hueMax float64
	nmMin, nmMax   float64
}{
	{0, 60, 620, 740},
	{60, 180, 495, 570},
	{180, 300, 450, 495},
	{300, 360, 620, 740},
}

const (
	MinWavelength = 450.0 // nm
	MaxWavelength = 740.0 // nm
)

// Hue returns an HSL-style hue in degrees, [0,360). When more than one
// channel holds the max value, red wins over green, and green over blue.
func Hue(r, g, b uint8) float64 {
	rf, gf, bf := float64(r), float64(g), float64(b)
	maxVal := math.Max(rf, math.Max(gf, bf))
	minVal := math.Min(rf, math.Min(gf, bf))

	switch {
	case maxVal == minVal:
		return 0
	case maxVal == rf:
		return floorMod(60*((gf-bf)/(maxVal-minVal))+360, 360)
	case maxVal == gf:
		return floorMod(60*((bf-rf)/(maxVal-minVal))+120, 360)
	default:
		return floorMod(60*((rf-gf)/(maxVal-minVal))+240, 360)
	}
}

// HueToWavelength maps a hue onto a wavelength in nanometres, by linear
// interpolation inside the hue's band. Hues at or past 300 (including
// anything out of range) take the last band.
func HueToWavelength(hue float64) float64 {
	for _, band := range bands[:3] {
		if band.hueMin <= hue && hue < band.hueMax {
			return band.nmMin + ((hue-band.hueMin)/(band.hueMax-band.hueMin))*(band.nmMax-band.nmMin)
		}
	}

	band := bands[3]
	return band.nmMin + ((hue-band.hueMin)/(band.hueMax-band.hueMin))*(band.nmMax-band.nmMin)
}

// RGBToWavelength is Hue followed by HueToWavelength.
func RGBToWavelength(r, g, b uint8) float64 {
	return HueToWavelength(Hue(r, g, b))
}

// floorMod is a modulo whose result takes the sign of the divisor, so a
// negative hue offset wraps round to the top of the circle.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
