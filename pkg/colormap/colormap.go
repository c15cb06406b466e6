// Package colormap renders float grids as false-color images, using a
// small closed set of the usual scientific colormaps. Each map behaves
// like its matplotlib namesake: a 256-entry lookup table sampled from
// piecewise-linear channel curves, with values min-max normalized first.
package colormap

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/lightflux/pkg/emath"
)

const N = 256

// A Colormap is a named lookup table.
type Colormap struct {
	Name string
	lut  [N]colorful.Color
}

var registry = map[string]*Colormap{}

func init() {
	for name, segs := range segmentData {
		registry[name] = build(name, segs)
	}
}

// Names lists the known colormaps, sorted.
func Names() []string {
	names := []string{}
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListColormaps() string { return strings.Join(Names(), ",") }

// Lookup returns the named colormap, or an error if there isn't one.
func Lookup(name string) (*Colormap, error) {
	if cm, exists := registry[name]; exists {
		return cm, nil
	}
	return nil, fmt.Errorf("colormap %q not known (want one of %s)", name, ListColormaps())
}

// Entry returns the i'th lookup table color, truncated to 8 bits.
func (cm *Colormap) Entry(i int) color.NRGBA {
	c := cm.lut[i].Clamped()
	return color.NRGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: 0xff}
}

// At maps a normalized value onto a color. Values below 0 or above 1 clamp
// to the ends of the table; NaN is fully transparent.
func (cm *Colormap) At(t float64) color.NRGBA {
	if math.IsNaN(t) {
		return color.NRGBA{}
	}
	return cm.Entry(index(t))
}

func index(t float64) int {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return N - 1
	}
	return min(int(t*N), N-1)
}

// Render normalizes the grid onto [0,1] and maps every value through the
// colormap. The image has one pixel per grid cell.
func (cm *Colormap) Render(fg emath.FloatGrid) *image.NRGBA {
	norm := fg.Normalize()
	img := image.NewNRGBA(image.Rect(0, 0, fg.Dx(), fg.Dy()))

	for y := 0; y < norm.Dy(); y++ {
		for x, v := range norm.Row(y) {
			img.SetNRGBA(x, y, cm.At(v))
		}
	}

	return img
}

// build samples the channel curves into a lookup table. The curves are
// first evaluated at the union of their breakpoints; between two adjacent
// breakpoints every channel is linear, so a straight RGB blend of the two
// stop colors reproduces the curves exactly.
func build(name string, segs segments) *Colormap {
	xs := breakpoints(segs)
	stops := make([]colorful.Color, len(xs))
	for i, x := range xs {
		stops[i] = colorful.Color{R: segs.red.at(x), G: segs.green.at(x), B: segs.blue.at(x)}
	}

	cm := &Colormap{Name: name}
	k := 0
	for i := range cm.lut {
		x := float64(i) / (N - 1)
		for k < len(xs)-2 && x > xs[k+1] {
			k++
		}
		t := (x - xs[k]) / (xs[k+1] - xs[k])
		cm.lut[i] = stops[k].BlendRgb(stops[k+1], t)
	}

	return cm
}

func breakpoints(segs segments) []float64 {
	seen := map[float64]bool{}
	xs := []float64{}
	for _, c := range []curve{segs.red, segs.green, segs.blue} {
		for _, p := range c {
			if !seen[p.x] {
				seen[p.x] = true
				xs = append(xs, p.x)
			}
		}
	}
	sort.Float64s(xs)
	return xs
}
