package emath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, with some operations. Values are
// stored row-major; (x,y) is column x of row y.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromRows copies a slice of rows into a grid. Every row must
// have the same length.
func NewFloatGridFromRows(rows [][]float64) (FloatGrid, error) {
	if len(rows) == 0 {
		return FloatGrid{}, nil
	}

	w := len(rows[0])
	fg := NewFloatGrid(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return FloatGrid{}, fmt.Errorf("row %d has %d values, want %d (grid must be rectangular)", y, len(row), w)
		}
		copy(fg.values[y*w:(y+1)*w], row)
	}

	return fg, nil
}

func (g1 *FloatGrid) NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }
func (fg *FloatGrid) Len() int                { return len(fg.values) }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// Values exposes the backing slice, row-major. Callers that write to it
// are writing to the grid.
func (fg *FloatGrid) Values() []float64 { return fg.values }

// Row returns the backing slice for row y.
func (fg *FloatGrid) Row(y int) []float64 { return fg.values[y*fg.stride : (y+1)*fg.stride] }

func (g1 *FloatGrid) SameShape(g2 FloatGrid) bool {
	return g1.Dx() == g2.Dx() && g1.Dy() == g2.Dy()
}

func (g1 *FloatGrid) Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Scale returns a new grid with every value multiplied by f.
func (g1 *FloatGrid) Scale(f float64) FloatGrid {
	g2 := g1.Copy()
	floats.Scale(f, g2.values)
	return *g2
}

// Map returns a new grid with fn applied to every value.
func (g1 *FloatGrid) Map(fn func(float64) float64) FloatGrid {
	g2 := g1.NewFromThis()
	for i, v := range g1.values {
		g2.values[i] = fn(v)
	}
	return g2
}

// MinMax returns the smallest and largest values; NaNs are skipped. An
// empty grid returns (0,0).
func (fg *FloatGrid) MinMax() (float64, float64) {
	if len(fg.values) == 0 {
		return 0, 0
	}
	if !floats.HasNaN(fg.values) {
		return floats.Min(fg.values), floats.Max(fg.values)
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range fg.values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Normalize maps the grid linearly onto [0,1], min->0 and max->1. If every
// value is the same, everything maps to 0 (which is what matplotlib's
// Normalize does, and our colormaps follow it).
func (fg *FloatGrid) Normalize() FloatGrid {
	min, max := fg.MinMax()
	if max == min {
		return fg.NewFromThis()
	}
	return fg.Map(func(v float64) float64 { return (v - min) / (max - min) })
}

func (fg *FloatGrid) Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}
