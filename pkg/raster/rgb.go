package raster

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is a pixel in canonical red, green, blue order.
type RGB struct {
	R, G, B uint8
}

// An RGBGrid is what the spectral mapping consumes: every pixel is an RGB
// triple, whatever order the source file used.
type RGBGrid struct {
	Rows int
	Cols int
	Pix  []RGB
}

func NewRGBGrid(rows, cols int) RGBGrid {
	return RGBGrid{Rows: rows, Cols: cols, Pix: make([]RGB, rows*cols)}
}

func (g RGBGrid) At(x, y int) RGB         { return g.Pix[y*g.Cols+x] }
func (g RGBGrid) Set(x, y int, c RGB)     { g.Pix[y*g.Cols+x] = c }
func (g RGBGrid) Row(y int) []RGB         { return g.Pix[y*g.Cols : (y+1)*g.Cols] }
func (g RGBGrid) Bounds() image.Rectangle { return image.Rect(0, 0, g.Cols, g.Rows) }

// ToRGB reorders the channels of a 3-channel grid into RGB. This is a
// permutation only; no colorimetric transform happens here.
func ToRGB(g PixelGrid) (RGBGrid, error) {
	if g.Channels != 3 {
		return RGBGrid{}, fmt.Errorf("%w: %s", ErrNotColor, g)
	}
	if len(g.Pix) != g.Rows*g.Cols*3 {
		return RGBGrid{}, fmt.Errorf("%w: %s has %d bytes, want %d", ErrNotColor, g, len(g.Pix), g.Rows*g.Cols*3)
	}

	var ri, gi, bi int
	switch g.Order {
	case OrderRGB:
		ri, gi, bi = 0, 1, 2
	case OrderBGR:
		ri, gi, bi = 2, 1, 0
	default:
		return RGBGrid{}, fmt.Errorf("%w: can't reorder %s to rgb", ErrNotColor, g.Order)
	}

	out := NewRGBGrid(g.Rows, g.Cols)
	for i := range out.Pix {
		px := g.Pix[i*3 : i*3+3]
		out.Pix[i] = RGB{R: px[ri], G: px[gi], B: px[bi]}
	}

	return out, nil
}

// ToImage returns an opaque image of the grid, e.g. for writing to disk.
func (g RGBGrid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(g.Bounds())
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := g.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
	return img
}
