package raster

import (
	"image"
	"image/color"

	"github.com/abworrall/lightflux/pkg/emath"
)

// FromImage converts a decoded image into a 3-channel BGR grid, the way
// OpenCV's IMREAD_COLOR does it: alpha is dropped, gray is replicated into
// all three channels, 16-bit channels keep their high byte.
func FromImage(img image.Image) PixelGrid {
	b := img.Bounds()
	g := NewPixelGrid(b.Dy(), b.Dx(), 3, OrderBGR)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			g.Pix[i+0] = c.B
			g.Pix[i+1] = c.G
			g.Pix[i+2] = c.R
			i += 3
		}
	}

	return g
}

// FromImageUnchanged keeps the native channel layout of the decoded image:
// gray stays single channel, images with an alpha channel keep it.
func FromImageUnchanged(img image.Image) PixelGrid {
	b := img.Bounds()

	switch src := img.(type) {
	case *image.Gray:
		g := NewPixelGrid(b.Dy(), b.Dx(), 1, OrderGray)
		for y := 0; y < b.Dy(); y++ {
			copy(g.Pix[y*b.Dx():], src.Pix[y*src.Stride:y*src.Stride+b.Dx()])
		}
		return g

	case *image.Gray16:
		g := NewPixelGrid(b.Dy(), b.Dx(), 1, OrderGray)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				g.Pix[(y-b.Min.Y)*b.Dx()+(x-b.Min.X)] = uint8(src.Gray16At(x, y).Y >> 8)
			}
		}
		return g

	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.Paletted:
		if !hasAlpha(img) {
			return FromImage(img)
		}
		g := NewPixelGrid(b.Dy(), b.Dx(), 4, OrderBGRA)
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				g.Pix[i+0], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3] = c.B, c.G, c.R, c.A
				i += 4
			}
		}
		return g
	}

	// JPEG (YCbCr, CMYK) and anything else decode to color
	return FromImage(img)
}

// hasAlpha reports whether any pixel is not fully opaque. The PNG decoder
// hands back NRGBA for palette+tRNS and RGBA images alike, so this is the
// only way to tell.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// Luma converts an image to a single-channel intensity grid with values
// in [0,255], using the fixed-point BT.601 weights that OpenCV uses for
// IMREAD_GRAYSCALE / COLOR_BGR2GRAY (R 4899, G 9617, B 1868, 14-bit shift).
func Luma(img image.Image) emath.FloatGrid {
	b := img.Bounds()
	fg := emath.NewFloatGrid(b.Dx(), b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			fg.Set(x-b.Min.X, y-b.Min.Y, float64(LumaOf(c.R, c.G, c.B)))
		}
	}

	return fg
}

func LumaOf(r, g, b uint8) uint8 {
	const shift = 14
	y := (4899*uint32(r) + 9617*uint32(g) + 1868*uint32(b) + (1 << (shift - 1))) >> shift
	return uint8(y)
}
