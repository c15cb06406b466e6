package lightflux

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/lightflux/pkg/emath"
)

// GridImage presents a float grid as a gray HDR image, one value per
// pixel, unscaled. Implements image.Image and hdr.Image.
type GridImage struct {
	emath.FloatGrid
}

func (gi GridImage) ColorModel() color.Model { return hdrcolor.RGBModel }
func (gi GridImage) Bounds() image.Rectangle { return image.Rect(0, 0, gi.Dx(), gi.Dy()) }
func (gi GridImage) At(x, y int) color.Color { return gi.HDRAt(x, y) }
func (gi GridImage) Size() int               { return gi.Len() }

func (gi GridImage) HDRAt(x, y int) hdrcolor.Color {
	v := gi.Get(x, y)
	return hdrcolor.RGB{R: v, G: v, B: v}
}

// WriteHDR writes the grid as a Radiance RGBE file, which keeps the float
// values that the colormapped artifacts throw away.
func WriteHDR(fg emath.FloatGrid, p ArtifactPath) error {
	writer, err := os.Create(p.String())
	if err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %w", p, err)
	}
	defer writer.Close()

	if err := rgbe.Encode(writer, GridImage{fg}); err != nil {
		return fmt.Errorf("WriteHDR, encoding RGBE file %s: %w", p, err)
	}
	return writer.Close()
}
