package lightflux

import (
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/abworrall/lightflux/pkg/colormap"
	"github.com/abworrall/lightflux/pkg/emath"
)

var captionFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// render colormaps the grid at one pixel per cell. With Annotate set, and
// a caption given, the caption is drawn in the top left corner.
func (a *Analyzer) render(fg emath.FloatGrid, cm *colormap.Colormap, caption string) image.Image {
	img := cm.Render(fg)
	if !a.Annotate || caption == "" {
		return img
	}

	f, err := captionFont()
	if err != nil {
		a.Log.Printf("No caption font, skipping annotation: %v", err)
		return img
	}

	size := max(8.0, float64(img.Bounds().Dy())/32)
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
	dc.SetRGB(1, 1, 1)
	dc.DrawString(caption, size/2, size*1.5)

	return dc.Image()
}

// renderTo renders the grid and writes it out.
func (a *Analyzer) renderTo(p ArtifactPath, fg emath.FloatGrid, cm *colormap.Colormap, caption string) error {
	if err := WriteImage(a.render(fg, cm, caption), p); err != nil {
		return err
	}
	a.vlogf("Wrote %s (%s, %s)", p, cm.Name, fg.Stats())
	return nil
}

func rangeCaption(label, source string, fg emath.FloatGrid, units string) string {
	lo, hi := fg.MinMax()
	return fmt.Sprintf("%s %s: %.4g - %.4g %s", label, source, lo, hi, units)
}
