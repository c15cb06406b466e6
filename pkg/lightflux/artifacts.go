package lightflux

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/raster"
)

type ArtifactKind string

const (
	KindRGB        ArtifactKind = "rgb"
	KindWavelength ArtifactKind = "wavelength"
	KindFrequency  ArtifactKind = "frequency"
	KindPower      ArtifactKind = "power"
	KindEdges      ArtifactKind = "edges"
)

const JPEGQuality = 95

// An ArtifactPath names a file written for a source image: the kind, an
// underscore, the source's basename, then an optional extra extension.
// frequency_sky.jpg, power_sky.jpg.png, wavelength_sky.jpg.hdr.
type ArtifactPath struct {
	Dir    string
	Kind   ArtifactKind
	Source string // basename of the source image
	Ext    string // appended after the basename, e.g. ".png"; usually empty
}

func NewArtifactPath(dir string, kind ArtifactKind, sourcePath string) ArtifactPath {
	return ArtifactPath{Dir: dir, Kind: kind, Source: filepath.Base(sourcePath)}
}

func (p ArtifactPath) Name() string   { return fmt.Sprintf("%s_%s%s", p.Kind, p.Source, p.Ext) }
func (p ArtifactPath) String() string { return filepath.Join(p.Dir, p.Name()) }

func (p ArtifactPath) WithExt(ext string) ArtifactPath {
	p.Ext = ext
	return p
}

// IsJPEG is decided by the final extension of the name.
func (p ArtifactPath) IsJPEG() bool {
	switch strings.ToLower(filepath.Ext(p.Name())) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// WriteImage writes the image in the format its name asks for: JPEG for
// .jpg/.jpeg, PNG for anything else.
func WriteImage(img image.Image, p ArtifactPath) error {
	if !p.IsJPEG() {
		if err := gg.SavePNG(p.String(), img); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
		return nil
	}

	writer, err := os.Create(p.String())
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", p, err)
	}
	defer writer.Close()

	if err := jpeg.Encode(writer, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return writer.Close()
}

// LoadIntensity reads a written artifact back as a single-channel
// grayscale grid, the way OpenCV's IMREAD_GRAYSCALE would. Whatever the
// colormap and the file format lost on the way out stays lost.
func LoadIntensity(p ArtifactPath) (emath.FloatGrid, error) {
	img, err := gg.LoadImage(p.String())
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("reload %s: %w", p, err)
	}
	return raster.Luma(img), nil
}
