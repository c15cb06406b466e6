package lightflux

import (
	"errors"
	"strings"

	"github.com/abworrall/lightflux/pkg/raster"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidDimensions   = errors.New("image must have exactly three color channels")
	ErrDecode              = errors.New("image could not be decoded")
)

// ValidExtensions are matched case-sensitively, so "photo.JPG" is rejected.
var ValidExtensions = []string{".jpg", ".jpeg", ".png"}

// A Validator checks inputs before they get anywhere near the pipeline.
// Both checks are pure predicates that log why they said no.
type Validator struct {
	Log Logger
}

func (v Validator) logf(format string, args ...interface{}) {
	if v.Log != nil {
		v.Log.Printf(format, args...)
	}
}

// ValidateImageDimensions is true iff the grid has exactly three channels.
func (v Validator) ValidateImageDimensions(g raster.PixelGrid) bool {
	if g.Channels != 3 {
		v.logf("Invalid image dimensions: %s, want 3 channels", g)
		return false
	}
	return true
}

// ValidateFileType is true iff the path ends in one of ValidExtensions.
func (v Validator) ValidateFileType(path string) bool {
	for _, ext := range ValidExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	v.logf("Invalid file type: %s (want one of %v)", path, ValidExtensions)
	return false
}
