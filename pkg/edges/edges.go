// Package edges runs OpenCV edge detectors over decoded images.
package edges

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"

	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/raster"
)

type Method int

const (
	None Method = iota
	Canny
	Sobel
)

const (
	CannyLow   = 100
	CannyHigh  = 200
	SobelKSize = 5
)

var methodNames = []string{"none", "canny", "sobel"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

func ListMethods() string { return strings.Join(methodNames, ",") }

// ParseMethod is case-insensitive; the empty string means None.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return None, nil
	}
	for i, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(i), nil
		}
	}
	return None, fmt.Errorf("edge detection method %q not known (want one of %s)", s, ListMethods())
}

// Detect converts the image to grayscale and runs the edge detector over
// it. Canny gives 0 or 255 per pixel; Sobel gives the gradient magnitude
// of the x and y derivatives. None returns an empty grid.
func Detect(g raster.PixelGrid, m Method) (emath.FloatGrid, error) {
	if m == None {
		return emath.FloatGrid{}, nil
	}
	if m != Canny && m != Sobel {
		return emath.FloatGrid{}, fmt.Errorf("edge detection method %s not supported", m)
	}

	gray, err := toGrayMat(g)
	if err != nil {
		return emath.FloatGrid{}, err
	}
	defer gray.Close()

	if m == Canny {
		return canny(gray), nil
	}
	return sobel(gray), nil
}

func canny(gray gocv.Mat) emath.FloatGrid {
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, CannyLow, CannyHigh)

	fg := emath.NewFloatGrid(edges.Cols(), edges.Rows())
	for y := 0; y < edges.Rows(); y++ {
		for x := 0; x < edges.Cols(); x++ {
			fg.Set(x, y, float64(edges.GetUCharAt(y, x)))
		}
	}
	return fg
}

func sobel(gray gocv.Mat) emath.FloatGrid {
	dx := gocv.NewMat()
	defer dx.Close()
	dy := gocv.NewMat()
	defer dy.Close()
	mag := gocv.NewMat()
	defer mag.Close()

	gocv.Sobel(gray, &dx, gocv.MatTypeCV64F, 1, 0, SobelKSize, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &dy, gocv.MatTypeCV64F, 0, 1, SobelKSize, 1, 0, gocv.BorderDefault)
	gocv.Magnitude(dx, dy, &mag)

	fg := emath.NewFloatGrid(mag.Cols(), mag.Rows())
	for y := 0; y < mag.Rows(); y++ {
		for x := 0; x < mag.Cols(); x++ {
			fg.Set(x, y, mag.GetDoubleAt(y, x))
		}
	}
	return fg
}

func toGrayMat(g raster.PixelGrid) (gocv.Mat, error) {
	var code gocv.ColorConversionCode
	var matType gocv.MatType

	switch {
	case g.Channels <= 1:
		mat, err := gocv.NewMatFromBytes(g.Rows, g.Cols, gocv.MatTypeCV8UC1, g.Pix)
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("gray mat: %w", err)
		}
		return mat, nil
	case g.Channels == 3 && g.Order == raster.OrderBGR:
		code, matType = gocv.ColorBGRToGray, gocv.MatTypeCV8UC3
	case g.Channels == 3 && g.Order == raster.OrderRGB:
		code, matType = gocv.ColorRGBToGray, gocv.MatTypeCV8UC3
	case g.Channels == 4 && g.Order == raster.OrderBGRA:
		code, matType = gocv.ColorBGRAToGray, gocv.MatTypeCV8UC4
	case g.Channels == 4 && g.Order == raster.OrderRGBA:
		code, matType = gocv.ColorRGBAToGray, gocv.MatTypeCV8UC4
	default:
		return gocv.Mat{}, fmt.Errorf("edge detection of %s: %w", g, raster.ErrNotColor)
	}

	src, err := gocv.NewMatFromBytes(g.Rows, g.Cols, matType, g.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%s mat: %w", g.Order, err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, code)
	return gray, nil
}
