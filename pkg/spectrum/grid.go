package spectrum

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/abworrall/lightflux/pkg/emath"
	"github.com/abworrall/lightflux/pkg/raster"
)

// A Mapper runs the per-pixel maps over whole grids. Pixels are
// independent, so rows are split into contiguous ranges and mapped in
// parallel.
type Mapper struct {
	Workers int // how many goroutines to fan out to; <=0 means GOMAXPROCS
}

// Wavelengths maps every pixel to its wavelength in nanometres, using
// GOMAXPROCS goroutines.
func Wavelengths(img raster.RGBGrid) emath.FloatGrid { return Mapper{}.Wavelengths(img) }

// Frequencies maps a grid of wavelengths in metres to frequencies in Hz,
// using GOMAXPROCS goroutines.
func Frequencies(metres emath.FloatGrid) emath.FloatGrid { return Mapper{}.Frequencies(metres) }

func (m Mapper) Wavelengths(img raster.RGBGrid) emath.FloatGrid {
	out := emath.NewFloatGrid(img.Cols, img.Rows)

	ParallelRows(img.Rows, m.Workers, func(start, end int) {
		for y := start; y < end; y++ {
			dst := out.Row(y)
			for x, px := range img.Row(y) {
				dst[x] = RGBToWavelength(px.R, px.G, px.B)
			}
		}
	})

	return out
}

func (m Mapper) Frequencies(metres emath.FloatGrid) emath.FloatGrid {
	out := metres.NewFromThis()

	ParallelRows(metres.Dy(), m.Workers, func(start, end int) {
		for y := start; y < end; y++ {
			dst := out.Row(y)
			for x, wl := range metres.Row(y) {
				dst[x] = WavelengthToFrequency(wl)
			}
		}
	})

	return out
}

// ParallelRows calls fn over contiguous [start,end) ranges that together
// cover [0,n), on up to `workers` goroutines, and returns once every range
// is done. With one worker, fn runs on the calling goroutine.
func ParallelRows(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		start := start
		end := min(start+chunkSize, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	g.Wait()
}
