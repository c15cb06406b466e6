// Package lightflux estimates light quantities (wavelength, frequency,
// flux, power) from the pixel colors of ordinary photos, writes them out
// as false-color artifacts, and compares pairs of images by them.
//
// The wavelength of a pixel is a remap of its hue onto the visible
// spectrum; it is a heuristic, not a calibrated measurement.
package lightflux

import (
	"fmt"

	"github.com/abworrall/lightflux/pkg/colormap"
	"github.com/abworrall/lightflux/pkg/edges"
	"github.com/abworrall/lightflux/pkg/spectrum"
)

// An Analyzer runs the per-image pipeline and the comparisons. It holds
// no per-image state, so one Analyzer can serve concurrent calls.
type Analyzer struct {
	Config
	Validator
	Log Logger

	mapper       spectrum.Mapper
	wavelengthCM *colormap.Colormap
	frequencyCM  *colormap.Colormap
	powerCM      *colormap.Colormap
	edgeCM       *colormap.Colormap
	edgeMethod   edges.Method
}

// NewAnalyzer validates the config and resolves every named option. A nil
// logger discards everything.
func NewAnalyzer(cfg Config, logger Logger) (*Analyzer, error) {
	if logger == nil {
		logger = discard{}
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &Analyzer{
		Config:    cfg,
		Validator: Validator{Log: logger},
		Log:       logger,
		mapper:    spectrum.Mapper{Workers: cfg.Workers},
	}

	var err error
	if a.wavelengthCM, err = colormap.Lookup(cfg.WavelengthColormap); err != nil {
		return nil, err
	}
	if a.frequencyCM, err = colormap.Lookup(cfg.FrequencyColormap); err != nil {
		return nil, err
	}
	if a.powerCM, err = colormap.Lookup(cfg.PowerColormap); err != nil {
		return nil, err
	}
	if a.edgeCM, err = colormap.Lookup("gray"); err != nil {
		return nil, err
	}
	if a.edgeMethod, err = edges.ParseMethod(cfg.EdgeMethod); err != nil {
		return nil, err
	}

	return a, nil
}

// vlogf logs only when running verbosely.
func (a *Analyzer) vlogf(format string, args ...interface{}) {
	if a.Verbosity > 0 {
		a.Log.Printf(format, args...)
	}
}
