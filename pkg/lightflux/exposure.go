package lightflux

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// An ExposureValue details how the photo was exposed, and so roughly how
// much light was falling on the scene.
type ExposureValue struct {
	ISO          int64
	FNumber      float64 // f/5.6 is 5.6
	ExposureTime float64 // seconds
	EV           int     // ISO 100 exposure value, to the nearest stop

	// How many lux it takes to fully expose a pixel at these settings.
	IlluminanceAtMaxExposure float64
}

func (ev ExposureValue) String() string {
	s := fmt.Sprintf("f/%.1f", ev.FNumber)
	if ev.ExposureTime < 1 {
		s += fmt.Sprintf(", 1/%.0f", 1/ev.ExposureTime)
	} else {
		s += fmt.Sprintf(", %.0f", ev.ExposureTime)
	}
	s += fmt.Sprintf(", ISO%d", ev.ISO)
	return s + fmt.Sprintf(", EV %2d (%6.0f lux)", ev.EV, ev.IlluminanceAtMaxExposure)
}

// Validate checks the settings and fills in EV and the illuminance:
// EV = log2(N^2/t) - log2(ISO/100), and 2.5 * 2^EV lux.
// https://en.wikipedia.org/wiki/Exposure_value#EV_as_a_measure_of_luminance_and_illuminance
func (ev *ExposureValue) Validate() error {
	if ev.ISO <= 0 || ev.FNumber <= 0 || ev.ExposureTime <= 0 {
		return fmt.Errorf("exposure settings look wrong: %v", ev)
	}

	ev.EV = int(math.Round(math.Log2(ev.FNumber*ev.FNumber/ev.ExposureTime) - math.Log2(float64(ev.ISO)/100)))
	ev.IlluminanceAtMaxExposure = 2.5 * math.Pow(2, float64(ev.EV))

	return nil
}

// LoadExposure reads ISO, f-number and shutter speed from the file's EXIF
// data. Files without EXIF (most PNGs) give nil and no error.
func LoadExposure(filename string) (*ExposureValue, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r exif '%s': %w", filename, err)
	}
	defer reader.Close()

	return decodeExposure(reader)
}

func decodeExposure(r io.Reader) (*ExposureValue, error) {
	ex, err := exif.Decode(r)
	if err != nil {
		return nil, nil
	}

	ev := ExposureValue{}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return nil, nil
	} else if val, err := tag.Int64(0); err != nil {
		return nil, fmt.Errorf("exif ISO: %w", err)
	} else {
		ev.ISO = val
	}

	if tag, err := ex.Get(exif.FNumber); err != nil {
		return nil, nil
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return nil, fmt.Errorf("exif FNumber: %w", err)
	} else if denom == 0 {
		return nil, errors.New("exif FNumber has zero denominator")
	} else {
		ev.FNumber = float64(num) / float64(denom)
	}

	if tag, err := ex.Get(exif.ExposureTime); err != nil {
		return nil, nil
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return nil, fmt.Errorf("exif ExposureTime: %w", err)
	} else if denom == 0 {
		return nil, errors.New("exif ExposureTime has zero denominator")
	} else {
		ev.ExposureTime = float64(num) / float64(denom)
	}

	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}
