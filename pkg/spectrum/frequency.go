package spectrum

const (
	SpeedOfLight       = 299792458.0 // m/s, exact
	NanometresToMetres = 1e-9
	HzToTHz            = 1e-12
)

// WavelengthToFrequency returns the frequency in Hz of light with the
// given wavelength in metres. No unit conversion happens here; a zero
// wavelength gives +Inf.
func WavelengthToFrequency(metres float64) float64 {
	return SpeedOfLight / metres
}
