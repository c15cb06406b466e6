package lightflux

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/lightflux/pkg/colormap"
	"github.com/abworrall/lightflux/pkg/edges"
)

const (
	ReadColor     = "color"     // decode to 3 channels; alpha dropped, gray replicated
	ReadUnchanged = "unchanged" // keep the file's own channel layout
)

type Config struct {
	Verbosity int

	ReadMode string

	WavelengthColormap string
	FrequencyColormap  string
	PowerColormap      string

	EdgeMethod string // "", "none", "canny" or "sobel"
	Annotate   bool   // draw captions onto the wavelength, power and edge artifacts
	WriteHDR   bool   // also write the wavelength and frequency grids as .hdr files

	Workers    int  // goroutine limit for pixel maps and batches; 0 means GOMAXPROCS
	Sequential bool // never run the two images of a comparison concurrently
}

func NewConfig() Config {
	return Config{
		ReadMode:           ReadColor,
		WavelengthColormap: "nipy_spectral",
		FrequencyColormap:  "jet",
		PowerColormap:      "hot",
		EdgeMethod:         "none",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

// LoadConfig reads a YAML config; keys it doesn't mention keep their
// defaults.
func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return Config{}, fmt.Errorf("config parse %s: %w", filename, err)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize checks every named option against its closed set, so that no
// unknown mode gets past configuration.
func (c *Config) Finalize() error {
	if c.ReadMode == "" {
		c.ReadMode = ReadColor
	}
	if c.ReadMode != ReadColor && c.ReadMode != ReadUnchanged {
		return fmt.Errorf("readmode %q not known (want %s or %s)", c.ReadMode, ReadColor, ReadUnchanged)
	}

	for _, name := range []string{c.WavelengthColormap, c.FrequencyColormap, c.PowerColormap} {
		if _, err := colormap.Lookup(name); err != nil {
			return err
		}
	}

	if _, err := edges.ParseMethod(c.EdgeMethod); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	return nil
}
