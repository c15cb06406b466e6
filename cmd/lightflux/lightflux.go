package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abworrall/lightflux/pkg/colormap"
	"github.com/abworrall/lightflux/pkg/edges"
	"github.com/abworrall/lightflux/pkg/lightflux"
)

var (
	fImage1     string
	fImage2     string
	fOutDir     string
	fImageDir   string
	fConfig     string
	fEdges      string
	fAnnotate   bool
	fHDR        bool
	fWorkers    int
	fSequential bool
	fVerbosity  int
)

func init() {
	flag.StringVar(&fImage1, "image1", "", "path to the first image")
	flag.StringVar(&fImage2, "image2", "", "path to the second image")
	flag.StringVar(&fOutDir, "outdir", "final_dir", "output directory for processed images")
	flag.StringVar(&fImageDir, "imagedir", "", "directory containing multiple images to process")

	flag.StringVar(&fConfig, "config", "", "YAML config file; flags given explicitly override it")
	flag.StringVar(&fEdges, "edges", "none", "edge detection: "+edges.ListMethods())
	flag.BoolVar(&fAnnotate, "annotate", false, "caption the wavelength, power and edge images")
	flag.BoolVar(&fHDR, "hdr", false, "also write wavelength and frequency grids as .hdr files")
	flag.IntVar(&fWorkers, "workers", 0, "max goroutines for pixel maps and batches (0 = all CPUs)")
	flag.BoolVar(&fSequential, "sequential", false, "process the two images of a comparison one at a time")
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
}

func main() {
	flag.Parse()
	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime)

	cfg := lightflux.NewConfig()
	if fConfig != "" {
		var err error
		if cfg, err = lightflux.LoadConfig(fConfig); err != nil {
			log.Fatal(err)
		}
	}

	// Only flags that were actually given override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "edges":
			cfg.EdgeMethod = fEdges
		case "annotate":
			cfg.Annotate = fAnnotate
		case "hdr":
			cfg.WriteHDR = fHDR
		case "workers":
			cfg.Workers = fWorkers
		case "sequential":
			cfg.Sequential = fSequential
		case "v":
			cfg.Verbosity = fVerbosity
		}
	})

	a, err := lightflux.NewAnalyzer(cfg, logger)
	if err != nil {
		log.Fatalf("%v (colormaps: %s)", err, colormap.ListColormaps())
	}

	if a.Verbosity > 0 {
		logger.Printf("Final configuration:-\n\n%s\n", a.Config.AsYaml())
	}

	if err := os.MkdirAll(fOutDir, 0755); err != nil {
		log.Fatal(err)
	}

	switch {
	case fImageDir != "":
		br, err := a.ProcessDir(fImageDir, fOutDir)
		if err != nil {
			log.Fatal(err)
		}
		logger.Printf("%s", br)

	case fImage1 != "" && fImage2 != "":
		c, err := a.Compare(fImage1, fImage2, fOutDir, lightflux.MeasureFlux|lightflux.MeasurePower)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Flux Similarity Score: %v\n", c.FluxScore)
		fmt.Printf("Power Similarity Score: %v\n", c.PowerScore)

	default:
		fmt.Println("Either -imagedir or both -image1 and -image2 must be specified.")
		flag.Usage()
		os.Exit(2)
	}
}
