package lightflux

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// An ImageResult is the outcome for one file of a batch. Exactly one of
// Image and Err is set.
type ImageResult struct {
	Filename string
	Image    *SpectralImage
	Err      error
}

type BatchResult struct {
	Results   []ImageResult // in filename order
	Processed int
	Skipped   int // not an image file we handle
	Failed    int
}

func (br BatchResult) String() string {
	return fmt.Sprintf("batch: %d processed, %d skipped, %d failed", br.Processed, br.Skipped, br.Failed)
}

// ProcessDir runs every file under dir (recursively, but never inside
// outDir) through the pipeline. A file that fails is logged and recorded, and the batch
// carries on; the returned error is only for problems with dir or outDir
// themselves.
func (a *Analyzer) ProcessDir(dir, outDir string) (BatchResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return BatchResult{}, fmt.Errorf("batch dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return BatchResult{}, fmt.Errorf("batch outdir: %w", err)
	}

	// outDir may live under dir; its artifacts are not inputs.
	files, err := CollectFilesSkipping(outDir, dir)
	if err != nil {
		return BatchResult{}, err
	}

	workers := a.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Files in different subdirs can share a basename, and so share
	// artifact names; those run one after another, in filename order.
	groups := map[string][]int{}
	order := []string{}
	for i, filename := range files {
		base := filepath.Base(filename)
		if _, exists := groups[base]; !exists {
			order = append(order, base)
		}
		groups[base] = append(groups[base], i)
	}

	results := make([]ImageResult, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for _, base := range order {
		base := base
		g.Go(func() error {
			for _, i := range groups[base] {
				results[i].Filename = files[i]
				results[i].Image, results[i].Err = a.ProcessSingleImage(files[i], outDir)
			}
			return nil
		})
	}
	g.Wait()

	br := BatchResult{Results: results}
	for _, r := range results {
		switch {
		case r.Err == nil:
			br.Processed++
		case errors.Is(r.Err, ErrUnsupportedFileType):
			br.Skipped++
		default:
			br.Failed++
			a.Log.Printf("batch: %s: %v", r.Filename, r.Err)
		}
	}

	a.vlogf("%s", br)
	return br, nil
}
