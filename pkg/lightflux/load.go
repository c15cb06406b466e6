package lightflux

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"

	"github.com/abworrall/lightflux/pkg/raster"
)

// LoadImage validates and decodes one image file into a 3-channel BGR
// grid, and pulls its exposure from the EXIF data if there is any.
func (a *Analyzer) LoadImage(filename string) (raster.PixelGrid, *ExposureValue, error) {
	if !a.ValidateFileType(filename) {
		return raster.PixelGrid{}, nil, fmt.Errorf("load %s: %w", filename, ErrUnsupportedFileType)
	}

	img, err := gg.LoadImage(filename)
	if err != nil {
		a.Log.Printf("Failed to load image %s: %v", filename, err)
		return raster.PixelGrid{}, nil, fmt.Errorf("load %s: %v: %w", filename, err, ErrDecode)
	}

	var g raster.PixelGrid
	switch a.ReadMode {
	case ReadUnchanged:
		g = raster.FromImageUnchanged(img)
	default:
		g = raster.FromImage(img)
	}

	if !a.ValidateImageDimensions(g) {
		return raster.PixelGrid{}, nil, fmt.Errorf("load %s: %s: %w", filename, g, ErrInvalidDimensions)
	}

	ev, err := LoadExposure(filename)
	if err != nil {
		a.Log.Printf("Ignoring exposure info in %s: %v", filename, err)
		ev = nil
	}

	return g, ev, nil
}

// CollectFiles expands the args into a sorted list of regular files,
// recursing into any directories.
func CollectFiles(args ...string) ([]string, error) {
	return CollectFilesSkipping("", args...)
}

// CollectFilesSkipping is CollectFiles, except that the walk never enters
// skipDir (matched by os.SameFile, so any path spelling works). An empty or
// nonexistent skipDir skips nothing.
func CollectFilesSkipping(skipDir string, args ...string) ([]string, error) {
	var skip os.FileInfo
	if skipDir != "" {
		if info, err := os.Stat(skipDir); err == nil && info.IsDir() {
			skip = info
		}
	}

	files, err := collectFiles(skip, args...)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func collectFiles(skip os.FileInfo, args ...string) ([]string, error) {
	files := []string{}

	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {
		case err != nil:
			return nil, fmt.Errorf("collect %s: %w", arg, err)

		case item.IsDir():
			if skip != nil && os.SameFile(item, skip) {
				continue
			}
			contents, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %w", arg, err)
			}
			for _, content := range contents {
				sub, err := collectFiles(skip, filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, err
				}
				files = append(files, sub...)
			}

		case item.Mode().IsRegular():
			files = append(files, arg)
		}
	}

	return files, nil
}
