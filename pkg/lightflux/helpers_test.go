package lightflux

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

func newTestAnalyzer(t *testing.T, tweak func(*Config)) (*Analyzer, *recordingLogger) {
	t.Helper()
	cfg := NewConfig()
	cfg.Verbosity = 1
	if tweak != nil {
		tweak(&cfg)
	}
	logger := &recordingLogger{}
	a, err := NewAnalyzer(cfg, logger)
	require.NoError(t, err)
	return a, logger
}

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// gradientImage has a different color at nearly every pixel.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: uint8((x + y) * 7), A: 255})
		}
	}
	return img
}

func writeTestImage(t *testing.T, filename string, img image.Image) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))

	f, err := os.Create(filename)
	require.NoError(t, err)
	defer f.Close()

	switch filepath.Ext(filename) {
	case ".jpg", ".jpeg":
		require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
	default:
		require.NoError(t, png.Encode(f, img))
	}
	return filename
}
