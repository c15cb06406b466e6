package lightflux

import (
	"bytes"
	"encoding/binary"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExposureValue(t *testing.T) {
	tests := []struct {
		iso        int64
		fnum       float64
		secs       float64
		ev         int
		illumAtMax float64
	}{
		{100, 5.6, 1.0 / 4000, 17, 327680},
		{800, 5.6, 1.0 / 2000, 13, 20480},
		{400, 8, 1.0 / 125, 11, 5120},
		{100, 1, 1, 0, 2.5},
	}

	for _, tc := range tests {
		ev := ExposureValue{ISO: tc.iso, FNumber: tc.fnum, ExposureTime: tc.secs}
		require.NoError(t, ev.Validate())
		assert.Equal(t, tc.ev, ev.EV, "%s", ev)
		assert.Equal(t, tc.illumAtMax, ev.IlluminanceAtMaxExposure, "%s", ev)
	}

	ev := ExposureValue{ISO: 100, FNumber: 5.6, ExposureTime: 1.0 / 4000}
	require.NoError(t, ev.Validate())
	assert.Equal(t, "f/5.6, 1/4000, ISO100, EV 17 (327680 lux)", ev.String())

	assert.Error(t, (&ExposureValue{FNumber: 2, ExposureTime: 1}).Validate())
	assert.Error(t, (&ExposureValue{ISO: 100, ExposureTime: 1}).Validate())
}

func TestLoadExposureWithoutExif(t *testing.T) {
	src := writeTestImage(t, filepath.Join(t.TempDir(), "plain.png"), primariesImage())

	ev, err := LoadExposure(src)
	assert.NoError(t, err)
	assert.Nil(t, ev)

	ev, err = decodeExposure(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Nil(t, ev)

	_, err = LoadExposure(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

// exifTIFF lays out a little-endian TIFF whose IFD0 points at an Exif IFD
// holding ExposureTime, FNumber and ISOSpeedRatings. Rationals are
// {numerator, denominator}.
func exifTIFF(iso uint16, fnumber, exposure [2]uint32) []byte {
	le := binary.LittleEndian
	b := []byte("II")
	b = le.AppendUint16(b, 42)
	b = le.AppendUint32(b, 8)

	entry := func(tag, typ uint16, count, value uint32) {
		b = le.AppendUint16(b, tag)
		b = le.AppendUint16(b, typ)
		b = le.AppendUint32(b, count)
		b = le.AppendUint32(b, value)
	}

	// IFD0 at 8, one entry.
	b = le.AppendUint16(b, 1)
	entry(0x8769, 4, 1, 26) // ExifIFDPointer, LONG
	b = le.AppendUint32(b, 0)

	// Exif IFD at 26, three entries; the rationals follow it at 68 and 76.
	b = le.AppendUint16(b, 3)
	entry(0x829a, 5, 1, 68)          // ExposureTime, RATIONAL
	entry(0x829d, 5, 1, 76)          // FNumber, RATIONAL
	entry(0x8827, 3, 1, uint32(iso)) // ISOSpeedRatings, SHORT
	b = le.AppendUint32(b, 0)

	for _, rat := range [][2]uint32{exposure, fnumber} {
		b = le.AppendUint32(b, rat[0])
		b = le.AppendUint32(b, rat[1])
	}
	return b
}

func TestDecodeExposure(t *testing.T) {
	ev, err := decodeExposure(bytes.NewReader(exifTIFF(100, [2]uint32{56, 10}, [2]uint32{1, 4000})))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, int64(100), ev.ISO)
	assert.Equal(t, 5.6, ev.FNumber)
	assert.Equal(t, 1.0/4000, ev.ExposureTime)
	assert.Equal(t, 17, ev.EV)
	assert.Equal(t, 327680.0, ev.IlluminanceAtMaxExposure)

	tests := []struct {
		name               string
		iso                uint16
		fnumber, exposure  [2]uint32
		wantErrorSubstring string
	}{
		{"zero FNumber denominator", 100, [2]uint32{56, 0}, [2]uint32{1, 4000}, "FNumber has zero denominator"},
		{"zero ExposureTime denominator", 100, [2]uint32{56, 10}, [2]uint32{1, 0}, "ExposureTime has zero denominator"},
		{"zero ISO", 0, [2]uint32{56, 10}, [2]uint32{1, 4000}, "exposure settings look wrong"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := decodeExposure(bytes.NewReader(exifTIFF(tc.iso, tc.fnumber, tc.exposure)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErrorSubstring)
			assert.Nil(t, ev)
		})
	}
}

// A JPEG carrying its EXIF in an APP1 segment, straight after the SOI.
func TestLoadExposureFromJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, primariesImage(), &jpeg.Options{Quality: 100}))
	plain := buf.Bytes()

	payload := append([]byte("Exif\x00\x00"), exifTIFF(800, [2]uint32{56, 10}, [2]uint32{1, 2000})...)
	app1 := []byte{0xff, 0xe1}
	app1 = binary.BigEndian.AppendUint16(app1, uint16(len(payload)+2))
	app1 = append(app1, payload...)

	contents := append(append(append([]byte{}, plain[:2]...), app1...), plain[2:]...)
	dir := t.TempDir()
	src := filepath.Join(dir, "exposed.jpg")
	require.NoError(t, os.WriteFile(src, contents, 0644))

	ev, err := LoadExposure(src)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "f/5.6, 1/2000, ISO800, EV 13 ( 20480 lux)", ev.String())

	a, _ := newTestAnalyzer(t, nil)
	si, err := a.ProcessSingleImage(src, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.NotNil(t, si.Exposure)
	assert.Equal(t, 13, si.Exposure.EV)
}
