package lightflux

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactPath(t *testing.T) {
	p := NewArtifactPath("out", KindFrequency, "/photos/2023/sky.jpg")
	assert.Equal(t, "frequency_sky.jpg", p.Name())
	assert.Equal(t, filepath.Join("out", "frequency_sky.jpg"), p.String())
	assert.True(t, p.IsJPEG())

	power := NewArtifactPath("out", KindPower, "sky.jpg").WithExt(".png")
	assert.Equal(t, "power_sky.jpg.png", power.Name())
	assert.False(t, power.IsJPEG())

	assert.Equal(t, "wavelength_a.png.hdr", NewArtifactPath("", KindWavelength, "a.png").WithExt(".hdr").Name())
	assert.Equal(t, "rgb_a.jpeg", NewArtifactPath("", KindRGB, "a.jpeg").Name())
	assert.True(t, NewArtifactPath("", KindRGB, "a.jpeg").IsJPEG())
}
