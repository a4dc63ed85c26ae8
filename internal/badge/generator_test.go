package badge_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-checkin/internal/badge"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestBarcodePNG(t *testing.T) {
	gen := badge.NewGenerator()

	png, err := gen.BarcodePNG("RP1001")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestBarcodePNGTrimsInput(t *testing.T) {
	gen := badge.NewGenerator()

	trimmed, err := gen.BarcodePNG("RP1001")
	require.NoError(t, err)
	padded, err := gen.BarcodePNG("  RP1001  ")
	require.NoError(t, err)
	assert.Equal(t, trimmed, padded)
}

func TestBarcodePNGEmpty(t *testing.T) {
	gen := badge.NewGenerator()

	_, err := gen.BarcodePNG("   ")
	assert.Error(t, err)
}
