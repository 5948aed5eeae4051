package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitDimensions(t *testing.T) {
	w, h := FitDimensions(uint32(2048), uint32(1024), 1024)
	assert.Equal(t, uint32(1024), w)
	assert.Equal(t, uint32(512), h)

	w, h = FitDimensions(uint32(100), uint32(4096), 1024)
	assert.Equal(t, uint32(25), w)
	assert.Equal(t, uint32(1024), h)

	w, h = FitDimensions(uint32(1), uint32(4096), 1024)
	assert.Equal(t, uint32(1), w)
	assert.Equal(t, uint32(1024), h)

	w, h = FitDimensions(uint32(64), uint32(32), 1024)
	assert.Equal(t, uint32(64), w)
	assert.Equal(t, uint32(32), h)
}
