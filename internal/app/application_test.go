package app

import (
	"testing"

	"image-enhancer/internal/gui/widgets"

	"github.com/stretchr/testify/assert"
)

func TestWindowFitsBothImagePanes(t *testing.T) {
	size := calculateMinimumWindowSize()

	assert.GreaterOrEqual(t, size.Width, float32(2*widgets.ImageAreaWidth))
	assert.Greater(t, size.Height, float32(widgets.ImageAreaHeight))
}
