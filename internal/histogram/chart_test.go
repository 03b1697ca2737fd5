package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDimensionsAndBars(t *testing.T) {
	var h Histogram
	h[0] = 10
	h[100] = 5

	chart, err := Render(h)
	require.NoError(t, err)
	defer chart.Close()

	assert.Equal(t, ChartWidth, chart.Cols())
	assert.Equal(t, ChartHeight, chart.Rows())
	assert.Equal(t, 3, chart.Channels())

	data, err := chart.Bytes()
	require.NoError(t, err)
	pixel := func(x, y int) uint8 {
		return data[(y*ChartWidth+x)*3]
	}

	// Tallest bin fills rows 49..399 in columns 0 and 1.
	for _, x := range []int{0, 1} {
		assert.EqualValues(t, 0, pixel(x, 399))
		assert.EqualValues(t, 0, pixel(x, 49))
		assert.EqualValues(t, 255, pixel(x, 48))
	}

	// Half-height bin at columns 200 and 201 reaches row 224.
	assert.EqualValues(t, 0, pixel(200, 224))
	assert.EqualValues(t, 0, pixel(201, 224))
	assert.EqualValues(t, 255, pixel(200, 223))

	// Empty bins only mark the baseline.
	assert.EqualValues(t, 0, pixel(50, 399))
	assert.EqualValues(t, 255, pixel(50, 398))

	// Nothing is drawn above the tallest possible bar.
	assert.EqualValues(t, 255, pixel(300, 0))
}
