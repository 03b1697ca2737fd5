package histogram

import (
	"fmt"
	"image"
	"image/color"

	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	ChartWidth  = 512
	ChartHeight = 400

	// maxBarHeight leaves headroom above the tallest bin.
	maxBarHeight = 350
	barWidth     = ChartWidth / Bins
)

var barColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// BarHeight is the drawn height of a bin, scaled against the tallest one.
func BarHeight(count, peak int) int {
	if peak <= 0 {
		return 0
	}
	return int(float64(count) / float64(peak) * maxBarHeight)
}

// Render draws h as a 512x400 BGR chart: white background, one black bar two
// pixels wide per bin, rising from the bottom row. A bar spans its baseline
// pixel even when the bin is empty.
func Render(h Histogram) (*safe.Mat, error) {
	chart, err := safe.NewMatFromScalar(gocv.NewScalar(255, 255, 255, 0), ChartHeight, ChartWidth, gocv.MatTypeCV8UC3)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate chart: %w", err)
	}

	canvas := chart.GetMat()
	baseline := ChartHeight - 1
	peak := h.Max()

	for i, count := range h {
		top := baseline - BarHeight(count, peak)
		for dx := 0; dx < barWidth; dx++ {
			x := i*barWidth + dx
			gocv.Line(&canvas, image.Pt(x, baseline), image.Pt(x, top), barColor, 1)
		}
	}

	return chart, nil
}
