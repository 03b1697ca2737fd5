package conversion

import (
	"fmt"

	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Luma returns trunc(0.299R + 0.587G + 0.114B) of every pixel of a BGR Mat,
// row-major. The sum is taken in float64, left to right, so some grays land
// one below their input (1 -> 0, 8 -> 7).
func Luma(src *safe.Mat) ([]uint8, error) {
	return mapPixels(src, "Luma", func(b, g, r int) uint8 {
		// explicit conversions keep each product rounded, never fused
		sum := float64(0.299*float64(r)) + float64(0.587*float64(g))
		sum = float64(sum + float64(0.114*float64(b)))
		return uint8(sum)
	})
}

// MeanIntensity returns (R+G+B)/3 of every pixel of a BGR Mat, row-major.
func MeanIntensity(src *safe.Mat) ([]uint8, error) {
	return mapPixels(src, "MeanIntensity", func(b, g, r int) uint8 {
		return uint8((r + g + b) / 3)
	})
}

func mapPixels(src *safe.Mat, operation string, fn func(b, g, r int) uint8) ([]uint8, error) {
	if err := safe.ValidateBGR(src, operation); err != nil {
		return nil, err
	}

	data, err := src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read pixels: %w", err)
	}

	levels := make([]uint8, len(data)/3)
	for i := range levels {
		p := data[i*3 : i*3+3]
		levels[i] = fn(int(p[0]), int(p[1]), int(p[2]))
	}

	return levels, nil
}

func CvtColorSafe(src *safe.Mat, dst *safe.Mat, code gocv.ColorConversionCode) error {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return fmt.Errorf("color conversion validation failed: %w", err)
	}

	if err := safe.ValidateMatForOperation(dst, "CvtColor destination"); err != nil {
		return fmt.Errorf("destination mat validation failed: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	gocv.CvtColor(srcMat, &dstMat, code)

	return nil
}

// GrayToBGR expands a row-major intensity plane into a BGR Mat with R=G=B.
func GrayToBGR(levels []uint8, rows, cols int) (*safe.Mat, error) {
	gray, err := safe.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC1, levels)
	if err != nil {
		return nil, fmt.Errorf("failed to create intensity Mat: %w", err)
	}
	defer gray.Close()

	dst, err := safe.NewMat(rows, cols, gocv.MatTypeCV8UC3)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	if err := CvtColorSafe(gray, dst, gocv.ColorGrayToBGR); err != nil {
		dst.Close()
		return nil, fmt.Errorf("Gray to BGR conversion failed: %w", err)
	}

	return dst, nil
}
