// Package metrics compares a source bitmap with its enhanced version.
package metrics

import (
	"fmt"
	"math"

	"image-enhancer/internal/histogram"
	"image-enhancer/internal/opencv/conversion"
	"image-enhancer/internal/opencv/safe"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report summarises the effect of an enhancement on the luma plane.
type Report struct {
	MeanBefore   float64
	MeanAfter    float64
	StdDevBefore float64
	StdDevAfter  float64
	// PSNR in dB; +Inf when the planes are identical.
	PSNR float64
	// CDFDeviation* is the RMS distance between the normalized cumulative
	// histogram and a linear ramp. Lower means a flatter histogram.
	CDFDeviationBefore float64
	CDFDeviationAfter  float64
}

func Compare(original, enhanced *safe.Mat) (*Report, error) {
	if err := safe.ValidateBGR(original, "Compare original"); err != nil {
		return nil, err
	}
	if err := safe.ValidateBGR(enhanced, "Compare enhanced"); err != nil {
		return nil, err
	}
	if original.Rows() != enhanced.Rows() || original.Cols() != enhanced.Cols() {
		return nil, fmt.Errorf("dimension mismatch: %dx%d vs %dx%d",
			original.Cols(), original.Rows(), enhanced.Cols(), enhanced.Rows())
	}

	before, err := conversion.Luma(original)
	if err != nil {
		return nil, fmt.Errorf("original luma: %w", err)
	}
	after, err := conversion.Luma(enhanced)
	if err != nil {
		return nil, fmt.Errorf("enhanced luma: %w", err)
	}

	x := toFloats(before)
	y := toFloats(after)

	meanBefore, stdBefore := stat.PopMeanStdDev(x, nil)
	meanAfter, stdAfter := stat.PopMeanStdDev(y, nil)

	return &Report{
		MeanBefore:         meanBefore,
		MeanAfter:          meanAfter,
		StdDevBefore:       stdBefore,
		StdDevAfter:        stdAfter,
		PSNR:               PSNR(x, y),
		CDFDeviationBefore: CDFDeviation(histogram.Compute(before)),
		CDFDeviationAfter:  CDFDeviation(histogram.Compute(after)),
	}, nil
}

// PSNR of two equally sized 8-bit planes.
func PSNR(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}

	dist := floats.Distance(x, y, 2)
	mse := dist * dist / float64(len(x))
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

// CDFDeviation measures how far h's cumulative distribution is from the
// linear ramp (i+1)/256 of a perfectly flat histogram.
func CDFDeviation(h histogram.Histogram) float64 {
	cdf := h.Cumulative().Normalized()

	ramp := make([]float64, histogram.Bins)
	for i := range ramp {
		ramp[i] = float64(i+1) / histogram.Bins
	}

	dist := floats.Distance(cdf, ramp, 2)
	return dist / math.Sqrt(histogram.Bins)
}

func toFloats(levels []uint8) []float64 {
	out := make([]float64, len(levels))
	for i, v := range levels {
		out[i] = float64(v)
	}
	return out
}
