package equalization

import (
	"fmt"

	"image-enhancer/internal/histogram"
	"image-enhancer/internal/opencv/conversion"
	"image-enhancer/internal/opencv/safe"
)

const Name = "Histogram Equalization"

// Processor remaps luma through the image's own cumulative distribution and
// writes the result to all three channels.
type Processor struct {
	name string
}

func NewProcessor() *Processor {
	return &Processor{
		name: Name,
	}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) Process(input *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateBGR(input, "Histogram Equalization"); err != nil {
		return nil, err
	}

	luma, err := conversion.Luma(input)
	if err != nil {
		return nil, fmt.Errorf("failed to compute luma: %w", err)
	}

	lut := histogram.Compute(luma).Cumulative().LookupTable()

	result, err := conversion.GrayToBGR(lut.Apply(luma), input.Rows(), input.Cols())
	if err != nil {
		return nil, fmt.Errorf("failed to build equalized image: %w", err)
	}

	return result, nil
}
