package fuzzy

import (
	"fmt"

	"image-enhancer/internal/config"
	"image-enhancer/internal/histogram"
	"image-enhancer/internal/opencv/conversion"
	"image-enhancer/internal/opencv/safe"
)

const Name = "Fuzzy Enhancement"

// Processor scales each pixel's mean intensity by its fuzzy blend factor.
type Processor struct {
	name  string
	model *Model
}

func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{
		name:  Name,
		model: NewModel(cfg.Enhancement.Membership, cfg.Enhancement.Weights),
	}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) Process(input *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateBGR(input, "Fuzzy Enhancement"); err != nil {
		return nil, err
	}

	levels, err := conversion.MeanIntensity(input)
	if err != nil {
		return nil, fmt.Errorf("failed to compute intensity: %w", err)
	}

	// Output depends only on the input level, so evaluate each level once.
	var table histogram.LookupTable
	for i := range table {
		table[i] = p.model.Enhance(i)
	}

	result, err := conversion.GrayToBGR(table.Apply(levels), input.Rows(), input.Cols())
	if err != nil {
		return nil, fmt.Errorf("failed to build enhanced image: %w", err)
	}

	return result, nil
}
