package pipeline

import (
	"fmt"

	"image-enhancer/internal/algorithms"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/opencv/bridge"
	"image-enhancer/internal/opencv/safe"
)

type imageProcessor struct {
	logger logger.Logger
}

func (p *imageProcessor) ProcessImage(inputData *ImageData, algorithm algorithms.Algorithm) (*ImageData, error) {
	if inputData == nil {
		return nil, fmt.Errorf("no input image")
	}
	if err := safe.ValidateMatForOperation(inputData.Mat, "ProcessImage"); err != nil {
		return nil, err
	}

	resultMat, err := algorithm.Process(inputData.Mat)
	if err != nil {
		return nil, fmt.Errorf("algorithm processing failed: %w", err)
	}

	if resultMat == nil {
		return nil, fmt.Errorf("algorithm returned nil result")
	}

	if resultMat.Rows() != inputData.Height || resultMat.Cols() != inputData.Width {
		size := fmt.Sprintf("%dx%d", resultMat.Cols(), resultMat.Rows())
		resultMat.Close()
		return nil, fmt.Errorf("algorithm %s changed dimensions from %dx%d to %s",
			algorithm.GetName(), inputData.Width, inputData.Height, size)
	}

	resultImage, err := bridge.MatToImage(resultMat)
	if err != nil {
		resultMat.Close()
		return nil, fmt.Errorf("Mat to image conversion failed: %w", err)
	}

	processedData := &ImageData{
		Image:      resultImage,
		Mat:        resultMat,
		Width:      inputData.Width,
		Height:     inputData.Height,
		Channels:   resultMat.Channels(),
		Format:     "png",
		SourcePath: inputData.SourcePath,
		Algorithm:  algorithm.GetName(),
	}

	p.logger.Info("ImageProcessor", "processing completed", map[string]interface{}{
		"algorithm": algorithm.GetName(),
		"size":      fmt.Sprintf("%dx%d", processedData.Width, processedData.Height),
	})

	return processedData, nil
}
