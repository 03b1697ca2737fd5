package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"image-enhancer/internal/logger"
)

type imageSaver struct {
	logger logger.Logger
}

// SaveToWriter encodes img as PNG. Output is always PNG regardless of the
// source format.
func (s *imageSaver) SaveToWriter(writer io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("no image data to save")
	}

	if err := png.Encode(writer, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	return nil
}

// SaveToPath writes img to path, creating parent directories and replacing any
// existing file. The file is closed on every path and removed if encoding or
// flushing fails, so a failed save leaves nothing behind.
func (s *imageSaver) SaveToPath(path string, img image.Image) (err error) {
	if img == nil {
		return fmt.Errorf("no image data to save")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
		if err != nil {
			if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				s.logger.Warning("ImageSaver", "failed to remove partial output", map[string]interface{}{
					"path":  path,
					"error": removeErr.Error(),
				})
			}
		}
	}()

	buffered := bufio.NewWriter(file)
	if err := s.SaveToWriter(buffered, img); err != nil {
		return err
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": "png",
	})

	return nil
}
