package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"image-enhancer/internal/logger"
	"image-enhancer/internal/opencv/bridge"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the file extensions the loader can decode.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

type imageLoader struct {
	logger logger.Logger
}

func (l *imageLoader) LoadFromPath(path string) (*ImageData, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	imageData, err := l.LoadFromBytes(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}

	imageData.SourcePath = path
	return imageData, nil
}

func (l *imageLoader) LoadFromBytes(data []byte, extension string) (*ImageData, error) {
	img, decodedFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	mat, err := bridge.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %w", err)
	}

	actualFormat := l.determineActualFormat(extension, decodedFormat)
	bounds := img.Bounds()

	imageData := &ImageData{
		Image:    img,
		Mat:      mat,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: mat.Channels(),
		Format:   actualFormat,
	}

	l.logger.Info("ImageLoader", "image decoded", map[string]interface{}{
		"width":  imageData.Width,
		"height": imageData.Height,
		"format": actualFormat,
	})

	return imageData, nil
}

// determineActualFormat trusts the decoder over the extension; the extension
// only disambiguates when the decoder reports nothing.
func (l *imageLoader) determineActualFormat(extension, decodedFormat string) string {
	if decodedFormat != "" {
		return decodedFormat
	}

	switch extension {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png", ".bmp", ".gif", ".webp":
		return strings.TrimPrefix(extension, ".")
	default:
		return "unknown"
	}
}
