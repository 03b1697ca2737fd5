package pipeline

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"image-enhancer/internal/algorithms"
	"image-enhancer/internal/config"
	"image-enhancer/internal/histogram"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/metrics"
	"image-enhancer/internal/opencv/bridge"
	"image-enhancer/internal/opencv/conversion"
	"image-enhancer/internal/opencv/memory"
	"image-enhancer/internal/opencv/safe"
)

var (
	// ErrInputNotFound is returned before any decode when the input path does
	// not name an existing file.
	ErrInputNotFound = errors.New("image file not found")

	// ErrInvalidState is returned when an operation needs a result that has
	// not been produced yet, such as saving before enhancing.
	ErrInvalidState = errors.New("run enhancement first")
)

type ImageLoader interface {
	LoadFromPath(path string) (*ImageData, error)
	LoadFromBytes(data []byte, extension string) (*ImageData, error)
}

type ImageProcessor interface {
	ProcessImage(inputData *ImageData, algorithm algorithms.Algorithm) (*ImageData, error)
}

type ImageSaver interface {
	SaveToPath(path string, img image.Image) error
}

// ProcessingCoordinator is what the GUI drives.
type ProcessingCoordinator interface {
	LoadImage(path string) (*ImageData, error)
	ProcessImage(algorithmName string) (*ImageData, error)
	SaveEnhancedImage() (string, error)
	SaveHistogram() (string, error)
	Enhance(path, algorithmName string) (*Result, error)
	GetOriginalImage() *ImageData
	GetProcessedImage() *ImageData
	AvailableAlgorithms() []string
	OutputDirectory() string
}

type ImageData struct {
	Image      image.Image
	Mat        *safe.Mat
	Width      int
	Height     int
	Channels   int
	Format     string
	SourcePath string
	// Algorithm is set on enhanced images only.
	Algorithm string
}

// Result is the outcome of a full Enhance run.
type Result struct {
	Original      *ImageData
	Enhanced      *ImageData
	EnhancedPath  string
	HistogramPath string
	// Report is nil when the comparison could not be computed.
	Report   *metrics.Report
	Duration time.Duration
}

type Coordinator struct {
	mu               sync.RWMutex
	cfg              *config.Config
	originalImage    *ImageData
	processedImage   *ImageData
	memoryManager    *memory.Manager
	logger           logger.Logger
	algorithmManager *algorithms.Manager
	loader           ImageLoader
	processor        ImageProcessor
	saver            ImageSaver
}

func NewCoordinator(cfg *config.Config, memMgr *memory.Manager, log logger.Logger) *Coordinator {
	coord := &Coordinator{
		cfg:              cfg,
		memoryManager:    memMgr,
		logger:           log,
		algorithmManager: algorithms.NewManager(cfg),
		loader:           &imageLoader{logger: log},
		processor:        &imageProcessor{logger: log},
		saver:            &imageSaver{logger: log},
	}

	log.Info("PipelineCoordinator", "initialized", map[string]interface{}{
		"output_dir": cfg.Output.Directory,
		"algorithms": coord.algorithmManager.GetAvailableAlgorithms(),
	})
	return coord
}

// LoadImage replaces the current source image and discards any previous result.
func (c *Coordinator) LoadImage(path string) (*ImageData, error) {
	start := time.Now()

	imageData, err := c.loader.LoadFromPath(path)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "load_image",
			"path":      path,
		})
		return nil, err
	}

	if err := c.memoryManager.Adopt(imageData.Mat, "original_image"); err != nil {
		return nil, fmt.Errorf("failed to track loaded image: %w", err)
	}

	c.mu.Lock()
	c.releaseLocked()
	c.originalImage = imageData
	c.mu.Unlock()

	c.logger.Info("PipelineCoordinator", "image loaded", map[string]interface{}{
		"path":      path,
		"width":     imageData.Width,
		"height":    imageData.Height,
		"format":    imageData.Format,
		"load_time": time.Since(start),
		"live_mats": c.memoryManager.GetActiveMatCount(),
		"mat_bytes": c.memoryManager.GetUsedMemory(),
	})

	return imageData, nil
}

func (c *Coordinator) ProcessImage(algorithmName string) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.originalImage == nil {
		return nil, fmt.Errorf("%w: no image loaded", ErrInvalidState)
	}

	algorithm, err := c.algorithmManager.GetAlgorithm(algorithmName)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, fmt.Errorf("failed to get algorithm: %w", err)
	}

	start := time.Now()
	processedData, err := c.processor.ProcessImage(c.originalImage, algorithm)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, err
	}

	if err := c.memoryManager.Adopt(processedData.Mat, "processed_image"); err != nil {
		return nil, fmt.Errorf("failed to track processed image: %w", err)
	}

	if c.processedImage != nil {
		c.memoryManager.ReleaseMat(c.processedImage.Mat, "processed_image")
	}
	c.processedImage = processedData

	c.logger.Info("PipelineCoordinator", "image processed", map[string]interface{}{
		"algorithm":       algorithmName,
		"width":           processedData.Width,
		"height":          processedData.Height,
		"processing_time": time.Since(start),
		"live_mats":       c.memoryManager.GetActiveMatCount(),
		"mat_bytes":       c.memoryManager.GetUsedMemory(),
	})

	return processedData, nil
}

// SaveEnhancedImage writes the current result as <output>/<prefix><source name>.
// The bytes are always PNG, even when the source name carries another extension.
func (c *Coordinator) SaveEnhancedImage() (string, error) {
	c.mu.RLock()
	processed := c.processedImage
	c.mu.RUnlock()

	if processed == nil {
		return "", ErrInvalidState
	}

	name := c.cfg.Output.EnhancedPrefix + filepath.Base(processed.SourcePath)
	path := filepath.Join(c.cfg.Output.Directory, name)

	if err := c.save(path, processed.Image, "save_enhanced"); err != nil {
		return "", err
	}
	return path, nil
}

// SaveHistogram charts the luma histogram of the source image.
func (c *Coordinator) SaveHistogram() (string, error) {
	c.mu.RLock()
	original := c.originalImage
	c.mu.RUnlock()

	if original == nil {
		return "", fmt.Errorf("%w: no image loaded", ErrInvalidState)
	}

	luma, err := conversion.Luma(original.Mat)
	if err != nil {
		return "", fmt.Errorf("failed to compute histogram: %w", err)
	}

	chart, err := histogram.Render(histogram.Compute(luma))
	if err != nil {
		return "", fmt.Errorf("failed to render histogram: %w", err)
	}
	defer chart.Close()

	chartImage, err := bridge.MatToImage(chart)
	if err != nil {
		return "", fmt.Errorf("failed to convert histogram chart: %w", err)
	}

	path := filepath.Join(c.cfg.Output.Directory, c.cfg.Output.HistogramFile)
	if err := c.save(path, chartImage, "save_histogram"); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Coordinator) save(path string, img image.Image, operation string) error {
	start := time.Now()
	if err := c.saver.SaveToPath(path, img); err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": operation,
			"path":      path,
		})
		return err
	}

	c.logger.Info("PipelineCoordinator", "image saved", map[string]interface{}{
		"operation": operation,
		"path":      path,
		"save_time": time.Since(start),
	})
	return nil
}

// Enhance runs the whole flow: load, transform, chart the histogram and save
// the result. If a later step fails, files written earlier in the run are
// removed.
func (c *Coordinator) Enhance(path, algorithmName string) (*Result, error) {
	start := time.Now()

	original, err := c.LoadImage(path)
	if err != nil {
		return nil, err
	}

	enhanced, err := c.ProcessImage(algorithmName)
	if err != nil {
		return nil, err
	}

	histogramPath, err := c.SaveHistogram()
	if err != nil {
		return nil, err
	}

	enhancedPath, err := c.SaveEnhancedImage()
	if err != nil {
		if removeErr := os.Remove(histogramPath); removeErr != nil {
			c.logger.Warning("PipelineCoordinator", "failed to remove histogram after save failure", map[string]interface{}{
				"path":  histogramPath,
				"error": removeErr.Error(),
			})
		}
		return nil, err
	}

	report, err := metrics.Compare(original.Mat, enhanced.Mat)
	if err != nil {
		c.logger.Warning("PipelineCoordinator", "metrics unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		report = nil
	}

	result := &Result{
		Original:      original,
		Enhanced:      enhanced,
		EnhancedPath:  enhancedPath,
		HistogramPath: histogramPath,
		Report:        report,
		Duration:      time.Since(start),
	}

	c.logger.Info("PipelineCoordinator", "enhancement completed", map[string]interface{}{
		"algorithm": algorithmName,
		"enhanced":  enhancedPath,
		"histogram": histogramPath,
		"duration":  result.Duration,
	})

	return result, nil
}

func (c *Coordinator) GetOriginalImage() *ImageData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.originalImage
}

func (c *Coordinator) GetProcessedImage() *ImageData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processedImage
}

func (c *Coordinator) AvailableAlgorithms() []string {
	return c.algorithmManager.GetAvailableAlgorithms()
}

func (c *Coordinator) OutputDirectory() string {
	return c.cfg.Output.Directory
}

func (c *Coordinator) releaseLocked() {
	if c.originalImage != nil {
		c.memoryManager.ReleaseMat(c.originalImage.Mat, "original_image")
		c.originalImage = nil
	}

	if c.processedImage != nil {
		c.memoryManager.ReleaseMat(c.processedImage.Mat, "processed_image")
		c.processedImage = nil
	}
}

func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("PipelineCoordinator", "shutdown started", nil)
	c.releaseLocked()
	c.logger.Info("PipelineCoordinator", "shutdown completed", nil)
}
