package gui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"image-enhancer/internal/logger"
	"image-enhancer/internal/pipeline"

	"fyne.io/fyne/v2"
)

type Controller struct {
	view        *View
	coordinator pipeline.ProcessingCoordinator
	logger      logger.Logger

	mu               sync.RWMutex
	processingActive bool
	isShutdown       bool
}

func NewController(coord pipeline.ProcessingCoordinator, log logger.Logger) *Controller {
	return &Controller{
		coordinator: coord,
		logger:      log,
	}
}

func (c *Controller) SetView(view *View) {
	c.view = view
}

// OpenImage asks for a file, then for a method, then enhances the file in the
// background.
func (c *Controller) OpenImage() {
	if c.isProcessing() {
		return
	}

	c.view.ShowFileDialog(pipeline.SupportedExtensions, func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError("File selection error", err)
			return
		}
		if reader == nil {
			return
		}

		path := reader.URI().Path()
		if closeErr := reader.Close(); closeErr != nil {
			c.logger.Warning("Controller", "failed to close file reader", map[string]interface{}{
				"path":  path,
				"error": closeErr.Error(),
			})
		}

		c.view.ShowMethodDialog(c.coordinator.AvailableAlgorithms(), func(method string, ok bool) {
			if !ok {
				return
			}
			c.StartEnhancement(path, method)
		})
	})
}

// StartEnhancement runs the full pipeline off the UI goroutine and reports
// back through fyne.Do.
func (c *Controller) StartEnhancement(path, method string) {
	if !c.beginProcessing() {
		return
	}

	c.view.SetBusy(true)
	c.view.SetStatus(fmt.Sprintf("Enhancing with %s...", method))

	go func() {
		result, err := c.coordinator.Enhance(path, method)

		fyne.Do(func() {
			c.setProcessing(false)
			c.view.SetBusy(false)

			if err != nil {
				c.handleError("Enhancement error", err)
				c.view.SetStatus("Ready")
				return
			}
			c.showResult(result)
		})
	}()
}

func (c *Controller) showResult(result *pipeline.Result) {
	c.view.SetOriginalImage(result.Original.Image)
	c.view.SetEnhancedImage(result.Enhanced.Image, result.Enhanced.Algorithm)

	if result.Report != nil {
		c.view.SetMetrics(result.Report.PSNR, result.Report.StdDevBefore, result.Report.StdDevAfter)
	} else {
		c.view.ClearMetrics()
	}

	c.view.SetStatus(fmt.Sprintf("%s done in %s", result.Enhanced.Algorithm, result.Duration.Round(time.Millisecond)))
	c.view.ShowInformation("Enhancement complete",
		fmt.Sprintf("Results saved to the %q folder.", c.coordinator.OutputDirectory()))

	c.logger.Info("Controller", "enhancement displayed", map[string]interface{}{
		"algorithm": result.Enhanced.Algorithm,
		"width":     result.Enhanced.Width,
		"height":    result.Enhanced.Height,
		"duration":  result.Duration,
	})
}

// SaveImage rewrites the enhanced image and histogram chart of the last run.
// It holds the processing flag so no image can be opened while it writes.
func (c *Controller) SaveImage() {
	if !c.beginProcessing() {
		return
	}

	if c.coordinator.GetProcessedImage() == nil {
		c.setProcessing(false)
		c.handleError("Save error", pipeline.ErrInvalidState)
		return
	}

	c.view.SetBusy(true)
	c.view.SetStatus("Saving...")

	go func() {
		enhancedPath, err := c.coordinator.SaveEnhancedImage()
		if err == nil {
			_, err = c.coordinator.SaveHistogram()
		}

		fyne.Do(func() {
			c.setProcessing(false)
			c.view.SetBusy(false)

			if err != nil {
				c.handleError("Save error", err)
				c.view.SetStatus("Ready")
				return
			}
			c.view.SetStatus("Saved " + enhancedPath)
			c.view.ShowInformation("Saved",
				fmt.Sprintf("Results saved to the %q folder.", c.coordinator.OutputDirectory()))
		})
	}()
}

func (c *Controller) handleError(title string, err error) {
	fields := map[string]interface{}{
		"title": title,
	}
	if errors.Is(err, pipeline.ErrInvalidState) {
		fields["invalid_state"] = true
	}
	c.logger.Error("Controller", err, fields)

	if c.view != nil {
		c.view.ShowError(title, err)
	}
}

func (c *Controller) beginProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processingActive || c.isShutdown {
		return false
	}
	c.processingActive = true
	return true
}

func (c *Controller) isProcessing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processingActive
}

func (c *Controller) setProcessing(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processingActive = active
}

func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isShutdown = true
	c.logger.Info("Controller", "shutdown completed", nil)
}
