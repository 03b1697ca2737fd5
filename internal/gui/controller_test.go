package gui

import (
	"image"
	"testing"
	"time"

	"image-enhancer/internal/logger"
	"image-enhancer/internal/metrics"
	"image-enhancer/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCoordinator struct {
	processed *pipeline.ImageData
	saves     int
	// saveGate, when set, holds SaveEnhancedImage until it is closed
	saveGate chan struct{}
}

func (s *stubCoordinator) LoadImage(string) (*pipeline.ImageData, error) { return nil, nil }

func (s *stubCoordinator) ProcessImage(string) (*pipeline.ImageData, error) { return nil, nil }

func (s *stubCoordinator) SaveEnhancedImage() (string, error) {
	if s.saveGate != nil {
		<-s.saveGate
	}
	s.saves++
	return "output/enhanced_a.png", nil
}

func (s *stubCoordinator) SaveHistogram() (string, error) { return "output/histogram.png", nil }

func (s *stubCoordinator) Enhance(string, string) (*pipeline.Result, error) { return nil, nil }

func (s *stubCoordinator) GetOriginalImage() *pipeline.ImageData { return nil }

func (s *stubCoordinator) GetProcessedImage() *pipeline.ImageData { return s.processed }

func (s *stubCoordinator) AvailableAlgorithms() []string {
	return []string{"Histogram Equalization", "Fuzzy Enhancement"}
}

func (s *stubCoordinator) OutputDirectory() string { return "output" }

func newTestManager(t *testing.T, coord pipeline.ProcessingCoordinator) (*Manager, fyne.Window) {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewTempWindow(t, widget.NewLabel(""))
	m := NewManager(w, coord, logger.NewNop())
	m.Show()
	return m, w
}

func TestSaveBeforeEnhancementShowsError(t *testing.T) {
	coord := &stubCoordinator{}
	m, w := newTestManager(t, coord)

	m.SaveImage()

	assert.NotNil(t, w.Canvas().Overlays().Top(), "expected an error dialog")
	assert.Zero(t, coord.saves)
	assert.Equal(t, "Ready", m.view.toolbar.Status())
}

func TestErrorDialogCarriesTitle(t *testing.T) {
	m, w := newTestManager(t, &stubCoordinator{})

	m.view.ShowError("Save error", pipeline.ErrInvalidState)

	top := w.Canvas().Overlays().Top()
	require.NotNil(t, top)
	assert.True(t, hasLabel(t, top, "Save error"), "dialog title")
	assert.True(t, hasLabel(t, top, "run enhancement first"), "dialog message")
}

func TestOpenIsIgnoredWhileSaving(t *testing.T) {
	coord := &stubCoordinator{
		processed: &pipeline.ImageData{Image: image.NewGray(image.Rect(0, 0, 1, 1))},
		saveGate:  make(chan struct{}),
	}
	m, w := newTestManager(t, coord)

	m.SaveImage()
	assert.True(t, m.controller.isProcessing())
	assert.True(t, m.view.toolbar.Busy())

	m.OpenImage()
	assert.Nil(t, w.Canvas().Overlays().Top(), "no file dialog while saving")

	// the first save is still parked on the gate, so this one must not start
	m.SaveImage()
	assert.Zero(t, coord.saves)
}

// hasLabel searches the rendered widget tree under obj for a label with text.
func hasLabel(t *testing.T, obj fyne.CanvasObject, text string) bool {
	t.Helper()

	if label, ok := obj.(*widget.Label); ok && label.Text == text {
		return true
	}

	var children []fyne.CanvasObject
	switch o := obj.(type) {
	case *fyne.Container:
		children = o.Objects
	case fyne.Widget:
		children = test.TempWidgetRenderer(t, o).Objects()
	}

	for _, child := range children {
		if hasLabel(t, child, text) {
			return true
		}
	}
	return false
}

func TestShowResultUpdatesView(t *testing.T) {
	m, w := newTestManager(t, &stubCoordinator{})

	original := image.NewGray(image.Rect(0, 0, 2, 2))
	enhanced := image.NewRGBA(image.Rect(0, 0, 2, 2))
	result := &pipeline.Result{
		Original: &pipeline.ImageData{Image: original, Width: 2, Height: 2},
		Enhanced: &pipeline.ImageData{Image: enhanced, Width: 2, Height: 2, Algorithm: "Histogram Equalization"},
		Report: &metrics.Report{
			PSNR:         12.5,
			StdDevBefore: 20,
			StdDevAfter:  70,
		},
		Duration: 1500 * time.Microsecond,
	}

	m.controller.showResult(result)

	assert.Same(t, original, m.view.imageDisplay.OriginalImage())
	assert.Same(t, enhanced, m.view.imageDisplay.EnhancedImage())
	assert.Equal(t, "Enhanced (Histogram Equalization)", m.view.imageDisplay.EnhancedTitle())
	assert.Equal(t, "PSNR: 12.50 dB | Contrast: 20.0 → 70.0", m.view.toolbar.Metrics())
	assert.Equal(t, "Histogram Equalization done in 2ms", m.view.toolbar.Status())
	assert.NotNil(t, w.Canvas().Overlays().Top(), "expected a success dialog")
}

func TestShowResultWithoutReportClearsMetrics(t *testing.T) {
	m, _ := newTestManager(t, &stubCoordinator{})
	m.view.SetMetrics(1, 2, 3)

	m.controller.showResult(&pipeline.Result{
		Original: &pipeline.ImageData{Image: image.NewGray(image.Rect(0, 0, 1, 1))},
		Enhanced: &pipeline.ImageData{Image: image.NewGray(image.Rect(0, 0, 1, 1)), Algorithm: "Fuzzy Enhancement"},
	})

	assert.Equal(t, "PSNR: -- | Contrast: --", m.view.toolbar.Metrics())
}

func TestOnlyOneEnhancementAtATime(t *testing.T) {
	m, _ := newTestManager(t, &stubCoordinator{})

	require.True(t, m.controller.beginProcessing())
	assert.True(t, m.controller.isProcessing())
	assert.False(t, m.controller.beginProcessing())

	m.controller.setProcessing(false)
	m.Shutdown()
	assert.False(t, m.controller.beginProcessing(), "no new work after shutdown")
}

func TestFileFilterAcceptsUpperCaseExtensions(t *testing.T) {
	assert.Equal(t, []string{".png", ".PNG", ".jpg", ".JPG"}, withUpperCase([]string{".png", ".jpg"}))
}

func TestThemeFallsBackToDefault(t *testing.T) {
	th := NewTheme()

	assert.Equal(t, th.Color(theme.ColorNamePrimary, theme.VariantLight), th.Color(theme.ColorNameFocus, theme.VariantLight))
	assert.Equal(t, theme.DefaultTheme().Color(theme.ColorNameError, theme.VariantDark), th.Color(theme.ColorNameError, theme.VariantDark))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNamePadding), th.Size(theme.SizeNamePadding))
}
