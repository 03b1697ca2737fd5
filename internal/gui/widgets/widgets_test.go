package widgets

import (
	"image"
	"math"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestToolbarButtonsCallHandlers(t *testing.T) {
	test.NewTempApp(t)

	tb := NewToolbar()
	opened, saved := 0, 0
	tb.SetOpenHandler(func() { opened++ })
	tb.SetSaveHandler(func() { saved++ })

	test.Tap(tb.openButton)
	test.Tap(tb.saveButton)
	test.Tap(tb.saveButton)

	assert.Equal(t, 1, opened)
	assert.Equal(t, 2, saved)
}

func TestToolbarBusyDisablesButtons(t *testing.T) {
	test.NewTempApp(t)

	tb := NewToolbar()
	opened := 0
	tb.SetOpenHandler(func() { opened++ })

	tb.SetBusy(true)
	assert.True(t, tb.Busy())
	assert.True(t, tb.openButton.Disabled())
	test.Tap(tb.openButton)
	assert.Zero(t, opened)

	tb.SetBusy(false)
	assert.False(t, tb.Busy())
	assert.False(t, tb.saveButton.Disabled())
}

func TestToolbarStatusAndMetrics(t *testing.T) {
	test.NewTempApp(t)

	tb := NewToolbar()
	assert.Equal(t, "Ready", tb.Status())
	assert.Equal(t, noMetrics, tb.Metrics())

	tb.SetStatus("Enhancing...")
	assert.Equal(t, "Enhancing...", tb.Status())

	tb.SetMetrics(31.234, 4.6, 74.05)
	assert.Equal(t, "PSNR: 31.23 dB | Contrast: 4.6 → 74.0", tb.Metrics())

	tb.SetMetrics(math.Inf(1), 10, 10)
	assert.Equal(t, "PSNR: ∞ | Contrast: 10.0 → 10.0", tb.Metrics())

	tb.SetMetrics(0, -1, -1)
	assert.Equal(t, noMetrics, tb.Metrics())
}

func TestImageDisplayPanes(t *testing.T) {
	test.NewTempApp(t)

	d := NewImageDisplay()
	original := image.NewGray(image.Rect(0, 0, 2, 2))
	enhanced := image.NewRGBA(image.Rect(0, 0, 2, 2))

	d.SetOriginalImage(original)
	d.SetEnhancedImage(enhanced, "Fuzzy Enhancement")

	assert.Same(t, original, d.OriginalImage())
	assert.Same(t, enhanced, d.EnhancedImage())
	assert.Equal(t, "Enhanced (Fuzzy Enhancement)", d.EnhancedTitle())

	d.SetEnhancedImage(nil, "")
	assert.Nil(t, d.EnhancedImage())
	assert.Equal(t, "Enhanced", d.EnhancedTitle())
}

func TestMethodChooserPreselectsFirstOption(t *testing.T) {
	test.NewTempApp(t)

	mc := NewMethodChooser([]string{"Histogram Equalization", "Fuzzy Enhancement"})
	assert.Equal(t, "Histogram Equalization", mc.Selected())

	mc.SetSelected("Fuzzy Enhancement")
	assert.Equal(t, "Fuzzy Enhancement", mc.Selected())
}
