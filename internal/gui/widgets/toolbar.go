package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const noMetrics = "PSNR: -- | Contrast: --"

type Toolbar struct {
	container    *fyne.Container
	openButton   *widget.Button
	saveButton   *widget.Button
	statusLabel  *widget.Label
	metricsLabel *widget.Label

	openHandler func()
	saveHandler func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), t.onOpenClicked)
	t.openButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), t.onSaveClicked)

	t.statusLabel = widget.NewLabel("Ready")
	t.metricsLabel = widget.NewLabel(noMetrics)
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(color.RGBA{R: 250, G: 249, B: 245, A: 255})
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1.0
	border.StrokeColor = color.RGBA{R: 231, G: 231, B: 231, A: 255}

	content := container.NewBorder(
		nil, nil,
		container.NewHBox(t.openButton, t.saveButton, widget.NewSeparator()),
		container.NewHBox(t.metricsLabel),
		t.statusLabel,
	)

	t.container = container.NewStack(
		border,
		container.NewPadded(
			container.NewStack(background, container.NewPadded(content)),
		),
	)
}

func (t *Toolbar) onOpenClicked() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

func (t *Toolbar) onSaveClicked() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

// SetBusy disables the buttons while an enhancement runs.
func (t *Toolbar) SetBusy(busy bool) {
	if busy {
		t.openButton.Disable()
		t.saveButton.Disable()
		return
	}
	t.openButton.Enable()
	t.saveButton.Enable()
}

func (t *Toolbar) Busy() bool {
	return t.openButton.Disabled()
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) Status() string {
	return t.statusLabel.Text
}

// SetMetrics shows PSNR and the luma standard deviation before and after.
// Negative contrast values reset the label.
func (t *Toolbar) SetMetrics(psnr, contrastBefore, contrastAfter float64) {
	if contrastBefore < 0 || contrastAfter < 0 {
		t.metricsLabel.SetText(noMetrics)
		return
	}

	psnrText := "∞"
	if !math.IsInf(psnr, 1) {
		psnrText = fmt.Sprintf("%.2f dB", psnr)
	}
	t.metricsLabel.SetText(fmt.Sprintf("PSNR: %s | Contrast: %.1f → %.1f", psnrText, contrastBefore, contrastAfter))
}

func (t *Toolbar) Metrics() string {
	return t.metricsLabel.Text
}
