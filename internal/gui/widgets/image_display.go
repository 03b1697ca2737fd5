package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 480
	ImageAreaHeight = 400
)

// ImageDisplay shows the source image beside its enhanced version.
type ImageDisplay struct {
	container     fyne.CanvasObject
	originalImage *canvas.Image
	enhancedImage *canvas.Image
	enhancedTitle *widget.Label
	splitView     *container.Split
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func newImageCanvas() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (id *ImageDisplay) createComponents() {
	id.originalImage = newImageCanvas()
	id.enhancedImage = newImageCanvas()
	id.enhancedTitle = widget.NewLabelWithStyle("Enhanced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func (id *ImageDisplay) setupLayout() {
	originalContainer := container.NewBorder(
		widget.NewLabelWithStyle("Original", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		id.originalImage,
	)

	enhancedContainer := container.NewBorder(
		id.enhancedTitle,
		nil, nil, nil,
		id.enhancedImage,
	)

	id.splitView = container.NewHSplit(originalContainer, enhancedContainer)
	id.splitView.SetOffset(0.5)
	id.container = id.splitView
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	id.originalImage.Image = img
	id.originalImage.Refresh()
}

// SetEnhancedImage shows img under a title naming the algorithm that made it.
// A nil image clears the pane.
func (id *ImageDisplay) SetEnhancedImage(img image.Image, algorithm string) {
	title := "Enhanced"
	if img != nil && algorithm != "" {
		title = "Enhanced (" + algorithm + ")"
	}
	id.enhancedTitle.SetText(title)

	id.enhancedImage.Image = img
	id.enhancedImage.Refresh()
}

func (id *ImageDisplay) OriginalImage() image.Image {
	return id.originalImage.Image
}

func (id *ImageDisplay) EnhancedImage() image.Image {
	return id.enhancedImage.Image
}

func (id *ImageDisplay) EnhancedTitle() string {
	return id.enhancedTitle.Text
}
