package gui

import (
	"image"
	"strings"

	"image-enhancer/internal/gui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type View struct {
	window     fyne.Window
	controller *Controller

	toolbar       *widgets.Toolbar
	imageDisplay  *widgets.ImageDisplay
	mainContainer *fyne.Container
}

func NewView(window fyne.Window) *View {
	view := &View{
		window: window,
	}

	view.setupComponents()
	view.setupLayout()

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupComponents() {
	v.toolbar = widgets.NewToolbar()
	v.imageDisplay = widgets.NewImageDisplay()
}

func (v *View) setupLayout() {
	v.mainContainer = container.NewBorder(
		nil,
		v.toolbar.GetContainer(),
		nil, nil,
		v.imageDisplay.GetContainer(),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetOpenHandler(v.controller.OpenImage)
	v.toolbar.SetSaveHandler(v.controller.SaveImage)
}

func (v *View) SetOriginalImage(img image.Image) {
	v.imageDisplay.SetOriginalImage(img)
}

func (v *View) SetEnhancedImage(img image.Image, algorithm string) {
	v.imageDisplay.SetEnhancedImage(img, algorithm)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetBusy(busy bool) {
	v.toolbar.SetBusy(busy)
}

func (v *View) SetMetrics(psnr, contrastBefore, contrastAfter float64) {
	v.toolbar.SetMetrics(psnr, contrastBefore, contrastAfter)
}

func (v *View) ClearMetrics() {
	v.toolbar.SetMetrics(0, -1, -1)
}

// ShowError reports err in a dialog titled after the failed action.
func (v *View) ShowError(title string, err error) {
	content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, widget.NewLabel(err.Error()))
	dialog.ShowCustom(title, "OK", content, v.window)
}

func (v *View) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, v.window)
}

// ShowFileDialog opens a picker restricted to the given extensions
// (lower-case, with the leading dot).
func (v *View) ShowFileDialog(extensions []string, callback func(fyne.URIReadCloser, error)) {
	fileDialog := dialog.NewFileOpen(callback, v.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(withUpperCase(extensions)))
	fileDialog.Show()
}

// ShowMethodDialog asks which enhancement to run. callback receives the
// chosen name, or ok=false when the user cancels.
func (v *View) ShowMethodDialog(methods []string, callback func(method string, ok bool)) {
	chooser := widgets.NewMethodChooser(methods)

	dialog.ShowCustomConfirm("Enhancement Method", "Enhance", "Cancel",
		chooser.GetContainer(), func(confirmed bool) {
			if confirmed && chooser.Selected() != "" {
				callback(chooser.Selected(), true)
			} else {
				callback("", false)
			}
		}, v.window)
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}

func withUpperCase(extensions []string) []string {
	all := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		all = append(all, ext, strings.ToUpper(ext))
	}
	return all
}
