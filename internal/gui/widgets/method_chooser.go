package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MethodChooser is the body of the "choose enhancement method" prompt. The
// first option is preselected and a selection can't be cleared.
type MethodChooser struct {
	container *fyne.Container
	radio     *widget.RadioGroup
}

func NewMethodChooser(options []string) *MethodChooser {
	mc := &MethodChooser{}
	mc.radio = widget.NewRadioGroup(options, nil)
	mc.radio.Required = true
	if len(options) > 0 {
		mc.radio.SetSelected(options[0])
	}

	mc.container = container.NewVBox(
		widget.NewLabel("Choose enhancement method:"),
		mc.radio,
	)
	return mc
}

func (mc *MethodChooser) GetContainer() *fyne.Container {
	return mc.container
}

func (mc *MethodChooser) Selected() string {
	return mc.radio.Selected
}

func (mc *MethodChooser) SetSelected(option string) {
	mc.radio.SetSelected(option)
}
