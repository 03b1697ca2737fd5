package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EnhancerTheme is the default fyne theme with a warmer palette.
type EnhancerTheme struct{}

func NewTheme() fyne.Theme {
	return &EnhancerTheme{}
}

func (t *EnhancerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark

	switch name {
	case theme.ColorNameBackground:
		if dark {
			return color.NRGBA{R: 28, G: 28, B: 30, A: 255}
		}
		return color.NRGBA{R: 250, G: 249, B: 245, A: 255}

	case theme.ColorNameInputBackground:
		if dark {
			return color.NRGBA{R: 44, G: 44, B: 46, A: 255}
		}
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	case theme.ColorNamePrimary:
		if dark {
			return color.NRGBA{R: 110, G: 160, B: 240, A: 255}
		}
		return color.NRGBA{R: 40, G: 110, B: 200, A: 255}

	case theme.ColorNameFocus:
		return t.Color(theme.ColorNamePrimary, variant)

	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *EnhancerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EnhancerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *EnhancerTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
