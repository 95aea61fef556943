package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette used by the library window
var (
	accentPurple = color.NRGBA{R: 102, G: 126, B: 234, A: 255}
	accentPink   = color.NRGBA{R: 240, G: 147, B: 251, A: 255}
	successGreen = color.NRGBA{R: 72, G: 187, B: 120, A: 255}
	errorRed     = color.NRGBA{R: 229, G: 62, B: 62, A: 255}
)

// LibraryTheme tints the default theme with the library accent colors
// and tightens spacing so more cards fit on screen
type LibraryTheme struct{}

// NewLibraryTheme creates the application theme
func NewLibraryTheme() fyne.Theme {
	return &LibraryTheme{}
}

// Color returns theme colors
func (t *LibraryTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accentPurple
	case theme.ColorNameHyperlink:
		return accentPink
	case theme.ColorNameSuccess:
		return successGreen
	case theme.ColorNameError:
		return errorRed
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 24, G: 22, B: 36, A: 255}
		}
		return color.NRGBA{R: 246, G: 245, B: 252, A: 255}
	case theme.ColorNameHover:
		return color.NRGBA{R: accentPurple.R, G: accentPurple.G, B: accentPurple.B, A: 40}
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *LibraryTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *LibraryTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *LibraryTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 8
	}
	return theme.DefaultTheme().Size(name)
}
