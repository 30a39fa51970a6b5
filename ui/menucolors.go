package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette shared by the setup, color and results screens.
var MenuColors = struct {
	Label       tcell.Color
	Hint        tcell.Color
	Accent      tcell.Color
	ButtonBG    tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
	Win         tcell.Color
}{
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	Accent:      tcell.PaletteColor(109),
	ButtonBG:    tcell.PaletteColor(60),
	ButtonFocus: tcell.PaletteColor(109),
	ButtonText:  tcell.PaletteColor(255),
	Win:         tcell.PaletteColor(143),
}
