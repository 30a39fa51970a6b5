package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tilechess/config"
	"tilechess/types"
)

// ColorConfigUI provides a square color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedLight int
	selectedDark  int
	editingDark   bool // true = editing dark squares, false = editing light squares
}

type paletteEntry struct {
	code int
	name string
}

// Light square colors to choose from
var lightColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{188, "Light Beige"},
	{187, "Wheat"},
	{180, "Tan"},
	{252, "Light Gray"},
	{250, "Gray"},
	{194, "Mint"},
	{153, "Sky"},
}

// Dark square colors, deeper tones that contrast with the light squares
var darkColors = []paletteEntry{
	{137, "Walnut"},
	{136, "Dark Brown"},
	{130, "Dark Orange"},
	{94, "Saddle Brown"},
	{95, "Rosewood"},
	{65, "Moss"},
	{29, "Tournament Green"},
	{24, "Dark Cyan"},
	{60, "Slate"},
	{240, "Gray"},
}

// previewPieces is the position drawn in the preview, top rank first.
var previewPieces = [6]string{
	"r..k..",
	"pp..p.",
	"..n..b",
	"...P..",
	"PP..PP",
	"R..K.R",
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		selectedLight: cfg.Theme.Colors.LightSquare,
		selectedDark:  cfg.Theme.Colors.DarkSquare,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Selection change previews
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingDark {
			cc.selectedDark = entries[index].code
		} else {
			cc.selectedLight = entries[index].code
		}
	})

	// Enter applies
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		if !cc.editingDark {
			cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
			cc.editingDark = true
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.DarkSquare = cc.selectedDark
		if err := cc.cfg.Save(); err != nil {
			cc.colorList.SetTitle(fmt.Sprintf(" Not saved: %v ", err))
			return
		}
		cc.editingDark = false
		cc.populateColorList()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingDark {
		return darkColors
	}
	return lightColors
}

// populateColorList fills the list with the colors for the square being edited.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedLight
	if cc.editingDark {
		cc.colorList.SetTitle(" Dark Squares (Tab: light) ")
		current = cc.selectedDark
	} else {
		cc.colorList.SetTitle(" Light Squares (Tab: dark) ")
	}

	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.entries() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := len(previewPieces)
	startX := x + 2
	startY := y + 1

	if width < size*cellWidth+4 || height < size+4 {
		return x, y, width, height
	}

	light := tcell.PaletteColor(cc.selectedLight)
	dark := tcell.PaletteColor(cc.selectedDark)
	whiteFg := tcell.PaletteColor(cc.cfg.Theme.Colors.WhitePiece)
	blackFg := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackPiece)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			bg := light
			if (col+size-1-row)%2 == 0 {
				bg = dark
			}
			style := tcell.StyleDefault.Background(bg)
			ch := ' '
			if letter := previewPieces[row][col]; letter != '.' {
				kind, _ := types.KindFromLetter(letter)
				ch = cc.cfg.Theme.Symbols.For(kind)
				if letter >= 'a' && letter <= 'z' {
					style = style.Foreground(blackFg)
				} else {
					style = style.Foreground(whiteFg)
				}
			}
			left := startX + col*cellWidth
			screen.SetContent(left, startY+row, ' ', nil, style)
			screen.SetContent(left+1, startY+row, ch, nil, style)
			screen.SetContent(left+2, startY+row, ' ', nil, style)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	drawText(screen, startX, startY+size+1, info, tcell.StyleDefault.Foreground(MenuColors.Label))

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light and dark square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
