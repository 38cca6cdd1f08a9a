// Package term previews a composed scene in a terminal. Every cell shows two
// vertically stacked pixels using the upper half block glyph.
package term

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// HalfBlock is drawn in every cell; its foreground is the upper pixel and its
// background the lower one.
const HalfBlock = '▀'

// Open creates and initialises the terminal screen with mouse support.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal screen")
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// FrameSize returns the pixel size of a frame that fills the screen.
func FrameSize(screen tcell.Screen) (int, int) {
	cols, rows := screen.Size()
	return cols, rows * 2
}

// CellToPixel maps a cell to the centre of its upper pixel.
func CellToPixel(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row*2) + 0.5
}

// CellColor converts a premultiplied pixel into a terminal colour.
func CellColor(c color.Color) tcell.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixels carry no colour.
		return tcell.ColorBlack
	}
	r, g, b := cf.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Draw paints img onto screen, two pixel rows per cell row. Cells outside img
// are left untouched. It does not call Show.
func Draw(screen tcell.Screen, img *image.RGBA) {
	cols, rows := screen.Size()
	b := img.Rect
	for row := 0; row < rows; row++ {
		top := b.Min.Y + row*2
		if top >= b.Max.Y {
			break
		}
		for col := 0; col < cols && b.Min.X+col < b.Max.X; col++ {
			x := b.Min.X + col
			upper := img.RGBAAt(x, top)
			lower := upper
			if top+1 < b.Max.Y {
				lower = img.RGBAAt(x, top+1)
			}
			style := tcell.StyleDefault.Foreground(CellColor(upper)).Background(CellColor(lower))
			screen.SetContent(col, row, HalfBlock, nil, style)
		}
	}
}
