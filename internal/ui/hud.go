//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"seasonfx/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the scene view. Up and Down
// pick a parameter, Left and Right adjust it; the -/+ buttons take clicks.
type HUD struct {
	panel      *Panel
	width      int
	image      *ebiten.Image
	lastHeight int
	title      string
	rows       []hudRow

	panelOffsetX int
	pixel        *ebiten.Image
}

type hudRow struct {
	header    string
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD of the given panel width for effects.
func NewHUD(width int, effects ...core.Effect) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{panel: NewPanel(effects...), width: width, title: buildTitle(effects)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layoutControls()
	return h
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Panel exposes the control model.
func (h *HUD) Panel() *Panel { return h.panel }

// Update refreshes the values from the effects and handles HUD input.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.panel.Refresh()
	h.handleKeys()
	h.handleMouse()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.image == nil || h.lastHeight != height {
		if h.image != nil {
			h.image.Deallocate()
		}
		h.image = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.image.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.image, op)
}

func buildTitle(effects []core.Effect) string {
	var names []string
	for _, e := range effects {
		if name := e.Name(); name != "" {
			names = append(names, capitalize(name))
		}
	}
	if len(names) == 0 {
		return "Controls"
	}
	return strings.Join(names, " + ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (h *HUD) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		h.panel.Select(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		h.panel.Select(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		h.panel.AdjustSelected(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		h.panel.AdjustSelected(1)
	}
}

func (h *HUD) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i, row := range h.rows {
		if pointInRect(px, my, row.minusRect) {
			h.panel.Adjust(i, -1)
			return
		}
		if pointInRect(px, my, row.plusRect) {
			h.panel.Adjust(i, 1)
			return
		}
	}
}

// Contains reports whether the screen point lies on the panel.
func (h *HUD) Contains(x int) bool {
	return h != nil && h.width > 0 && x >= h.panelOffsetX
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.image, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	entries := h.panel.Entries()
	if len(entries) == 0 {
		text.Draw(h.image, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i, e := range entries {
		row := h.rows[i]
		if row.header != "" {
			text.Draw(h.image, row.header, face, panelPadding, row.top-groupGap/2, color.RGBA{R: 140, G: 170, B: 200, A: 255})
		}
		labelColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if i == h.panel.Selected() {
			labelColor = color.RGBA{R: 255, G: 214, B: 120, A: 255}
		}
		labelY := row.top + labelBaseline
		text.Draw(h.image, e.Control.Label, face, panelPadding, labelY, labelColor)

		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !e.HasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		valueWidth := text.BoundString(face, e.Value).Dx()
		text.Draw(h.image, e.Value, face, row.minusRect.Min.X-buttonGap-valueWidth, labelY, valueColor)

		h.drawButton(row.minusRect, "-", h.panel.CanAdjust(i, -1))
		h.drawButton(row.plusRect, "+", h.panel.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.image.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.image, label, face, x, y, fg)
}

// layoutControls places one row per entry and a header above each effect's
// first entry.
func (h *HUD) layoutControls() {
	entries := h.panel.Entries()
	h.rows = make([]hudRow, len(entries))
	if h.width <= 0 {
		return
	}
	top := controlsTop
	for i, e := range entries {
		if i == 0 || entries[i-1].Effect != e.Effect {
			top += groupGap
			h.rows[i].header = capitalize(e.Effect)
		}
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.rows[i].top = top
		h.rows[i].minusRect = minusRect
		h.rows[i].plusRect = plusRect
		top += lineHeight
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	groupGap       = 20
	controlsTop    = panelPadding + headerBaseline + 14
)
