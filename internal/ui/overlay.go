//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// markerTicks is how long a strike marker stays visible.
const markerTicks = 45

// Overlay draws a status line and fading crosshairs where strikes were
// requested.
type Overlay struct {
	scale   float64
	pixel   *ebiten.Image
	markers []marker
	status  string
}

type marker struct {
	x, y float64
	left int
}

// NewOverlay constructs an overlay for a scene drawn at scale.
func NewOverlay(scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{scale: float64(scale)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// MarkStrike records a strike at scene coordinates (x, y).
func (o *Overlay) MarkStrike(x, y float64) {
	o.markers = append(o.markers, marker{x: x, y: y, left: markerTicks})
}

// SetStatus formats the status line.
func (o *Overlay) SetStatus(paused bool, seed int64, strikes int) {
	state := "running"
	if paused {
		state = "paused"
	}
	o.status = fmt.Sprintf("%s  seed %d  strikes %d  %.0f fps", state, seed, strikes, ebiten.ActualFPS())
}

// Update ages the strike markers.
func (o *Overlay) Update() {
	kept := o.markers[:0]
	for _, m := range o.markers {
		m.left--
		if m.left > 0 {
			kept = append(kept, m)
		}
	}
	o.markers = kept
}

// Draw renders the overlay on top of the scene.
func (o *Overlay) Draw(screen *ebiten.Image) {
	for _, m := range o.markers {
		alpha := float64(m.left) / markerTicks
		col := color.NRGBA{R: 255, G: 214, B: 120, A: uint8(math.Round(alpha * 200))}
		x, y := m.x*o.scale, m.y*o.scale
		const arm = 8
		o.drawLine(screen, x-arm, y, x+arm, y, 1.5, col)
		o.drawLine(screen, x, y-arm, x, y+arm, 1.5, col)
	}
	if o.status != "" {
		text.Draw(screen, o.status, basicfont.Face7x13, 8, 18, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.Color) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
