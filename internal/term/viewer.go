package term

import (
	"context"
	"image"
	"image/color"
	"time"

	"seasonfx/internal/core"
	"seasonfx/internal/scene"

	"github.com/gdamore/tcell/v2"
)

// Viewer runs a scene inside a terminal screen.
type Viewer struct {
	screen tcell.Screen
	scene  *scene.Scene
	step   *core.FixedStep
	bg     color.Color
	frame  *image.RGBA

	paused bool
	seed   int64
}

// NewViewer sizes sc to the screen and returns a viewer updating it at tps.
func NewViewer(screen tcell.Screen, sc *scene.Scene, tps int, bg color.Color, seed int64) *Viewer {
	v := &Viewer{
		screen: screen,
		scene:  sc,
		step:   core.NewFixedStep(tps),
		bg:     bg,
		seed:   seed,
	}
	v.resize()
	return v
}

// Paused reports whether updates are suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Frame returns the most recently composed frame.
func (v *Viewer) Frame() *image.RGBA { return v.frame }

// HandleEvent applies one input event and reports whether the viewer should
// quit. Keys: g regrow, l strike the centre, space pause, r reset, q or Esc
// quit. A left click strikes at the clicked cell.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'g', 'G':
				v.scene.Regrow()
			case 'l', 'L':
				v.scene.StrikeCenter()
			case ' ':
				v.paused = !v.paused
			case 'r', 'R':
				v.scene.Reset(v.seed)
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.scene.Strike(CellToPixel(x, y))
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	}
	return false
}

// Tick advances the scene by one fixed step unless paused, then redraws.
func (v *Viewer) Tick() {
	if !v.paused {
		v.scene.Update(v.step.Step())
	}
	v.Draw()
}

// Draw composes the scene and shows it.
func (v *Viewer) Draw() {
	v.scene.Compose(v.frame, v.bg)
	Draw(v.screen, v.frame)
	v.screen.Show()
}

// Run processes events and ticks until ctx is done or a quit key arrives.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(v.step.Step())
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if v.step.ShouldStep() {
				v.Tick()
			}
		}
	}
}

func (v *Viewer) resize() {
	w, h := FrameSize(v.screen)
	v.scene.Resize(w, h)
	v.frame = image.NewRGBA(image.Rect(0, 0, w, h))
}
