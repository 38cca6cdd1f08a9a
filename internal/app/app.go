//go:build ebiten

package app

import (
	"image"
	"image/color"
	"time"

	"seasonfx/internal/core"
	"seasonfx/internal/lightning"
	"seasonfx/internal/render"
	"seasonfx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 280

// Game adapts a scene session to the ebiten.Game interface.
type Game struct {
	sess    *Session
	painter *render.ImagePainter
	frame   *image.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay
	storm   *lightning.Storm

	bg       color.Color
	scale    int
	step     time.Duration
	paused   bool
	tickOnce bool
	showHUD  bool
	seed     int64
}

// New constructs a Game drawing sess at scale. showHUD controls whether the
// parameter panel starts visible.
func New(sess *Session, scale int, showHUD bool) *Game {
	if scale <= 0 {
		scale = 1
	}
	s := sess.Settings
	size := sess.Scene.Size()
	effects := make([]core.Effect, 0, len(sess.Scene.Layers()))
	for _, l := range sess.Scene.Layers() {
		effects = append(effects, l.Effect)
	}
	g := &Game{
		sess:    sess,
		painter: render.NewImagePainter(size.W, size.H),
		frame:   image.NewRGBA(image.Rect(0, 0, size.W, size.H)),
		hud:     ui.NewHUD(hudWidth, effects...),
		overlay: ui.NewOverlay(scale),
		bg:      s.Background,
		scale:   scale,
		step:    core.NewFixedStep(s.TPS).Step(),
		showHUD: showHUD,
		seed:    s.Seed,
	}
	g.storm, _ = sess.Scene.Find("lightning").(*lightning.Storm)
	return g
}

// Reset reinitializes every effect with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sess.Scene.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the scene.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.sess.Scene.Regrow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		size := g.sess.Scene.Size()
		if g.sess.Scene.StrikeCenter() > 0 {
			g.overlay.MarkStrike(float64(size.W)/2, float64(size.H)/2)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.click(ebiten.CursorPosition())
	}

	if g.showHUD {
		g.hud.Update(g.sceneWidth())
	}
	g.overlay.Update()

	if !g.paused || g.tickOnce {
		g.sess.Scene.Update(g.step)
		g.tickOnce = false
	}
	strikes := 0
	if g.storm != nil {
		strikes = g.storm.Strikes()
	}
	g.overlay.SetStatus(g.paused, g.seed, strikes)
	return nil
}

func (g *Game) click(x, y int) {
	if x < 0 || y < 0 || x >= g.sceneWidth() {
		return
	}
	sx, sy := float64(x)/float64(g.scale), float64(y)/float64(g.scale)
	if g.sess.Scene.Strike(sx, sy) > 0 {
		g.overlay.MarkStrike(sx, sy)
	}
}

// Draw renders the composed scene, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.sess.Scene.Compose(g.frame, g.bg)
	g.painter.Blit(screen, g.frame, float64(g.scale))
	g.overlay.Draw(screen)
	if g.showHUD {
		_, h := g.Layout(0, 0)
		g.hud.Draw(screen, g.sceneWidth(), h)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sess.Scene.Size()
	w := s.W * g.scale
	if g.showHUD {
		w += g.hud.Width()
	}
	return w, s.H * g.scale
}

func (g *Game) sceneWidth() int {
	return g.sess.Scene.Size().W * g.scale
}
