package term

import (
	"image"
	"image/color"
	"testing"

	"seasonfx/internal/core"
	"seasonfx/internal/lightning"
	"seasonfx/internal/scene"
	"seasonfx/internal/tree"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDrawUsesHalfBlocks(t *testing.T) {
	screen := simScreen(t, 4, 2)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	Draw(screen, img)

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, HalfBlock, r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), bg)

	_, _, style, _ = screen.GetContent(3, 1)
	fg, bg, _ = style.Decompose()
	assert.Equal(t, tcell.ColorBlack, fg)
	assert.Equal(t, tcell.ColorBlack, bg)
}

func TestDrawClipsToImage(t *testing.T) {
	screen := simScreen(t, 6, 4)
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	Draw(screen, img)

	r, _, _, _ := screen.GetContent(1, 1)
	assert.Equal(t, HalfBlock, r)
	r, _, _, _ = screen.GetContent(4, 0)
	assert.NotEqual(t, HalfBlock, r)
	r, _, _, _ = screen.GetContent(0, 2)
	assert.NotEqual(t, HalfBlock, r)
}

func TestCellGeometry(t *testing.T) {
	screen := simScreen(t, 20, 10)
	w, h := FrameSize(screen)
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)

	x, y := CellToPixel(3, 4)
	assert.Equal(t, 3.5, x)
	assert.Equal(t, 8.5, y)
}

func TestCellColorUnpremultiplies(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), CellColor(color.RGBA{R: 128, A: 128}))
	assert.Equal(t, tcell.ColorBlack, CellColor(color.RGBA{}))
}

func newViewer(t *testing.T, effects ...string) (*Viewer, *scene.Scene, tcell.SimulationScreen) {
	t.Helper()
	screen := simScreen(t, 40, 20)
	sc, err := scene.Build(1, 1, effects, nil)
	require.NoError(t, err)
	t.Cleanup(sc.Close)
	return NewViewer(screen, sc, 60, color.Black, 3), sc, screen
}

func TestViewerSizesSceneToScreen(t *testing.T) {
	v, sc, screen := newViewer(t, "tree")
	assert.Equal(t, core.Size{W: 40, H: 40}, sc.Size())
	assert.Equal(t, image.Rect(0, 0, 40, 40), v.Frame().Rect)

	screen.SetSize(30, 8)
	assert.False(t, v.HandleEvent(tcell.NewEventResize(30, 8)))
	assert.Equal(t, core.Size{W: 30, H: 16}, sc.Size())
	assert.Equal(t, image.Rect(0, 0, 30, 16), v.Frame().Rect)
}

func TestViewerKeys(t *testing.T) {
	v, sc, _ := newViewer(t, "tree", "lightning")
	g := sc.Find("tree").(*tree.Grower)
	storm := sc.Find("lightning").(*lightning.Storm)

	for i := 0; i < 5; i++ {
		v.Tick()
	}
	require.Equal(t, 5, g.Ticks())

	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
	assert.Zero(t, g.Ticks())

	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone)))
	assert.Equal(t, 1, storm.Strikes())

	assert.False(t, v.HandleEvent(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, 2, storm.Strikes())
	assert.False(t, v.HandleEvent(tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone)))
	assert.Equal(t, 2, storm.Strikes())

	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, v.Paused())
	v.Tick()
	assert.Zero(t, g.Ticks())

	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestViewerTickDrawsFrame(t *testing.T) {
	v, _, screen := newViewer(t, "tree")
	for i := 0; i < 10; i++ {
		v.Tick()
	}
	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, HalfBlock, r)

	// The composed background is opaque black.
	black := tcell.NewRGBColor(0, 0, 0)
	painted := false
	w, h := screen.Size()
	for row := 0; row < h && !painted; row++ {
		for col := 0; col < w; col++ {
			_, _, style, _ := screen.GetContent(col, row)
			fg, bg, _ := style.Decompose()
			if fg != black || bg != black {
				painted = true
				break
			}
		}
	}
	assert.True(t, painted)
}
