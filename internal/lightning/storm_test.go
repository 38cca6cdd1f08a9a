package lightning

import (
	"image/color"
	"math"
	"testing"
	"time"

	"seasonfx/internal/core"
	"seasonfx/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietConfig disables the automatic strikes and pushes the mount strike far
// out so tests only see the strikes they trigger.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.AutoInterval = 0
	cfg.MountDelay = time.Hour
	return cfg
}

func attachedStorm(t *testing.T, cfg Config) (*Storm, *render.Recorder) {
	t.Helper()
	s := NewStorm(cfg)
	rec := render.NewRecorder(800, 600)
	s.Attach(rec)
	t.Cleanup(s.Close)
	return s, rec
}

func TestStrikeWithoutSurfaceIsNoop(t *testing.T) {
	s := NewStorm(DefaultConfig())
	s.Strike(100, 100)
	s.StrikeCenter()
	s.Update(10 * time.Second)

	assert.Zero(t, s.Strikes())
	assert.Zero(t, s.Bolts())
	assert.Zero(t, s.sched.Pending())
}

func TestStrikeFiresStaggeredBurst(t *testing.T) {
	cfg := quietConfig()
	cfg.BoltsMin, cfg.BoltsMax = 7, 7
	s, _ := attachedStorm(t, cfg)

	var indices []int
	s.OnBolt(func(b Bolt) { indices = append(indices, b.Index) })

	s.Strike(400, 300)
	assert.Equal(t, 1, s.Strikes())

	s.Update(0)
	assert.Equal(t, 1, s.Bolts())
	s.Update(99 * time.Millisecond)
	assert.Equal(t, 1, s.Bolts())
	s.Update(time.Millisecond)
	assert.Equal(t, 2, s.Bolts())
	s.Update(500 * time.Millisecond)
	assert.Equal(t, 7, s.Bolts())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, indices)
}

func TestBurstSizeStaysInRange(t *testing.T) {
	cfg := quietConfig()
	for seed := int64(1); seed <= 30; seed++ {
		cfg.Seed = seed
		s, _ := attachedStorm(t, cfg)
		s.Strike(10, 10)
		s.Update(time.Second)
		assert.GreaterOrEqual(t, s.Bolts(), cfg.BoltsMin)
		assert.LessOrEqual(t, s.Bolts(), cfg.BoltsMax)
	}
}

func TestBoltEndpointsFollowStrikePoint(t *testing.T) {
	cfg := quietConfig()
	s, rec := attachedStorm(t, cfg)

	var bolts []Bolt
	s.OnBolt(func(b Bolt) { bolts = append(bolts, b) })
	for i := 0; i < 10; i++ {
		s.Strike(400, 300)
		s.Update(2 * time.Second)
	}

	require.NotEmpty(t, bolts)
	for _, b := range bolts {
		assert.Zero(t, b.Start.Y)
		assert.GreaterOrEqual(t, b.Start.X, 0.0)
		assert.Less(t, b.Start.X, float64(rec.W))
		assert.LessOrEqual(t, math.Abs(b.End.X-400), cfg.JitterX)
		assert.LessOrEqual(t, math.Abs(b.End.Y-300), float64(rec.H)/2)
		assert.NotZero(t, b.Segments)
		assert.Equal(t, core.Size{W: 800, H: 600}, b.Surface)
	}
}

func TestFlashThenFadeClears(t *testing.T) {
	cfg := quietConfig()
	cfg.BoltsMin, cfg.BoltsMax = 1, 1
	s, rec := attachedStorm(t, cfg)

	s.Strike(400, 300)
	s.Update(0)
	require.Equal(t, 1, s.Bolts())
	assert.Equal(t, 1, rec.Clears)
	require.Len(t, rec.Fills, 2)
	assert.Equal(t, cfg.FlashWhite, rec.Fills[0])
	assert.Equal(t, cfg.FlashBlue, rec.Fills[1])
	assert.NotEmpty(t, rec.Strokes)
	assert.Equal(t, 1, s.Active())

	s.Update(cfg.FadeDuration)
	assert.Zero(t, s.Active())

	// One repaint per step except the last, which only clears.
	washes := rec.Fills[2:]
	require.Len(t, washes, cfg.FadeSteps-1)
	prev := cfg.FlashBlue.A
	for _, w := range washes {
		c := w.(color.NRGBA)
		assert.Equal(t, cfg.FlashBlue.R, c.R)
		assert.LessOrEqual(t, c.A, prev)
		prev = c.A
	}
	assert.Equal(t, uint8(97), washes[0].(color.NRGBA).A)
	assert.Equal(t, 1+cfg.FadeSteps, rec.Clears)

	s.Update(time.Second)
	assert.Equal(t, 1+cfg.FadeSteps, rec.Clears)
}

func TestMountStrikeAndAutoInterval(t *testing.T) {
	s, _ := attachedStorm(t, DefaultConfig())

	s.Update(99 * time.Millisecond)
	assert.Zero(t, s.Strikes())
	s.Update(time.Millisecond)
	assert.Equal(t, 1, s.Strikes())

	s.Update(7899 * time.Millisecond)
	assert.Equal(t, 1, s.Strikes())
	s.Update(time.Millisecond)
	assert.Equal(t, 2, s.Strikes())
	s.Update(6 * time.Second)
	assert.Equal(t, 3, s.Strikes())
}

func TestResizeDebouncesCentreStrike(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoInterval = 0
	s, rec := attachedStorm(t, cfg)

	var targets []core.Point
	s.OnBolt(func(b Bolt) { targets = append(targets, b.End) })

	s.Update(50 * time.Millisecond)
	rec.W, rec.H = 1000, 200
	s.Resize(1000, 200)
	s.Update(60 * time.Millisecond)
	assert.Zero(t, s.Strikes())

	s.Update(40 * time.Millisecond)
	assert.Equal(t, 1, s.Strikes())

	s.Update(time.Second)
	require.NotEmpty(t, targets)
	for _, p := range targets {
		assert.InDelta(t, 500, p.X, cfg.JitterX)
		assert.InDelta(t, 100, p.Y, 100)
	}
}

func TestResizeStrikeAimsAtSurfaceSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoInterval = 0
	s, rec := attachedStorm(t, cfg)

	var targets []core.Point
	s.OnBolt(func(b Bolt) { targets = append(targets, b.End) })

	s.Update(time.Second)
	targets = nil
	rec.W, rec.H = 1000, 200
	s.Resize(0, 0)
	s.Update(time.Second)
	require.NotEmpty(t, targets)
	for _, p := range targets {
		assert.InDelta(t, 500, p.X, cfg.JitterX)
	}
}

func TestDetachCancelsEverything(t *testing.T) {
	s, _ := attachedStorm(t, DefaultConfig())
	s.Update(100 * time.Millisecond)
	require.Equal(t, 1, s.Strikes())

	s.Attach(nil)
	assert.Zero(t, s.sched.Pending())
	assert.Zero(t, s.Active())

	s.Update(time.Minute)
	assert.Equal(t, 1, s.Strikes())
	s.StrikeCenter()
	assert.Equal(t, 1, s.Strikes())
}

func TestCloseStopsFades(t *testing.T) {
	cfg := quietConfig()
	s, rec := attachedStorm(t, cfg)
	s.Strike(1, 1)
	s.Update(0)
	require.Equal(t, 1, s.Active())

	s.Close()
	fills := len(rec.Fills)
	s.Update(time.Minute)
	assert.Zero(t, s.Active())
	assert.Len(t, rec.Fills, fills)
}

func TestResetIsDeterministic(t *testing.T) {
	s, rec := attachedStorm(t, DefaultConfig())
	var bolts []Bolt
	s.OnBolt(func(b Bolt) { bolts = append(bolts, b) })

	run := func() ([]Bolt, []render.Stroke) {
		bolts = nil
		rec.Reset()
		s.Reset(5)
		s.Update(time.Second)
		return bolts, rec.Strokes
	}
	firstBolts, firstStrokes := run()
	secondBolts, secondStrokes := run()

	require.NotEmpty(t, firstBolts)
	assert.Equal(t, firstBolts, secondBolts)
	assert.Equal(t, firstStrokes, secondStrokes)
}

func TestParameterSettersClampAndApply(t *testing.T) {
	s := NewStorm(DefaultConfig())
	assert.True(t, s.SetFloatParameter("straightness", 2))
	assert.Equal(t, 1.0, s.Config().Straightness)
	assert.False(t, s.SetFloatParameter("nope", 1))

	var segs []Segment
	s.gen.Walk(core.Pt(0, 0), core.Pt(100, 0), 30, 0, func(seg Segment) { segs = append(segs, seg) })
	for _, seg := range segs {
		if seg.Level == 0 {
			assert.Zero(t, seg.A.Y)
		}
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"color":         "#ff0000",
		"color_alpha":   "1",
		"branch_chance": "0.25",
		"straightness":  "1.5",
		"bolts_min":     "9",
		"bolts_max":     "3",
		"fade_duration": "2s",
		"bolt_stagger":  "40",
		"fade_ease":     "bogus",
		"seed":          "77",
	})
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, cfg.Color)
	assert.Equal(t, 0.25, cfg.BranchChance)
	assert.Equal(t, DefaultConfig().Straightness, cfg.Straightness)
	assert.Equal(t, 9, cfg.BoltsMin)
	assert.Equal(t, 9, cfg.BoltsMax)
	assert.Equal(t, 2*time.Second, cfg.FadeDuration)
	assert.Equal(t, 40*time.Millisecond, cfg.BoltStagger)
	assert.Equal(t, "linear", cfg.FadeEase)
	assert.Equal(t, int64(77), cfg.Seed)

	assert.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestFromMapRejectsVanishingThicknessFloor(t *testing.T) {
	def := DefaultConfig().ThicknessFloor
	for _, v := range []string{"0", "-1", "1e-300", "0.49"} {
		cfg := FromMap(map[string]string{"thickness_floor": v})
		assert.Equal(t, def, cfg.ThicknessFloor, "thickness_floor=%s", v)
	}
	assert.Equal(t, 0.5, FromMap(map[string]string{"thickness_floor": "0.5"}).ThicknessFloor)
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Effects()["lightning"]
	require.True(t, ok)
	e := factory(map[string]string{"bolts_min": "2"})
	require.IsType(t, &Storm{}, e)
	assert.Equal(t, "lightning", e.Name())
	assert.Equal(t, 2, e.(*Storm).Config().BoltsMin)
}
