package tree

import (
	"math"
	"testing"
	"time"

	"seasonfx/internal/core"
	"seasonfx/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func manualConfig() Config {
	cfg := DefaultConfig()
	cfg.AutoStart = false
	cfg.Seed = 7
	return cfg
}

func TestPlantTrunkFinishesAfterCeilTicks(t *testing.T) {
	g := New(manualConfig())
	g.Plant(core.Pt(100, 200))

	require.Len(t, g.Branches(), 1)
	trunk := g.Branches()[0]
	assert.Equal(t, core.Pt(100, 200), trunk.Origin)
	assert.Equal(t, trunk.Origin, trunk.Tip)
	sprouts := trunk.Sprouts
	require.GreaterOrEqual(t, sprouts, 1)
	require.LessOrEqual(t, sprouts, 4)

	want := int(math.Ceil(230.0 / 7.0))
	for i := 1; i < want; i++ {
		g.Tick()
		require.False(t, g.Branches()[0].Done, "trunk finished early at tick %d", i)
	}
	g.Tick()

	branches := g.Branches()
	require.True(t, branches[0].Done)
	assert.Equal(t, 0, branches[0].Sprouts)
	assert.InDelta(t, 230, branches[0].Length(), 1e-9)
	require.Len(t, branches, 1+sprouts)
	for _, child := range branches[1:] {
		assert.GreaterOrEqual(t, child.Magnitude, 161.0)
		assert.LessOrEqual(t, child.Magnitude, 207.0)
		assert.Equal(t, branches[0].Tip, child.Origin)
		assert.Equal(t, child.Origin, child.Tip)
		assert.False(t, child.Done)
	}
}

func TestGrowthAdvancesByRateUntilMagnitude(t *testing.T) {
	cfg := manualConfig()
	cfg.Params.Magnitude = 50
	cfg.GrowthRate = 7
	g := New(cfg)
	g.Plant(core.Pt(0, 0))

	prev := 0.0
	for tick := 1; !g.Branches()[0].Done; tick++ {
		g.Tick()
		length := g.Branches()[0].Length()
		require.GreaterOrEqual(t, length, prev)
		require.LessOrEqual(t, length, 50.0)
		if !g.Branches()[0].Done {
			require.InDelta(t, float64(tick)*7, length, 1e-9)
		}
		prev = length
	}
	assert.Equal(t, 8, g.Ticks())
}

func TestGrowthFollowsTheta(t *testing.T) {
	b := Branch{Origin: core.Pt(10, 10), Tip: core.Pt(10, 10), Theta: math.Pi / 2, Magnitude: 100}
	b.grow(5)
	assert.InDelta(t, 15, b.Tip.X, 1e-9)
	assert.InDelta(t, 10, b.Tip.Y, 1e-9)

	up := Branch{Origin: core.Pt(0, 0), Tip: core.Pt(0, 0), Magnitude: 100}
	up.grow(5)
	assert.InDelta(t, -5, up.Tip.Y, 1e-9, "angle zero grows toward smaller y")
}

func TestShortBranchNeverSprouts(t *testing.T) {
	cfg := manualConfig()
	cfg.Params.Magnitude = 39
	g := New(cfg)
	g.Plant(core.Pt(50, 50))
	require.Greater(t, g.Branches()[0].Sprouts, 0)

	for i := 0; i < 10; i++ {
		g.Tick()
	}
	require.True(t, g.Branches()[0].Done)
	assert.Len(t, g.Branches(), 1)
	assert.False(t, g.Growing())
}

func TestChildrenInheritScaledTraits(t *testing.T) {
	cfg := manualConfig()
	cfg.Seed = 42
	g := New(cfg)
	g.Plant(core.Pt(400, 600))
	runToCompletion(t, g)

	branches := g.Branches()
	require.Greater(t, len(branches), 1)
	for _, child := range branches[1:] {
		parent, ok := findParent(branches, child)
		require.True(t, ok, "no parent for branch rooted at %+v", child.Origin)
		assert.Equal(t, parent.Thickness*0.6, child.Thickness)
		assert.Equal(t, parent.Lightness*0.9, child.Lightness)
		assert.GreaterOrEqual(t, child.Magnitude, parent.Magnitude*0.7)
		assert.LessOrEqual(t, child.Magnitude, parent.Magnitude*0.9)
		assert.LessOrEqual(t, math.Abs(child.Theta-parent.Theta), math.Pi/4)
		assert.GreaterOrEqual(t, parent.Magnitude, cfg.Params.SmallestBranch)
	}
}

func TestFreshChildSproutCountInRange(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := manualConfig()
		cfg.Seed = seed
		g := New(cfg)
		g.Plant(core.Pt(0, 0))
		for !g.Branches()[0].Done {
			g.Tick()
		}
		for _, child := range g.Branches()[1:] {
			require.GreaterOrEqual(t, child.Sprouts, 1)
			require.LessOrEqual(t, child.Sprouts, 4)
		}
	}
}

func TestScriptedSproutValues(t *testing.T) {
	cfg := manualConfig()
	cfg.Params.Magnitude = 100
	cfg.GrowthRate = 100
	g := New(cfg)
	g.SetSource(&scriptedSource{vals: []float64{0.5}})
	g.Plant(core.Pt(0, 0))
	require.Equal(t, 3, g.Branches()[0].Sprouts)

	g.Tick()
	branches := g.Branches()
	require.Len(t, branches, 4)
	for _, child := range branches[1:] {
		assert.InDelta(t, 0, child.Theta, 1e-12)
		assert.InDelta(t, 80, child.Magnitude, 1e-9)
		assert.InDelta(t, 18, child.Thickness, 1e-12)
		assert.InDelta(t, 45, child.Lightness, 1e-12)
		assert.Equal(t, 3, child.Sprouts)
	}
}

func TestGrowthTerminates(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		cfg := manualConfig()
		cfg.Seed = seed
		g := New(cfg)
		g.Plant(core.Pt(500, 1000))
		runToCompletion(t, g)
		for _, b := range g.Branches() {
			require.True(t, b.Done)
		}
	}
}

func TestTickAfterCompletionIsNoop(t *testing.T) {
	cfg := manualConfig()
	cfg.Params.Magnitude = 20
	g := New(cfg)
	g.Plant(core.Pt(0, 0))
	runToCompletion(t, g)
	ticks := g.Ticks()
	g.Tick()
	assert.Equal(t, ticks, g.Ticks())
}

func TestAttachAutoStartsAtBottomCentre(t *testing.T) {
	g := New(DefaultConfig())
	rec := render.NewRecorder(300, 200)
	g.Attach(rec)

	require.Len(t, g.Branches(), 1)
	assert.Equal(t, core.Pt(150, 200), g.Branches()[0].Origin)
	assert.True(t, g.Growing())

	g.Update(16 * time.Millisecond)
	assert.Equal(t, 1, g.Ticks())
	assert.Equal(t, 1, rec.Clears)
	assert.Len(t, rec.Paths, len(g.Branches()))
}

func TestRegrowWithoutSurfaceIsNoop(t *testing.T) {
	g := New(manualConfig())
	g.Regrow()
	assert.Empty(t, g.Branches())
	assert.False(t, g.Growing())
}

func TestReplantCancelsPendingFrame(t *testing.T) {
	g := New(manualConfig())
	g.Attach(render.NewRecorder(100, 100))
	g.Regrow()
	g.Update(time.Millisecond)
	g.Update(time.Millisecond)
	require.Equal(t, 2, g.Ticks())

	g.Regrow()
	g.Regrow()
	assert.Equal(t, 1, g.sched.Pending(), "only the newest run may hold a frame")
	g.Update(time.Millisecond)
	assert.Equal(t, 1, g.Ticks())
	assert.InDelta(t, 7, g.Branches()[0].Length(), 1e-9)
}

func TestLoopStopsSchedulingWhenDone(t *testing.T) {
	cfg := manualConfig()
	cfg.Params.Magnitude = 14
	g := New(cfg)
	g.Attach(render.NewRecorder(100, 100))
	g.Regrow()
	g.Update(time.Millisecond)
	g.Update(time.Millisecond)
	assert.False(t, g.Growing())
	assert.Equal(t, 0, g.sched.Pending())

	g.Update(time.Millisecond)
	assert.Equal(t, 2, g.Ticks())
}

func TestResizeKeepsAnchoredTreeAtBottomCentre(t *testing.T) {
	g := New(DefaultConfig())
	rec := render.NewRecorder(200, 100)
	g.Attach(rec)
	for i := 0; i < 5; i++ {
		g.Update(time.Millisecond)
	}
	before := g.Branches()[0]

	rec.W, rec.H = 400, 300
	g.Resize(400, 300)

	after := g.Branches()[0]
	assert.Equal(t, core.Pt(200, 300), after.Origin)
	assert.InDelta(t, before.Length(), after.Length(), 1e-9)
	assert.Equal(t, 5, g.Ticks())
	assert.True(t, g.Growing())
}

func TestResizeLeavesExplicitPlantInPlace(t *testing.T) {
	g := New(manualConfig())
	rec := render.NewRecorder(200, 100)
	g.Attach(rec)
	g.Plant(core.Pt(20, 30))

	rec.W, rec.H = 400, 300
	g.Resize(400, 300)
	assert.Equal(t, core.Pt(20, 30), g.Branches()[0].Origin)
}

func TestResizeReadsSizeFromSurface(t *testing.T) {
	g := New(DefaultConfig())
	rec := render.NewRecorder(200, 100)
	g.Attach(rec)

	rec.W, rec.H = 400, 300
	g.Resize(0, 0)
	assert.Equal(t, core.Pt(200, 300), g.Branches()[0].Origin)
}

func TestCloseCancelsGrowth(t *testing.T) {
	g := New(DefaultConfig())
	g.Attach(render.NewRecorder(100, 100))
	g.Close()
	g.Update(time.Millisecond)
	assert.Equal(t, 0, g.Ticks())
}

func TestResetReplantsDeterministically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Magnitude = 120
	g := New(cfg)
	g.Attach(render.NewRecorder(640, 480))
	g.Reset(99)
	runFrames(g, 200)
	first := append([]Branch(nil), g.Branches()...)

	g.Reset(99)
	runFrames(g, 200)
	assert.Equal(t, first, g.Branches())
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"hue":          "200",
		"growth_rate":  "3.5",
		"auto_start":   "false",
		"color_mode":   "hue",
		"maximum_bend": "45",
		"magnitude":    "-3",
		"sprouts_min":  "5",
		"sprouts_max":  "2",
	})
	assert.Equal(t, 200.0, cfg.Hue)
	assert.Equal(t, 3.5, cfg.GrowthRate)
	assert.False(t, cfg.AutoStart)
	assert.Equal(t, ColorByHue, cfg.ColorMode)
	assert.InDelta(t, math.Pi/4, cfg.Params.MaximumBend, 1e-12)
	assert.Equal(t, 230.0, cfg.Params.Magnitude, "invalid values keep defaults")
	assert.Equal(t, 5, cfg.Params.SproutsMax)
}

func TestFromMapRejectsVanishingSmallestBranch(t *testing.T) {
	def := DefaultConfig().Params
	for _, v := range []string{"0", "-5", "0.5", "1e-300"} {
		cfg := FromMap(map[string]string{"smallest_branch": v})
		assert.Equal(t, def.SmallestBranch, cfg.Params.SmallestBranch, "smallest_branch=%s", v)
	}
	assert.Equal(t, 1.0, FromMap(map[string]string{"smallest_branch": "1"}).Params.SmallestBranch)
	assert.Equal(t, def.MaxBranches, FromMap(map[string]string{"max_branches": "0"}).Params.MaxBranches)
}

func TestMaxBranchesStopsSprouting(t *testing.T) {
	cfg := manualConfig()
	cfg.Params.SmallestBranch = 1
	cfg.Params.MaxBranches = 300
	g := New(cfg)
	g.Plant(core.Pt(500, 1000))
	runToCompletion(t, g)

	assert.Len(t, g.Branches(), 300)
	for _, b := range g.Branches() {
		require.True(t, b.Done)
	}
}

func TestHueParameterIsClamped(t *testing.T) {
	g := New(manualConfig())
	require.True(t, g.SetFloatParameter("hue", 400))
	assert.Equal(t, 359.0, g.Config().Hue)
	require.True(t, g.SetIntParameter("growth_rate", 0))
	assert.Equal(t, 1.0, g.Config().GrowthRate)
	assert.False(t, g.SetFloatParameter("unknown", 1))

	p, ok := g.Parameters().Lookup("hue")
	require.True(t, ok)
	assert.Equal(t, "359", p.Value)
}

func TestRegisteredInEffectRegistry(t *testing.T) {
	factory, ok := core.Effects()["tree"]
	require.True(t, ok)
	assert.Equal(t, "tree", factory(nil).Name())
}

func runToCompletion(t *testing.T, g *Grower) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if !g.Growing() {
			return
		}
		g.Tick()
	}
	t.Fatalf("tree still growing after 10000 ticks with %d branches", len(g.Branches()))
}

func runFrames(g *Grower, n int) {
	for i := 0; i < n; i++ {
		g.Update(16 * time.Millisecond)
	}
}

func findParent(branches []Branch, child Branch) (Branch, bool) {
	for _, b := range branches {
		if b.Done && b.Tip == child.Origin && b.Thickness*0.6 == child.Thickness {
			return b, true
		}
	}
	return Branch{}, false
}
