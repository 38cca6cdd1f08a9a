package tree

import (
	"time"

	"seasonfx/internal/core"
)

// Grower grows a procedural tree one frame at a time. It is the sole owner
// of its branch collection and of the surface it draws on.
type Grower struct {
	cfg Config

	rng *core.RNG
	src core.Source

	surface core.Surface
	sched   *core.Scheduler
	frame   core.TimerID

	branches []Branch
	growing  bool
	ticks    int

	// anchored is set when the tree was planted at the surface's bottom
	// centre and should follow it across resizes.
	anchored bool
	anchor   core.Point

	path core.Path
}

// New returns a Grower using the provided configuration.
func New(cfg Config) *Grower {
	if cfg.GrowthRate <= 0 {
		cfg.GrowthRate = DefaultConfig().GrowthRate
	}
	rng := core.NewRNG(cfg.Seed)
	return &Grower{
		cfg:   cfg,
		rng:   rng,
		src:   rng,
		sched: core.NewScheduler(),
	}
}

// Name returns the effect identifier.
func (g *Grower) Name() string { return "tree" }

// Config returns the active configuration.
func (g *Grower) Config() Config { return g.cfg }

// SetSource replaces the random source used for sprouting.
func (g *Grower) SetSource(src core.Source) {
	if src == nil {
		src = g.rng
	}
	g.src = src
}

// FixedSize reports the pinned surface size; zero dimensions track the viewport.
func (g *Grower) FixedSize() (int, int) { return g.cfg.Width, g.cfg.Height }

// Branches exposes the branch collection. Callers must not modify it.
func (g *Grower) Branches() []Branch { return g.branches }

// Growing reports whether any branch is still unfinished.
func (g *Grower) Growing() bool { return g.growing }

// Ticks reports how many ticks the current run has taken.
func (g *Grower) Ticks() int { return g.ticks }

// Reset reseeds the random source and discards the current tree. With
// AutoStart a fresh tree is planted straight away.
func (g *Grower) Reset(seed int64) {
	if seed == 0 {
		seed = g.cfg.Seed
	}
	g.rng.Seed(seed)
	g.cancelFrame()
	g.branches = nil
	g.growing = false
	g.ticks = 0
	g.anchored = false
	if g.cfg.AutoStart {
		g.Regrow()
	}
	g.redraw()
}

// Attach mounts the grower on s. The first mount starts growth when
// AutoStart is set.
func (g *Grower) Attach(s core.Surface) {
	g.surface = s
	if s == nil {
		return
	}
	if g.cfg.AutoStart && len(g.branches) == 0 {
		g.Regrow()
		return
	}
	g.redraw()
}

// Resize keeps an anchored tree at the bottom centre of the resized surface
// and redraws it. A run in progress continues where it was. The new size is
// read from the attached surface.
func (g *Grower) Resize(_, _ int) {
	if g.surface == nil {
		return
	}
	if g.anchored {
		next := bottomCentre(g.surface.Size())
		delta := next.Sub(g.anchor)
		for i := range g.branches {
			g.branches[i].translate(delta)
		}
		g.anchor = next
	}
	g.redraw()
}

// Update advances the grower's clock by dt, running at most one tick.
func (g *Grower) Update(dt time.Duration) {
	g.sched.Advance(dt)
}

// Close cancels the pending frame callback.
func (g *Grower) Close() {
	g.sched.Stop()
	g.frame = 0
}

// Plant replaces the current tree with a single trunk rooted at origin and
// starts growing it. A pending frame from an earlier run is cancelled first.
func (g *Grower) Plant(origin core.Point) {
	g.cancelFrame()
	p := g.cfg.Params
	g.branches = []Branch{g.newBranch(origin, p.Magnitude, p.Thickness, 0, p.Lightness)}
	g.anchored = false
	g.growing = true
	g.ticks = 0
	g.frame = g.sched.Frame(g.loop)
}

// Regrow plants a new tree at the bottom centre of the attached surface.
// Without a surface it does nothing.
func (g *Grower) Regrow() {
	if g.surface == nil {
		return
	}
	origin := bottomCentre(g.surface.Size())
	g.Plant(origin)
	g.anchored = true
	g.anchor = origin
}

// Tick advances every unfinished branch once, sprouts the branches that
// finished and redraws the whole tree.
func (g *Grower) Tick() {
	if len(g.branches) == 0 {
		g.growing = false
		return
	}
	if !g.growing {
		return
	}
	n := len(g.branches)
	for i := 0; i < n; i++ {
		if !g.branches[i].grow(g.cfg.GrowthRate) {
			continue
		}
		if g.branches[i].Magnitude >= g.cfg.Params.SmallestBranch {
			g.sprout(i)
		}
	}
	g.ticks++
	g.growing = false
	for i := range g.branches {
		if !g.branches[i].Done {
			g.growing = true
			break
		}
	}
	g.redraw()
}

func (g *Grower) loop() {
	g.frame = 0
	g.Tick()
	if g.growing {
		g.frame = g.sched.Frame(g.loop)
	}
}

func (g *Grower) cancelFrame() {
	if g.frame != 0 {
		g.sched.Cancel(g.frame)
		g.frame = 0
	}
}

// sprout spends the sprout budget of branch i, appending one child per unit.
// Children start at the parent's tip and are first advanced on the next tick.
// Once the tree holds MaxBranches branches the budget is dropped.
func (g *Grower) sprout(i int) {
	p := g.cfg.Params
	for g.branches[i].Sprouts > 0 {
		g.branches[i].Sprouts--
		if p.MaxBranches > 0 && len(g.branches) >= p.MaxBranches {
			continue
		}
		parent := g.branches[i]
		theta := parent.Theta + core.Between(g.src, -p.MaximumBend/2, p.MaximumBend/2)
		magnitude := parent.Magnitude * core.Between(g.src, p.ChildMagnitudeMin, p.ChildMagnitudeMax)
		child := g.newBranch(parent.Tip, magnitude, parent.Thickness*p.ThicknessDecay, theta, parent.Lightness*p.LightnessDecay)
		g.branches = append(g.branches, child)
	}
}

func (g *Grower) newBranch(origin core.Point, magnitude, thickness, theta, lightness float64) Branch {
	return Branch{
		Origin:    origin,
		Tip:       origin,
		Thickness: thickness,
		Theta:     theta,
		Magnitude: magnitude,
		Lightness: lightness,
		Sprouts:   core.IntBetween(g.src, g.cfg.Params.SproutsMin, g.cfg.Params.SproutsMax),
	}
}

func bottomCentre(s core.Size) core.Point {
	return core.Point{X: float64(s.W) / 2, Y: float64(s.H)}
}

func init() {
	core.Register("tree", func(cfg map[string]string) core.Effect {
		return New(FromMap(cfg))
	})
}
