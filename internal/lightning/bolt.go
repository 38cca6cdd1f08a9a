package lightning

import (
	"seasonfx/internal/core"
)

// Segment is one straight piece of a bolt. Level is the branch nesting depth;
// segments at the walk's starting level form the main path.
type Segment struct {
	A, B  core.Point
	Width float64
	Level int
}

// Generator builds fractal bolts by recursive midpoint displacement.
type Generator struct {
	cfg     Config
	src     core.Source
	scratch []Segment
}

// NewGenerator returns a Generator drawing randomness from src.
func NewGenerator(cfg Config, src core.Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

// Walk emits the segments of one bolt from start to end in drawing order.
// Displacement halves on every subdivision, so recursion ends once it falls
// below ThicknessFloor; side branches start one level deeper and stop
// spawning at MaxBranchLevel. MaxSegments caps the leaves of the main path
// and of every side branch separately.
func (g *Generator) Walk(start, end core.Point, displacement float64, level int, visit func(Segment)) {
	if visit == nil {
		return
	}
	w := walker{g: g, visit: visit}
	leaves := 1
	w.walk(start, end, displacement, level, &leaves)
}

// GenerateBolt walks one bolt and strokes it onto dst: every halo first, then
// every core line. It returns the number of segments drawn. A nil surface
// draws nothing and consumes no randomness.
func (g *Generator) GenerateBolt(dst core.Surface, start, end core.Point, displacement float64, level int) int {
	if dst == nil {
		return 0
	}
	g.scratch = g.scratch[:0]
	g.Walk(start, end, displacement, level, func(s Segment) {
		g.scratch = append(g.scratch, s)
	})
	if g.cfg.GlowWidth > 0 && g.cfg.GlowColor.A > 0 {
		for _, s := range g.scratch {
			dst.StrokeLine(s.A, s.B, s.Width*g.cfg.GlowWidth, g.cfg.GlowColor)
		}
	}
	for _, s := range g.scratch {
		dst.StrokeLine(s.A, s.B, s.Width, g.cfg.Color)
	}
	return len(g.scratch)
}

type walker struct {
	g     *Generator
	visit func(Segment)
}

// walk subdivides one path. leaves counts that path's segments, including
// ones not yet emitted.
func (w *walker) walk(start, end core.Point, displacement float64, level int, leaves *int) {
	cfg := &w.g.cfg
	if displacement < cfg.ThicknessFloor || level > cfg.MaxBranchLevel || w.capped(*leaves) {
		w.visit(Segment{A: start, B: end, Width: displacement * 0.5, Level: level})
		return
	}
	*leaves++

	src := w.g.src
	bend := 1 - cfg.Straightness
	mid := start.Mid(end)
	mid.X += core.Jitter(src, displacement) * bend
	mid.Y += core.Jitter(src, displacement) * bend

	w.walk(start, mid, displacement/2, level, leaves)
	w.walk(mid, end, displacement/2, level, leaves)

	if level < cfg.MaxBranchLevel && src.Float64() < cfg.BranchChance {
		tip := core.Point{
			X: mid.X + core.Jitter(src, displacement),
			Y: mid.Y + core.Jitter(src, displacement),
		}
		branch := 1
		w.walk(mid, tip, displacement*cfg.BranchFactor, level+1, &branch)
	}
}

func (w *walker) capped(leaves int) bool {
	limit := w.g.cfg.MaxSegments
	return limit > 0 && leaves >= limit
}
