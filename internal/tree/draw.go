package tree

import "seasonfx/internal/core"

// redraw clears the surface and paints every branch. Without a surface it
// does nothing.
func (g *Grower) redraw() {
	if g.surface == nil {
		return
	}
	g.surface.Clear()
	for _, b := range g.branches {
		g.path.Reset()
		branchOutline(&g.path, b, g.cfg.Params.TipTaper)
		g.surface.FillPath(&g.path, g.branchColor(b))
	}
}

// branchOutline traces a tapered quad: the base is 2*thickness wide, the tip
// 2*taper*thickness, and both long sides bow along a quadratic curve.
func branchOutline(p *core.Path, b Branch, taper float64) {
	w := b.Thickness
	oX1, oX2, oY := b.Origin.X-w, b.Origin.X+w, b.Origin.Y
	tX1, tX2, tY := b.Tip.X-w*taper, b.Tip.X+w*taper, b.Tip.Y
	cpY := (oY + tY + tY) / 3

	p.MoveTo(core.Pt(oX1, oY))
	p.QuadTo(core.Pt((oX1+oX1+tX1)/3, cpY), core.Pt(tX1, tY))
	p.LineTo(core.Pt(tX2, tY))
	p.QuadTo(core.Pt((oX2+oX2+tX2)/3, cpY), core.Pt(oX2, oY))
	p.Close()
}
