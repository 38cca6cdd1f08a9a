package core

import "image/color"

// Surface is the drawing context an effect paints into. Implementations must
// re-read their own dimensions on every call so a resize between frames is
// always honoured.
type Surface interface {
	Size() Size
	// Clear resets every pixel to fully transparent.
	Clear()
	// Fill composites c over the whole surface.
	Fill(c color.Color)
	// StrokeLine draws a round-capped segment from a to b.
	StrokeLine(a, b Point, width float64, c color.Color)
	// FillPath fills the closed outline described by p using the non-zero rule.
	FillPath(p *Path, c color.Color)
}

// PathOp enumerates the outline commands a Path can hold.
type PathOp uint8

const (
	PathMoveTo PathOp = iota
	PathLineTo
	PathQuadTo
	PathClose
)

// PathCmd is one outline command. Ctrl is only meaningful for PathQuadTo.
type PathCmd struct {
	Op   PathOp
	Ctrl Point
	To   Point
}

// Path accumulates an outline for FillPath.
type Path struct {
	Cmds []PathCmd
}

// MoveTo starts a new sub-path at p.
func (p *Path) MoveTo(to Point) { p.Cmds = append(p.Cmds, PathCmd{Op: PathMoveTo, To: to}) }

// LineTo adds a straight edge to p.
func (p *Path) LineTo(to Point) { p.Cmds = append(p.Cmds, PathCmd{Op: PathLineTo, To: to}) }

// QuadTo adds a quadratic Bézier edge with control point ctrl.
func (p *Path) QuadTo(ctrl, to Point) {
	p.Cmds = append(p.Cmds, PathCmd{Op: PathQuadTo, Ctrl: ctrl, To: to})
}

// Close closes the current sub-path.
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: PathClose}) }

// Reset drops all commands while keeping the backing storage.
func (p *Path) Reset() { p.Cmds = p.Cmds[:0] }
