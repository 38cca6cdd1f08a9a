package render

import (
	"image/color"

	"seasonfx/internal/core"
)

// Stroke is one StrokeLine call captured by a Recorder.
type Stroke struct {
	A, B  core.Point
	Width float64
	Color color.Color
}

// FilledPath is one FillPath call captured by a Recorder.
type FilledPath struct {
	Cmds  []core.PathCmd
	Color color.Color
}

// Recorder is a Surface that remembers draw calls instead of producing
// pixels. It is used by tests and by tooling that inspects effect output.
type Recorder struct {
	W, H int

	Clears  int
	Fills   []color.Color
	Strokes []Stroke
	Paths   []FilledPath
}

// NewRecorder returns a Recorder reporting the given size.
func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

// Size reports the configured dimensions.
func (r *Recorder) Size() core.Size { return core.Size{W: r.W, H: r.H} }

// Clear counts the call.
func (r *Recorder) Clear() { r.Clears++ }

// Fill records the wash colour.
func (r *Recorder) Fill(c color.Color) { r.Fills = append(r.Fills, c) }

// StrokeLine records the segment.
func (r *Recorder) StrokeLine(a, b core.Point, width float64, c color.Color) {
	r.Strokes = append(r.Strokes, Stroke{A: a, B: b, Width: width, Color: c})
}

// FillPath records a copy of the outline.
func (r *Recorder) FillPath(p *core.Path, c color.Color) {
	if p == nil {
		return
	}
	cmds := append([]core.PathCmd(nil), p.Cmds...)
	r.Paths = append(r.Paths, FilledPath{Cmds: cmds, Color: c})
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Clears = 0
	r.Fills = nil
	r.Strokes = nil
	r.Paths = nil
}
