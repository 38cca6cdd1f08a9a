package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"seasonfx/internal/core"

	"golang.org/x/image/vector"
)

// capSegments is the number of quadratic arcs used to approximate a round cap.
const capSegments = 8

// Raster is a Surface backed by an in-memory RGBA image. Shapes are
// anti-aliased with golang.org/x/image/vector and composited with draw.Over.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewRaster allocates a transparent raster of the given size.
func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

// Resize reallocates the backing image. Existing content is discarded.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if r.img != nil && r.img.Rect.Dx() == w && r.img.Rect.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
}

// Image exposes the backing image. Pixels are premultiplied RGBA.
func (r *Raster) Image() *image.RGBA { return r.img }

// Size reports the current dimensions.
func (r *Raster) Size() core.Size {
	return core.Size{W: r.img.Rect.Dx(), H: r.img.Rect.Dy()}
}

// Clear resets every pixel to transparent.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// Fill composites c over the whole raster.
func (r *Raster) Fill(c color.Color) {
	if r.Size().Empty() {
		return
	}
	draw.Draw(r.img, r.img.Rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeLine draws a round-capped segment of the given width.
func (r *Raster) StrokeLine(a, b core.Point, width float64, c color.Color) {
	if r.Size().Empty() || width <= 0 {
		return
	}
	var p core.Path
	appendStroke(&p, a, b, width/2)
	r.FillPath(&p, c)
}

// FillPath fills p with c.
func (r *Raster) FillPath(p *core.Path, c color.Color) {
	size := r.Size()
	if size.Empty() || p == nil || len(p.Cmds) == 0 {
		return
	}
	r.z.Reset(size.W, size.H)
	r.z.DrawOp = draw.Over
	for _, cmd := range p.Cmds {
		switch cmd.Op {
		case core.PathMoveTo:
			r.z.MoveTo(f32(cmd.To.X), f32(cmd.To.Y))
		case core.PathLineTo:
			r.z.LineTo(f32(cmd.To.X), f32(cmd.To.Y))
		case core.PathQuadTo:
			r.z.QuadTo(f32(cmd.Ctrl.X), f32(cmd.Ctrl.Y), f32(cmd.To.X), f32(cmd.To.Y))
		case core.PathClose:
			r.z.ClosePath()
		}
	}
	r.z.Draw(r.img, r.img.Rect, image.NewUniform(c), image.Point{})
}

// appendStroke outlines a capsule around a-b. Every sub-path is wound the same
// way so overlapping coverage accumulates instead of cancelling.
func appendStroke(p *core.Path, a, b core.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length > 1e-9 {
		nx, ny := -dy/length*hw, dx/length*hw
		quad := []core.Point{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		}
		if signedArea(quad) < 0 {
			quad[1], quad[3] = quad[3], quad[1]
		}
		p.MoveTo(quad[0])
		for _, q := range quad[1:] {
			p.LineTo(q)
		}
		p.Close()
	}
	appendCircle(p, a, hw)
	if length > 1e-9 {
		appendCircle(p, b, hw)
	}
}

func appendCircle(p *core.Path, c core.Point, radius float64) {
	step := 2 * math.Pi / capSegments
	ctrlR := radius / math.Cos(step/2)
	p.MoveTo(core.Point{X: c.X + radius, Y: c.Y})
	for i := 1; i <= capSegments; i++ {
		mid := (float64(i) - 0.5) * step
		end := float64(i) * step
		p.QuadTo(
			core.Point{X: c.X + ctrlR*math.Cos(mid), Y: c.Y + ctrlR*math.Sin(mid)},
			core.Point{X: c.X + radius*math.Cos(end), Y: c.Y + radius*math.Sin(end)},
		)
	}
	p.Close()
}

func signedArea(pts []core.Point) float64 {
	var sum float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func f32(v float64) float32 { return float32(v) }
