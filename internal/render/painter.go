//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImagePainter uploads a raster into a GPU image and draws it.
type ImagePainter struct {
	w, h int
	img  *ebiten.Image
}

// NewImagePainter allocates a painter for rasters of size w*h.
func NewImagePainter(w, h int) *ImagePainter {
	p := &ImagePainter{}
	p.ensure(w, h)
	return p
}

// Blit uploads src and draws it onto dst at the given scale.
func (p *ImagePainter) Blit(dst *ebiten.Image, src *image.RGBA, scale float64) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 || src.Stride != 4*w {
		return
	}
	p.ensure(w, h)
	p.img.WritePixels(src.Pix)

	op := &ebiten.DrawImageOptions{}
	if scale > 0 && scale != 1 {
		op.GeoM.Scale(scale, scale)
	}
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *ImagePainter) Size() (int, int) { return p.w, p.h }

func (p *ImagePainter) ensure(w, h int) {
	if p.img != nil && p.w == w && p.h == h {
		return
	}
	if p.img != nil {
		p.img.Deallocate()
	}
	p.w, p.h = w, h
	if w > 0 && h > 0 {
		p.img = ebiten.NewImage(w, h)
	}
}
