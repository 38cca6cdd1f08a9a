package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Compose paints background into dst and then composites every layer over it
// in order. Layers smaller than dst are anchored at the top-left corner.
func Compose(dst *image.RGBA, background color.Color, layers ...*image.RGBA) {
	if background != nil {
		draw.Draw(dst, dst.Rect, image.NewUniform(background), image.Point{}, draw.Src)
	} else {
		clear(dst.Pix)
	}
	for _, l := range layers {
		if l == nil {
			continue
		}
		draw.Draw(dst, dst.Rect, l, l.Rect.Min, draw.Over)
	}
}
