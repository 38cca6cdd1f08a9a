package tree

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Thickness range over which the trunk-to-twig colour ramp is spread.
const (
	MaxThickness = 30.0
	MinThickness = 1.0
)

const (
	trunkHue       = 25.0
	twigHue        = 100.0
	trunkLightness = 0.20
	twigLightness  = 0.25
	rampSaturation = 0.5

	swatchSaturation = 0.7
)

// ThicknessColor maps a branch thickness onto the brown-to-green ramp.
// Thickness outside [MinThickness, MaxThickness] is clamped, never extrapolated.
func ThicknessColor(thickness float64) color.NRGBA {
	t := (MaxThickness - thickness) / (MaxThickness - MinThickness)
	t = min(1, max(0, t))
	hue := trunkHue + (twigHue-trunkHue)*t
	lightness := trunkLightness + (twigLightness-trunkLightness)*t
	return toNRGBA(colorful.Hsl(hue, rampSaturation, lightness))
}

// HueColor returns hsl(hue, 70%, lightness%), the colour family used by the
// hue slider swatch and the ColorByHue mode.
func HueColor(hue, lightness float64) color.NRGBA {
	l := min(100, max(0, lightness)) / 100
	return toNRGBA(colorful.Hsl(hue, swatchSaturation, l))
}

// Swatch is the preview colour for the configured hue.
func (g *Grower) Swatch() color.NRGBA { return HueColor(g.cfg.Hue, 50) }

func (g *Grower) branchColor(b Branch) color.NRGBA {
	if g.cfg.ColorMode == ColorByHue {
		return HueColor(g.cfg.Hue, b.Lightness)
	}
	return ThicknessColor(b.Thickness)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
