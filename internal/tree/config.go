package tree

import (
	"math"

	"seasonfx/internal/core"
)

// ColorMode selects how branch fill colours are derived.
type ColorMode string

const (
	// ColorByThickness ramps from a dark brown trunk to green twigs.
	ColorByThickness ColorMode = "thickness"
	// ColorByHue uses the configured hue with each branch's lightness.
	ColorByHue ColorMode = "hue"
)

// Params holds the shape constants of a growth run.
type Params struct {
	Magnitude      float64
	Thickness      float64
	Lightness      float64
	SmallestBranch float64
	MaximumBend    float64

	ChildMagnitudeMin float64
	ChildMagnitudeMax float64
	ThicknessDecay    float64
	LightnessDecay    float64
	TipTaper          float64

	SproutsMin int
	SproutsMax int
	// MaxBranches stops sprouting once the tree holds this many branches.
	MaxBranches int
}

// minSmallestBranch is the lowest accepted sprouting cutoff, in pixels.
const minSmallestBranch = 1.0

// Config controls the tree effect.
type Config struct {
	// Width and Height pin the surface size. Zero tracks the viewport.
	Width  int
	Height int

	Hue          float64
	AutoStart    bool
	GrowthRate   float64
	ShowControls bool
	ColorMode    ColorMode

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Hue:        120,
		AutoStart:  true,
		GrowthRate: 7,
		ColorMode:  ColorByThickness,
		Seed:       1,
		Params: Params{
			Magnitude:         230,
			Thickness:         30,
			Lightness:         50,
			SmallestBranch:    40,
			MaximumBend:       math.Pi / 2,
			ChildMagnitudeMin: 0.7,
			ChildMagnitudeMax: 0.9,
			ThicknessDecay:    0.6,
			LightnessDecay:    0.9,
			TipTaper:          0.8,
			SproutsMin:        1,
			SproutsMax:        4,
			MaxBranches:       20000,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.MapInt(cfg, "w", &c.Width, core.NonNegative[int])
	core.MapInt(cfg, "h", &c.Height, core.NonNegative[int])
	core.MapFloat(cfg, "hue", &c.Hue, func(v float64) bool { return v >= 0 && v < 360 })
	core.MapBool(cfg, "auto_start", &c.AutoStart)
	core.MapFloat(cfg, "growth_rate", &c.GrowthRate, core.Positive[float64])
	core.MapBool(cfg, "show_controls", &c.ShowControls)
	if v, ok := cfg["color_mode"]; ok {
		switch ColorMode(v) {
		case ColorByThickness, ColorByHue:
			c.ColorMode = ColorMode(v)
		}
	}
	core.MapInt64(cfg, "seed", &c.Seed)

	p := &c.Params
	core.MapFloat(cfg, "magnitude", &p.Magnitude, core.Positive[float64])
	core.MapFloat(cfg, "thickness", &p.Thickness, core.Positive[float64])
	core.MapFloat(cfg, "lightness", &p.Lightness, func(v float64) bool { return v >= 0 && v <= 100 })
	core.MapFloat(cfg, "smallest_branch", &p.SmallestBranch, func(v float64) bool { return v >= minSmallestBranch })
	bend := -1.0
	core.MapFloat(cfg, "maximum_bend", &bend, func(v float64) bool { return v >= 0 && v <= 360 })
	if bend >= 0 {
		p.MaximumBend = bend * math.Pi / 180
	}
	core.MapInt(cfg, "sprouts_min", &p.SproutsMin, core.NonNegative[int])
	core.MapInt(cfg, "sprouts_max", &p.SproutsMax, core.NonNegative[int])
	if p.SproutsMax < p.SproutsMin {
		p.SproutsMax = p.SproutsMin
	}
	core.MapInt(cfg, "max_branches", &p.MaxBranches, core.Positive[int])
	return c
}
