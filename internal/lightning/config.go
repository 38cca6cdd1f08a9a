package lightning

import (
	"image/color"
	"strings"
	"time"

	"seasonfx/internal/core"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween/ease"
)

// Config holds the tunables of the lightning effect. All values are fixed
// for the lifetime of a Storm unless changed through the parameter setters.
type Config struct {
	Color     color.NRGBA
	GlowColor color.NRGBA
	// GlowWidth multiplies a segment's width for the halo stroke drawn under it.
	GlowWidth float64

	// ThicknessFloor is the displacement below which a segment is drawn
	// straight instead of subdivided.
	ThicknessFloor float64
	BranchChance   float64
	BranchFactor   float64
	// Straightness in [0, 1]; 1 removes all midpoint jitter.
	Straightness float64
	// MaxSegments caps the segments of each path of a bolt: the main path and
	// every side branch. Zero disables the cap.
	MaxSegments    int
	MaxBranchLevel int

	InitialDisplacement float64
	BoltsMin            int
	BoltsMax            int
	BoltStagger         time.Duration
	JitterX             float64

	FlashWhite   color.NRGBA
	FlashBlue    color.NRGBA
	FadeDuration time.Duration
	FadeSteps    int
	FadeEase     string

	AutoInterval time.Duration
	AutoDelay    time.Duration
	MountDelay   time.Duration

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Color:     color.NRGBA{R: 176, G: 217, B: 242, A: 128},
		GlowColor: color.NRGBA{R: 0, G: 170, B: 255, A: 40},
		GlowWidth: 6,

		ThicknessFloor: 4,
		BranchChance:   0.4,
		BranchFactor:   0.9,
		Straightness:   0.7,
		MaxSegments:    35,
		MaxBranchLevel: 5,

		InitialDisplacement: 30,
		BoltsMin:            6,
		BoltsMax:            8,
		BoltStagger:         100 * time.Millisecond,
		JitterX:             50,

		FlashWhite:   color.NRGBA{R: 255, G: 255, B: 255, A: 13},
		FlashBlue:    color.NRGBA{R: 173, G: 216, B: 230, A: 102},
		FadeDuration: 1300 * time.Millisecond,
		FadeSteps:    20,
		FadeEase:     "linear",

		AutoInterval: 6 * time.Second,
		AutoDelay:    2 * time.Second,
		MountDelay:   100 * time.Millisecond,

		Seed: 1,
	}
}

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
	"in-expo":     ease.InExpo,
	"out-expo":    ease.OutExpo,
}

func easingFor(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// minThicknessFloor is the lowest accepted recursion floor.
const minThicknessFloor = 0.5

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	mapColor(cfg, "color", &c.Color)
	mapColor(cfg, "glow_color", &c.GlowColor)
	core.MapFloat(cfg, "glow_width", &c.GlowWidth, core.NonNegative[float64])

	core.MapFloat(cfg, "thickness_floor", &c.ThicknessFloor, func(v float64) bool { return v >= minThicknessFloor })
	core.MapFloat(cfg, "branch_chance", &c.BranchChance, core.UnitInterval)
	core.MapFloat(cfg, "branch_factor", &c.BranchFactor, func(v float64) bool { return v > 0 && v < 1 })
	core.MapFloat(cfg, "straightness", &c.Straightness, core.UnitInterval)
	core.MapInt(cfg, "max_segments", &c.MaxSegments, core.NonNegative[int])
	core.MapInt(cfg, "max_branch_level", &c.MaxBranchLevel, core.NonNegative[int])

	core.MapFloat(cfg, "displacement", &c.InitialDisplacement, core.NonNegative[float64])
	core.MapInt(cfg, "bolts_min", &c.BoltsMin, core.Positive[int])
	core.MapInt(cfg, "bolts_max", &c.BoltsMax, core.Positive[int])
	if c.BoltsMax < c.BoltsMin {
		c.BoltsMax = c.BoltsMin
	}
	core.MapDuration(cfg, "bolt_stagger", &c.BoltStagger)
	core.MapFloat(cfg, "jitter_x", &c.JitterX, core.NonNegative[float64])

	core.MapDuration(cfg, "fade_duration", &c.FadeDuration)
	core.MapInt(cfg, "fade_steps", &c.FadeSteps, core.Positive[int])
	if v, ok := cfg["fade_ease"]; ok {
		if _, known := easings[v]; known {
			c.FadeEase = v
		}
	}

	core.MapDuration(cfg, "auto_interval", &c.AutoInterval)
	core.MapDuration(cfg, "auto_delay", &c.AutoDelay)
	core.MapDuration(cfg, "mount_delay", &c.MountDelay)
	core.MapInt64(cfg, "seed", &c.Seed)
	return c
}

// mapColor parses "#rrggbb" into dst, keeping dst's alpha. The "#" is
// optional. A separate "<key>_alpha" entry in [0, 1] overrides the alpha.
func mapColor(cfg map[string]string, key string, dst *color.NRGBA) {
	if v, ok := cfg[key]; ok {
		if !strings.HasPrefix(v, "#") {
			v = "#" + v
		}
		if parsed, err := colorful.Hex(v); err == nil {
			r, g, b := parsed.RGB255()
			dst.R, dst.G, dst.B = r, g, b
		}
	}
	alpha := float64(dst.A) / 255
	core.MapFloat(cfg, key+"_alpha", &alpha, core.UnitInterval)
	dst.A = uint8(alpha*255 + 0.5)
}
