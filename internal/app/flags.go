package app

import (
	"flag"
	"strconv"
	"strings"

	"seasonfx/internal/config"

	"github.com/pkg/errors"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	Effects string
	Width   int
	Height  int
	Scale   int
	TPS     int
	Seed    int64
	File    string
	Sets    KVList
	Audio   bool
	HUD     bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := config.Default()
	return &Config{
		Effects: strings.Join(d.Effects, ","),
		Width:   d.Width,
		Height:  d.Height,
		Scale:   d.Scale,
		TPS:     d.TPS,
		Seed:    d.Seed,
		Audio:   true,
		HUD:     true,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Effects, "effects", c.Effects, "comma separated effect layers, bottom first")
	fs.IntVar(&c.Width, "w", c.Width, "scene width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "scene height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for effect reset")
	fs.StringVar(&c.File, "config", c.File, "scene file (gcfg format)")
	fs.Var(&c.Sets, "set", "scene override in section.key=value form (repeatable)")
	fs.BoolVar(&c.Audio, "audio", c.Audio, "play thunder for lightning bolts")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
}

// Settings resolves the scene: the scene file first, then -set overrides,
// then any window flag given explicitly on the command line.
func (c *Config) Settings(fs *flag.FlagSet) (*config.Settings, error) {
	s, err := config.Load(c.File)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(c.Sets); err != nil {
		return nil, err
	}
	var explicit []string
	fs.Visit(func(f *flag.Flag) {
		if kv, ok := c.windowOverride(f.Name); ok {
			explicit = append(explicit, kv)
		}
	})
	if err := s.Apply(explicit); err != nil {
		return nil, errors.Wrap(err, "command line")
	}
	return s, nil
}

func (c *Config) windowOverride(name string) (string, bool) {
	switch name {
	case "effects":
		return "window.effects=" + c.Effects, true
	case "w":
		return "window.width=" + strconv.Itoa(c.Width), true
	case "h":
		return "window.height=" + strconv.Itoa(c.Height), true
	case "scale":
		return "window.scale=" + strconv.Itoa(c.Scale), true
	case "tps":
		return "window.tps=" + strconv.Itoa(c.TPS), true
	case "seed":
		return "window.seed=" + strconv.FormatInt(c.Seed, 10), true
	case "audio":
		return "audio.enabled=" + strconv.FormatBool(c.Audio), true
	}
	return "", false
}
