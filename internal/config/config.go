// Package config reads scene files and command line overrides and turns them
// into window settings plus per-effect FromMap options.
package config

import (
	"image/color"
	"reflect"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"
)

// Example is a commented scene file listing every supported variable.
const Example = `# seasonfx scene file. Every variable is optional.

[window]
width = 960
height = 640
# Window pixels per surface pixel.
scale = 1
tps = 60
seed = 1
# Colours are hex triplets; quote them or drop the "#", which starts a comment.
background = "#0b1020"
# Layers bottom to top.
effects = tree,lightning

[tree]
# Fixed surface size; 0 follows the window.
# width = 0
# height = 0
hue = 120
growth-rate = 7
auto-start = true
show-controls = false
# thickness or hue
color-mode = thickness
magnitude = 230
thickness = 30
lightness = 50
smallest-branch = 40
# Degrees.
maximum-bend = 90
sprouts-min = 1
sprouts-max = 4
max-branches = 20000

[lightning]
color = "#b0d9f2"
color-alpha = 0.5
glow-color = "#00aaff"
glow-color-alpha = 0.16
glow-width = 6
thickness-floor = 4
branch-chance = 0.4
branch-factor = 0.9
straightness = 0.7
max-segments = 35
max-branch-level = 5
displacement = 30
bolts-min = 6
bolts-max = 8
bolt-stagger = 100ms
jitter-x = 50
fade-duration = 1300ms
fade-steps = 20
# linear, in-quad, out-quad, in-out-quad, in-cubic, out-cubic, in-expo, out-expo
fade-ease = linear
# 0 disables automatic strikes.
auto-interval = 6s
auto-delay = 2s
mount-delay = 100ms

[audio]
enabled = true
volume = 0.6
duration = 1800ms
max-delay = 900ms
`

// Window holds the [window] section.
type Window struct {
	Width      int
	Height     int
	Scale      int
	TPS        int
	Seed       int64
	Background string
	Effects    string
}

// Tree holds the [tree] section. Empty values keep the effect defaults.
type Tree struct {
	Width          string `gcfg:"width" opt:"w"`
	Height         string `gcfg:"height" opt:"h"`
	Hue            string `gcfg:"hue"`
	GrowthRate     string `gcfg:"growth-rate"`
	AutoStart      string `gcfg:"auto-start"`
	ShowControls   string `gcfg:"show-controls"`
	ColorMode      string `gcfg:"color-mode"`
	Magnitude      string `gcfg:"magnitude"`
	Thickness      string `gcfg:"thickness"`
	Lightness      string `gcfg:"lightness"`
	SmallestBranch string `gcfg:"smallest-branch"`
	MaximumBend    string `gcfg:"maximum-bend"`
	SproutsMin     string `gcfg:"sprouts-min"`
	SproutsMax     string `gcfg:"sprouts-max"`
	MaxBranches    string `gcfg:"max-branches"`
	Seed           string `gcfg:"seed"`
}

// Lightning holds the [lightning] section. Empty values keep the effect
// defaults.
type Lightning struct {
	Color          string `gcfg:"color"`
	ColorAlpha     string `gcfg:"color-alpha"`
	GlowColor      string `gcfg:"glow-color"`
	GlowColorAlpha string `gcfg:"glow-color-alpha"`
	GlowWidth      string `gcfg:"glow-width"`
	ThicknessFloor string `gcfg:"thickness-floor"`
	BranchChance   string `gcfg:"branch-chance"`
	BranchFactor   string `gcfg:"branch-factor"`
	Straightness   string `gcfg:"straightness"`
	MaxSegments    string `gcfg:"max-segments"`
	MaxBranchLevel string `gcfg:"max-branch-level"`
	Displacement   string `gcfg:"displacement"`
	BoltsMin       string `gcfg:"bolts-min"`
	BoltsMax       string `gcfg:"bolts-max"`
	BoltStagger    string `gcfg:"bolt-stagger"`
	JitterX        string `gcfg:"jitter-x"`
	FadeDuration   string `gcfg:"fade-duration"`
	FadeSteps      string `gcfg:"fade-steps"`
	FadeEase       string `gcfg:"fade-ease"`
	AutoInterval   string `gcfg:"auto-interval"`
	AutoDelay      string `gcfg:"auto-delay"`
	MountDelay     string `gcfg:"mount-delay"`
	Seed           string `gcfg:"seed"`
}

// Audio holds the [audio] section.
type Audio struct {
	Enabled    string `gcfg:"enabled"`
	Volume     string `gcfg:"volume"`
	Duration   string `gcfg:"duration"`
	MaxDelay   string `gcfg:"max-delay"`
	SampleRate string `gcfg:"sample-rate"`
}

// File mirrors the sections of a scene file.
type File struct {
	Window    Window
	Tree      Tree
	Lightning Lightning
	Audio     Audio
}

// Settings is a resolved scene description.
type Settings struct {
	Width      int
	Height     int
	Scale      int
	TPS        int
	Seed       int64
	Background color.NRGBA
	Effects    []string

	// Options holds FromMap options keyed by section: "tree", "lightning"
	// and "audio".
	Options map[string]map[string]string
}

// Default returns the settings used when no scene file is given.
func Default() *Settings {
	return &Settings{
		Width:      960,
		Height:     640,
		Scale:      1,
		TPS:        60,
		Seed:       1,
		Background: color.NRGBA{R: 0x0b, G: 0x10, B: 0x20, A: 0xff},
		Effects:    []string{"tree", "lightning"},
		Options: map[string]map[string]string{
			"tree":      {},
			"lightning": {},
			"audio":     {},
		},
	}
}

// Load reads the scene file at path. An empty path yields Default().
func Load(path string) (*Settings, error) {
	if path == "" {
		return Default(), nil
	}
	f := defaultFile()
	if err := gcfg.ReadFileInto(f, path); err != nil {
		return nil, errors.Wrapf(err, "read scene file %s", path)
	}
	return f.settings()
}

// Parse reads scene file text.
func Parse(text string) (*Settings, error) {
	f := defaultFile()
	if err := gcfg.ReadStringInto(f, text); err != nil {
		return nil, errors.Wrap(err, "parse scene file")
	}
	return f.settings()
}

// Apply applies "section.key=value" overrides in order. Window keys are
// validated; effect keys are passed through to the effect's FromMap.
func (s *Settings) Apply(overrides []string) error {
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return errors.Errorf("override %q is not key=value", kv)
		}
		section, key, ok := strings.Cut(strings.TrimSpace(parts[0]), ".")
		if !ok || key == "" {
			return errors.Errorf("override %q needs a section.key name", kv)
		}
		key = optionKey(key)
		value := strings.TrimSpace(parts[1])

		if section == "window" {
			if err := s.setWindow(key, value); err != nil {
				return errors.Wrapf(err, "override %q", kv)
			}
			continue
		}
		opts, known := s.Options[section]
		if !known {
			return errors.Errorf("override %q: unknown section %q", kv, section)
		}
		if opt, ok := sectionKeys[section][key]; ok {
			key = opt
		}
		opts[key] = value
	}
	return nil
}

// EffectOptions returns the FromMap options of every effect section.
func (s *Settings) EffectOptions() map[string]map[string]string {
	return map[string]map[string]string{
		"tree":      s.Options["tree"],
		"lightning": s.Options["lightning"],
	}
}

// sectionKeys maps the file-style names of each effect section onto FromMap
// keys.
var sectionKeys = map[string]map[string]string{
	"tree":      optionKeys(reflect.TypeOf(Tree{})),
	"lightning": optionKeys(reflect.TypeOf(Lightning{})),
	"audio":     optionKeys(reflect.TypeOf(Audio{})),
}

func defaultFile() *File {
	d := Default()
	return &File{Window: Window{
		Width:      d.Width,
		Height:     d.Height,
		Scale:      d.Scale,
		TPS:        d.TPS,
		Seed:       d.Seed,
		Background: hexOf(d.Background),
		Effects:    strings.Join(d.Effects, ","),
	}}
}

func (f *File) settings() (*Settings, error) {
	s := Default()
	w := f.Window
	for key, value := range map[string]string{
		"width":      strconv.Itoa(w.Width),
		"height":     strconv.Itoa(w.Height),
		"scale":      strconv.Itoa(w.Scale),
		"tps":        strconv.Itoa(w.TPS),
		"seed":       strconv.FormatInt(w.Seed, 10),
		"background": w.Background,
		"effects":    w.Effects,
	} {
		if err := s.setWindow(key, value); err != nil {
			return nil, errors.Wrap(err, "[window]")
		}
	}
	s.Options["tree"] = sectionOptions(f.Tree)
	s.Options["lightning"] = sectionOptions(f.Lightning)
	s.Options["audio"] = sectionOptions(f.Audio)
	return s, nil
}

func (s *Settings) setWindow(key, value string) error {
	switch key {
	case "width", "height", "scale", "tps":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "%s", key)
		}
		if n <= 0 {
			return errors.Errorf("%s must be positive, got %d", key, n)
		}
		switch key {
		case "width":
			s.Width = n
		case "height":
			s.Height = n
		case "scale":
			s.Scale = n
		case "tps":
			s.TPS = n
		}
	case "seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Wrap(err, "seed")
		}
		s.Seed = n
	case "background":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		s.Background = c
	case "effects":
		var names []string
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return errors.New("effects list is empty")
		}
		s.Effects = names
	default:
		return errors.Errorf("unknown window key %q", key)
	}
	return nil
}

// ParseColor parses an opaque "#rrggbb" colour. The "#" is optional.
func ParseColor(v string) (color.NRGBA, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "colour %q", v)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func hexOf(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// optionKey normalises "growth-rate" style names to "growth_rate".
func optionKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
}

// optionKeys maps each field's normalised gcfg name to its FromMap key. The
// FromMap key is taken from the opt tag when present.
func optionKeys(t reflect.Type) map[string]string {
	keys := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := optionKey(field.Tag.Get("gcfg"))
		opt := field.Tag.Get("opt")
		if opt == "" {
			opt = name
		}
		keys[name] = opt
	}
	return keys
}

// sectionOptions turns the non-empty string fields of a section struct into
// FromMap options.
func sectionOptions(section any) map[string]string {
	v := reflect.ValueOf(section)
	t := v.Type()
	keys := optionKeys(t)
	out := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		value := strings.TrimSpace(v.Field(i).String())
		if value == "" {
			continue
		}
		out[keys[optionKey(t.Field(i).Tag.Get("gcfg"))]] = value
	}
	return out
}
