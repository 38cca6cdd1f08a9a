package lightning

import (
	"image/color"
	"time"

	"seasonfx/internal/core"

	"github.com/tanema/gween"
)

// fadeFloor treats a tweened opacity this small as fully faded.
const fadeFloor = 1e-6

// Bolt describes one fired bolt. It is handed to OnBolt hooks.
type Bolt struct {
	Index    int
	Start    core.Point
	End      core.Point
	Segments int
	Surface  core.Size
}

// Storm fires bursts of bolts onto a single shared surface. Every bolt
// flashes the surface and then fades its wash out on its own timer; a later
// bolt's clear simply overwrites an earlier bolt's fade.
type Storm struct {
	cfg Config

	rng *core.RNG
	src core.Source
	gen *Generator

	surface core.Surface
	sched   *core.Scheduler

	auto  core.TimerID
	mount core.TimerID
	fades map[core.TimerID]*gween.Tween

	hooks   []func(Bolt)
	strikes int
	bolts   int
}

// NewStorm returns a Storm using the provided configuration.
func NewStorm(cfg Config) *Storm {
	if cfg.FadeSteps <= 0 {
		cfg.FadeSteps = DefaultConfig().FadeSteps
	}
	rng := core.NewRNG(cfg.Seed)
	return &Storm{
		cfg:   cfg,
		rng:   rng,
		src:   rng,
		gen:   NewGenerator(cfg, rng),
		sched: core.NewScheduler(),
		fades: make(map[core.TimerID]*gween.Tween),
	}
}

// Name returns the effect identifier.
func (s *Storm) Name() string { return "lightning" }

// Config returns the active configuration.
func (s *Storm) Config() Config { return s.cfg }

// SetSource replaces the random source used for strikes and bolt shapes.
func (s *Storm) SetSource(src core.Source) {
	if src == nil {
		src = s.rng
	}
	s.src = src
	s.gen = NewGenerator(s.cfg, src)
}

// OnBolt registers fn to be called after every bolt is drawn.
func (s *Storm) OnBolt(fn func(Bolt)) {
	if fn != nil {
		s.hooks = append(s.hooks, fn)
	}
}

// Active reports how many flash fades are still running.
func (s *Storm) Active() int { return len(s.fades) }

// Strikes reports how many strikes have been triggered.
func (s *Storm) Strikes() int { return s.strikes }

// Bolts reports how many bolts have been drawn.
func (s *Storm) Bolts() int { return s.bolts }

// Attach mounts the storm on sf: a centre strike follows after MountDelay
// and the automatic strike interval is armed. A nil surface cancels all
// timers.
func (s *Storm) Attach(sf core.Surface) {
	s.surface = sf
	if sf == nil {
		s.stop()
		return
	}
	s.arm()
}

// Resize schedules a centre strike MountDelay after the most recent resize.
// Fades in flight keep running against the resized surface, and the strike
// aims at the surface's size when it fires.
func (s *Storm) Resize(_, _ int) {
	if s.surface == nil {
		return
	}
	s.sched.Cancel(s.mount)
	s.mount = s.sched.After(s.cfg.MountDelay, s.StrikeCenter)
}

// Reset reseeds the random source, drops every pending bolt and fade, and
// re-arms the mount strike and the automatic interval.
func (s *Storm) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.rng.Seed(seed)
	s.stop()
	if s.surface == nil {
		return
	}
	s.surface.Clear()
	s.arm()
}

// Update advances the storm's clock by dt.
func (s *Storm) Update(dt time.Duration) {
	s.sched.Advance(dt)
}

// Close cancels every timer.
func (s *Storm) Close() { s.stop() }

// StrikeCenter strikes at the centre of the attached surface.
func (s *Storm) StrikeCenter() {
	if s.surface == nil {
		return
	}
	size := s.surface.Size()
	s.Strike(float64(size.W)/2, float64(size.H)/2)
}

// Strike schedules a burst of BoltsMin..BoltsMax bolts aimed near (x, y),
// BoltStagger apart. Without a surface it does nothing.
func (s *Storm) Strike(x, y float64) {
	if s.surface == nil {
		return
	}
	s.strikes++
	n := core.IntBetween(s.src, s.cfg.BoltsMin, s.cfg.BoltsMax)
	for i := 0; i < n; i++ {
		s.sched.After(time.Duration(i)*s.cfg.BoltStagger, func() {
			s.fire(i, x, y)
		})
	}
}

func (s *Storm) fire(index int, x, y float64) {
	sf := s.surface
	if sf == nil {
		return
	}
	size := sf.Size()
	sf.Clear()
	sf.Fill(s.cfg.FlashWhite)
	sf.Fill(s.cfg.FlashBlue)

	start := core.Point{X: s.src.Float64() * float64(size.W), Y: 0}
	end := core.Point{
		X: x + core.Jitter(s.src, s.cfg.JitterX),
		Y: y + core.Jitter(s.src, float64(size.H)/2),
	}
	segments := s.gen.GenerateBolt(sf, start, end, s.cfg.InitialDisplacement, 0)
	s.bolts++
	s.startFade()

	bolt := Bolt{Index: index, Start: start, End: end, Segments: segments, Surface: size}
	for _, fn := range s.hooks {
		fn(bolt)
	}
}

// startFade ramps the blue wash from full to zero over FadeDuration in
// FadeSteps repaints, then clears the surface.
func (s *Storm) startFade() {
	step := s.cfg.FadeDuration / time.Duration(s.cfg.FadeSteps)
	if step <= 0 {
		step = time.Millisecond
	}
	tween := gween.New(1, 0, float32(s.cfg.FadeDuration.Seconds()), easingFor(s.cfg.FadeEase))
	var id core.TimerID
	id = s.sched.Every(step, step, func() {
		opacity, finished := tween.Update(float32(step.Seconds()))
		sf := s.surface
		if finished || opacity <= fadeFloor || sf == nil {
			s.sched.Cancel(id)
			delete(s.fades, id)
			if sf != nil {
				sf.Clear()
			}
			return
		}
		sf.Clear()
		sf.Fill(s.washAt(float64(opacity)))
	})
	s.fades[id] = tween
}

func (s *Storm) washAt(opacity float64) color.NRGBA {
	c := s.cfg.FlashBlue
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}

func (s *Storm) arm() {
	s.sched.Cancel(s.mount)
	s.mount = s.sched.After(s.cfg.MountDelay, s.StrikeCenter)
	if s.auto == 0 && s.cfg.AutoInterval > 0 {
		s.auto = s.sched.Every(s.cfg.AutoDelay+s.cfg.AutoInterval, s.cfg.AutoInterval, s.StrikeCenter)
	}
}

func (s *Storm) stop() {
	s.sched.Stop()
	s.auto = 0
	s.mount = 0
	clear(s.fades)
}

func init() {
	core.Register("lightning", func(cfg map[string]string) core.Effect {
		return NewStorm(FromMap(cfg))
	})
}
