package thunder

import (
	"math"
	"sync"
	"time"

	"seasonfx/internal/core"
	"seasonfx/internal/lightning"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// Config controls thunder playback.
type Config struct {
	Enabled    bool
	Volume     float64
	SampleRate int
	Buffer     time.Duration
	// Duration is the length of one rumble, excluding the delay.
	Duration time.Duration
	// MaxDelay is the lag for a bolt ending at the top edge; bolts ending at the
	// bottom edge are heard immediately.
	MaxDelay time.Duration
	// FullSegments is the segment count that plays at full intensity.
	FullSegments int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		Volume:       0.6,
		SampleRate:   44100,
		Buffer:       100 * time.Millisecond,
		Duration:     1800 * time.Millisecond,
		MaxDelay:     900 * time.Millisecond,
		FullSegments: 60,
	}
}

// FromMap populates the config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.MapBool(cfg, "enabled", &c.Enabled)
	core.MapFloat(cfg, "volume", &c.Volume, core.NonNegative[float64])
	core.MapInt(cfg, "sample_rate", &c.SampleRate, core.Positive[int])
	core.MapDuration(cfg, "buffer", &c.Buffer)
	core.MapDuration(cfg, "duration", &c.Duration)
	core.MapDuration(cfg, "max_delay", &c.MaxDelay)
	core.MapInt(cfg, "full_segments", &c.FullSegments, core.Positive[int])
	return c
}

// Player turns bolts into rumbles mixed onto the system speaker. Every method
// is a no-op until Init succeeds.
type Player struct {
	mu    sync.Mutex
	cfg   Config
	rate  beep.SampleRate
	rng   *core.RNG
	mixer *beep.Mixer
	ready bool
}

// NewPlayer returns an uninitialised player.
func NewPlayer(cfg Config, seed int64) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		rng:   core.NewRNG(seed),
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer. A disabled player stays silent
// and reports no error.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready || !p.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(p.cfg.Buffer)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Ready reports whether Init succeeded.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Play queues the rumble for b.
func (p *Player) Play(b lightning.Bolt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s := p.streamer(b)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops every queued rumble and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.ready = false
}

// Delay returns how long after the flash the rumble of b starts.
func (p *Player) Delay(b lightning.Bolt) time.Duration {
	h := float64(b.Surface.H)
	if h <= 0 {
		return 0
	}
	far := 1 - b.End.Y/h
	far = math.Max(0, math.Min(1, far))
	return time.Duration(far * float64(p.cfg.MaxDelay))
}

// Intensity maps the size of b onto [0.3, 1].
func (p *Player) Intensity(b lightning.Bolt) float64 {
	full := p.cfg.FullSegments
	if full <= 0 {
		return 1
	}
	return 0.3 + 0.7*math.Min(1, float64(b.Segments)/float64(full))
}

func (p *Player) streamer(b lightning.Bolt) beep.Streamer {
	// Each rumble owns its noise source because the speaker streams it on
	// another goroutine.
	src := core.NewRNG(int64(p.rng.Source().Uint64()))
	r := NewRumble(p.rate, p.cfg.Duration, p.Intensity(b), src)
	return beep.Seq(beep.Silence(p.rate.N(p.Delay(b))), withVolume(r, p.cfg.Volume))
}
