package thunder

import (
	"math"
	"time"

	"seasonfx/internal/core"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	// leak pulls the brown-noise integrator back toward zero so it never drifts
	// out of [-1, 1].
	leak = 1.02
	step = 0.02
	// makeup restores the loudness lost by integrating white noise.
	makeup = 3.5

	attackShare = 0.04
	decayRate   = 4.0
)

// rumble is leaky-integrated white noise under an attack/decay envelope.
type rumble struct {
	src       core.Source
	pos       int
	total     int
	attack    int
	rate      beep.SampleRate
	level     float64
	intensity float64
}

// NewRumble returns a mono thunder rumble of the given length. Intensity is
// clamped to [0, 1] and scales the envelope peak.
func NewRumble(rate beep.SampleRate, duration time.Duration, intensity float64, src core.Source) beep.Streamer {
	total := rate.N(duration)
	return &rumble{
		src:       src,
		total:     total,
		attack:    max(1, int(float64(total)*attackShare)),
		rate:      rate,
		intensity: math.Max(0, math.Min(1, intensity)),
	}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.pos >= r.total {
			return i, i > 0
		}
		white := r.src.Float64()*2 - 1
		r.level = (r.level + step*white) / leak

		v := r.level * makeup * r.envelope() * r.intensity
		v = math.Max(-1, math.Min(1, v))
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

func (r *rumble) envelope() float64 {
	if r.pos < r.attack {
		return float64(r.pos) / float64(r.attack)
	}
	t := float64(r.pos-r.attack) / float64(r.rate)
	return math.Exp(-decayRate * t)
}

// withVolume scales s by a linear gain. Zero or less silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
