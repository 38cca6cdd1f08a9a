package tree

import (
	"math"

	"seasonfx/internal/core"
)

// Branch is one growing segment. Origin, Theta, Thickness, Magnitude and
// Lightness are fixed at creation; only Tip moves, and only while !Done.
type Branch struct {
	Origin core.Point
	Tip    core.Point

	Thickness float64
	// Theta is measured from vertical; zero grows straight up.
	Theta     float64
	Magnitude float64
	Lightness float64

	// Sprouts is the number of children still to spawn when the branch finishes.
	Sprouts int
	Done    bool
}

// Length is the current distance from origin to tip.
func (b *Branch) Length() float64 { return b.Origin.Dist(b.Tip) }

// grow advances the tip by rate along Theta. The tip is placed exactly at
// Magnitude on the step that reaches it. It reports whether the branch
// finished during this call.
func (b *Branch) grow(rate float64) bool {
	if b.Done {
		return false
	}
	remaining := b.Magnitude - b.Length()
	sin, cos := math.Sincos(b.Theta)
	if rate >= remaining {
		reach := math.Max(b.Magnitude, 0)
		b.Tip = core.Point{X: b.Origin.X + sin*reach, Y: b.Origin.Y - cos*reach}
		b.Done = true
		return true
	}
	b.Tip.X += sin * rate
	b.Tip.Y -= cos * rate
	return false
}

func (b *Branch) translate(d core.Point) {
	b.Origin = b.Origin.Add(d)
	b.Tip = b.Tip.Add(d)
}
