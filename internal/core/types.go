package core

import "time"

// Size describes the pixel dimensions of a drawing surface.
type Size struct {
	W int
	H int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Effect defines the contract every animated layer implements. An effect
// owns at most one surface and is driven by Update from the host frame loop.
type Effect interface {
	Name() string
	Reset(seed int64)
	// Attach mounts the effect onto a surface. A nil surface detaches it.
	Attach(s Surface)
	// Resize reports that the surface changed size. Effects read the new size
	// from the surface itself.
	Resize(w, h int)
	Update(dt time.Duration)
	// Close releases timers owned by the effect.
	Close()
}

// Factory constructs an Effect using an optional configuration map.
type Factory func(cfg map[string]string) Effect

var effects = map[string]Factory{}

// Register adds an effect factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	effects[name] = f
}

// Effects exposes the registry of available effect factories.
func Effects() map[string]Factory {
	return effects
}
