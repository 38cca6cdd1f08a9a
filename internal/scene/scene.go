package scene

import (
	"image"
	"image/color"
	"strings"
	"time"

	"seasonfx/internal/core"
	"seasonfx/internal/render"

	"github.com/pkg/errors"
)

// FixedSizer is implemented by effects that pin their surface size. A zero
// dimension follows the viewport.
type FixedSizer interface {
	FixedSize() (int, int)
}

type regrower interface {
	Regrow()
}

type striker interface {
	Strike(x, y float64)
	StrikeCenter()
}

// Layer pairs an effect with the raster it paints into.
type Layer struct {
	Effect core.Effect
	Raster *render.Raster
}

// Scene is an ordered stack of effect layers sharing one viewport. Layers are
// composited bottom to top in the order they were added.
type Scene struct {
	size   core.Size
	layers []*Layer
}

// New returns an empty scene with the given viewport.
func New(w, h int) *Scene {
	return &Scene{size: core.Size{W: max(w, 0), H: max(h, 0)}}
}

// Build instantiates the named effects from the registry and stacks them in
// order. cfgs maps an effect name to its FromMap options.
func Build(w, h int, names []string, cfgs map[string]map[string]string) (*Scene, error) {
	registry := core.Effects()
	s := New(w, h)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		factory, ok := registry[name]
		if !ok {
			s.Close()
			return nil, errors.Errorf("unknown effect %q", name)
		}
		s.Add(factory(cfgs[name]))
	}
	if len(s.layers) == 0 {
		return nil, errors.New("no effects selected")
	}
	return s, nil
}

// Size reports the viewport.
func (s *Scene) Size() core.Size { return s.size }

// Layers exposes the layer stack, bottom first.
func (s *Scene) Layers() []*Layer { return s.layers }

// Add mounts e on a fresh raster on top of the stack.
func (s *Scene) Add(e core.Effect) *Layer {
	sz := s.layerSize(e)
	l := &Layer{Effect: e, Raster: render.NewRaster(sz.W, sz.H)}
	s.layers = append(s.layers, l)
	e.Attach(l.Raster)
	return l
}

// Find returns the first effect called name, or nil.
func (s *Scene) Find(name string) core.Effect {
	for _, l := range s.layers {
		if l.Effect.Name() == name {
			return l.Effect
		}
	}
	return nil
}

// Resize changes the viewport. Layers whose size follows the viewport get a
// new raster size and are then told about it.
func (s *Scene) Resize(w, h int) {
	s.size = core.Size{W: max(w, 0), H: max(h, 0)}
	for _, l := range s.layers {
		sz := s.layerSize(l.Effect)
		if sz == l.Raster.Size() {
			continue
		}
		l.Raster.Resize(sz.W, sz.H)
		l.Effect.Resize(sz.W, sz.H)
	}
}

// Update advances every effect by dt.
func (s *Scene) Update(dt time.Duration) {
	for _, l := range s.layers {
		l.Effect.Update(dt)
	}
}

// Reset reseeds every effect.
func (s *Scene) Reset(seed int64) {
	for _, l := range s.layers {
		l.Effect.Reset(seed)
	}
}

// Regrow restarts every effect that grows and reports how many did.
func (s *Scene) Regrow() int {
	n := 0
	for _, l := range s.layers {
		if r, ok := l.Effect.(regrower); ok {
			r.Regrow()
			n++
		}
	}
	return n
}

// Strike triggers a strike at (x, y) on every effect that strikes and reports
// how many did.
func (s *Scene) Strike(x, y float64) int {
	n := 0
	for _, l := range s.layers {
		if st, ok := l.Effect.(striker); ok {
			st.Strike(x, y)
			n++
		}
	}
	return n
}

// StrikeCenter is Strike aimed at each striking layer's own centre.
func (s *Scene) StrikeCenter() int {
	n := 0
	for _, l := range s.layers {
		if st, ok := l.Effect.(striker); ok {
			st.StrikeCenter()
			n++
		}
	}
	return n
}

// Compose paints bg into dst and composites every layer over it.
func (s *Scene) Compose(dst *image.RGBA, bg color.Color) {
	imgs := make([]*image.RGBA, 0, len(s.layers))
	for _, l := range s.layers {
		imgs = append(imgs, l.Raster.Image())
	}
	render.Compose(dst, bg, imgs...)
}

// Close detaches and closes every effect.
func (s *Scene) Close() {
	for _, l := range s.layers {
		l.Effect.Attach(nil)
		l.Effect.Close()
	}
}

func (s *Scene) layerSize(e core.Effect) core.Size {
	sz := s.size
	if f, ok := e.(FixedSizer); ok {
		w, h := f.FixedSize()
		if w > 0 {
			sz.W = w
		}
		if h > 0 {
			sz.H = h
		}
	}
	return sz
}
