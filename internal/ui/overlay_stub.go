//go:build !ebiten

package ui

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(int) *Overlay { return &Overlay{} }

// MarkStrike is a no-op in headless builds.
func (o *Overlay) MarkStrike(float64, float64) {}

// SetStatus is a no-op in headless builds.
func (o *Overlay) SetStatus(bool, int64, int) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
