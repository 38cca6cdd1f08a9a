package ui

import (
	"math"
	"strconv"

	"seasonfx/internal/core"
)

// Entry is one adjustable parameter of one effect as shown in the HUD.
type Entry struct {
	Effect  string
	Control core.ParameterControl

	Value      string
	IntValue   int
	FloatValue float64
	HasValue   bool

	provider    core.ParameterProvider
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// Panel collects the adjustable parameters of a stack of effects and keeps a
// keyboard selection. It holds no rendering state.
type Panel struct {
	entries  []Entry
	selected int
}

// NewPanel gathers the controls of every effect that exposes some.
func NewPanel(effects ...core.Effect) *Panel {
	p := &Panel{}
	for _, e := range effects {
		controls, ok := e.(core.ParameterControlsProvider)
		if !ok {
			continue
		}
		provider, _ := e.(core.ParameterProvider)
		intSetter, _ := e.(core.IntParameterSetter)
		floatSetter, _ := e.(core.FloatParameterSetter)
		for _, ctrl := range controls.ParameterControls() {
			p.entries = append(p.entries, Entry{
				Effect:      e.Name(),
				Control:     ctrl,
				Value:       "--",
				provider:    provider,
				intSetter:   intSetter,
				floatSetter: floatSetter,
			})
		}
	}
	p.Refresh()
	return p
}

// Entries exposes the current entries.
func (p *Panel) Entries() []Entry { return p.entries }

// Selected returns the index of the keyboard selection.
func (p *Panel) Selected() int { return p.selected }

// Select moves the selection by delta, wrapping around.
func (p *Panel) Select(delta int) {
	n := len(p.entries)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// Refresh re-reads every value from its effect's parameter snapshot.
func (p *Panel) Refresh() {
	snapshots := map[core.ParameterProvider]core.ParameterSnapshot{}
	for i := range p.entries {
		e := &p.entries[i]
		e.HasValue = false
		e.Value = "--"
		if e.provider == nil {
			continue
		}
		snap, ok := snapshots[e.provider]
		if !ok {
			snap = e.provider.Parameters()
			snapshots[e.provider] = snap
		}
		param, ok := snap.Lookup(e.Control.Key)
		if !ok {
			continue
		}
		switch e.Control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			e.IntValue = parsed
			e.FloatValue = float64(parsed)
			e.Value = strconv.Itoa(parsed)
			e.HasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			e.FloatValue = parsed
			e.Value = FormatFloat(e.Control, parsed)
			e.HasValue = true
		}
	}
}

// Adjust moves entry i one step in direction and reports whether the effect
// accepted a new value.
func (p *Panel) Adjust(i, direction int) bool {
	if i < 0 || i >= len(p.entries) || direction == 0 {
		return false
	}
	e := &p.entries[i]
	if !e.HasValue {
		return false
	}
	switch e.Control.Type {
	case core.ParamTypeInt:
		if e.intSetter == nil {
			return false
		}
		target := int(math.Round(e.Control.Clamp(float64(e.IntValue + direction*intStep(e.Control)))))
		if target == e.IntValue || !e.intSetter.SetIntParameter(e.Control.Key, target) {
			return false
		}
		e.IntValue = target
		e.FloatValue = float64(target)
		e.Value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if e.floatSetter == nil {
			return false
		}
		target := e.Control.Clamp(e.FloatValue + float64(direction)*floatStep(e.Control))
		if math.Abs(target-e.FloatValue) < 1e-9 || !e.floatSetter.SetFloatParameter(e.Control.Key, target) {
			return false
		}
		e.FloatValue = target
		e.Value = FormatFloat(e.Control, target)
		return true
	}
	return false
}

// AdjustSelected adjusts the selected entry.
func (p *Panel) AdjustSelected(direction int) bool {
	return p.Adjust(p.selected, direction)
}

// CanAdjust reports whether entry i has room to move in direction.
func (p *Panel) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(p.entries) || direction == 0 {
		return false
	}
	e := p.entries[i]
	if !e.HasValue {
		return false
	}
	var target float64
	switch e.Control.Type {
	case core.ParamTypeInt:
		if e.intSetter == nil {
			return false
		}
		target = float64(e.IntValue + direction*intStep(e.Control))
	case core.ParamTypeFloat:
		if e.floatSetter == nil {
			return false
		}
		target = e.FloatValue + float64(direction)*floatStep(e.Control)
	default:
		return false
	}
	if e.Control.HasMin && direction < 0 && target < e.Control.Min-1e-9 {
		return false
	}
	if e.Control.HasMax && direction > 0 && target > e.Control.Max+1e-9 {
		return false
	}
	return true
}

// FormatFloat prints value with a precision derived from the control's step.
func FormatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func intStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	return step
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}
