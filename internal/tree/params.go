package tree

import (
	"math"

	"seasonfx/internal/core"
)

// Parameters reports the tunables and live growth statistics.
func (g *Grower) Parameters() core.ParameterSnapshot {
	p := g.cfg.Params
	done := 0
	for _, b := range g.branches {
		if b.Done {
			done++
		}
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Tree",
			Params: []core.Parameter{
				core.FloatParam("hue", "Hue", g.cfg.Hue),
				core.FloatParam("growth_rate", "Growth rate", g.cfg.GrowthRate),
				core.BoolParam("auto_start", "Auto start", g.cfg.AutoStart),
				core.TextParam("color_mode", "Colour mode", string(g.cfg.ColorMode)),
			},
		},
		{
			Name: "Shape",
			Params: []core.Parameter{
				core.FloatParam("magnitude", "Trunk length", p.Magnitude),
				core.FloatParam("thickness", "Trunk thickness", p.Thickness),
				core.FloatParam("smallest_branch", "Smallest branch", p.SmallestBranch),
				core.FloatParam("maximum_bend", "Maximum bend (deg)", math.Round(p.MaximumBend*180/math.Pi)),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("branches", "Branches", len(g.branches)),
				core.IntParam("done", "Finished", done),
				core.IntParam("ticks", "Ticks", g.ticks),
				core.BoolParam("growing", "Growing", g.growing),
			},
		},
	}}
}

// ParameterControls lists the interactively adjustable values.
func (g *Grower) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "hue", Label: "Hue", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: 359, HasMin: true, HasMax: true},
		{Key: "growth_rate", Label: "Growth rate", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 40, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable. Growth rate changes apply to the
// run in progress from the next tick.
func (g *Grower) SetFloatParameter(key string, value float64) bool {
	for _, ctrl := range g.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "hue":
			g.cfg.Hue = value
			g.redraw()
		case "growth_rate":
			g.cfg.GrowthRate = value
		}
		return true
	}
	return false
}

// SetIntParameter forwards to SetFloatParameter.
func (g *Grower) SetIntParameter(key string, value int) bool {
	return g.SetFloatParameter(key, float64(value))
}
