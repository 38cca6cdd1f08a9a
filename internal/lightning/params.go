package lightning

import "seasonfx/internal/core"

// Parameters reports the tunables and strike counters.
func (s *Storm) Parameters() core.ParameterSnapshot {
	c := s.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Bolt",
			Params: []core.Parameter{
				core.FloatParam("thickness_floor", "Thickness floor", c.ThicknessFloor),
				core.FloatParam("branch_chance", "Branch chance", c.BranchChance),
				core.FloatParam("branch_factor", "Branch factor", c.BranchFactor),
				core.FloatParam("straightness", "Straightness", c.Straightness),
				core.IntParam("max_branch_level", "Max branch level", c.MaxBranchLevel),
				core.IntParam("max_segments", "Max segments", c.MaxSegments),
			},
		},
		{
			Name: "Timing",
			Params: []core.Parameter{
				core.IntParam("fade_duration", "Fade (ms)", int(c.FadeDuration.Milliseconds())),
				core.IntParam("auto_interval", "Auto interval (ms)", int(c.AutoInterval.Milliseconds())),
				core.TextParam("fade_ease", "Fade ease", c.FadeEase),
			},
		},
		{
			Name: "Activity",
			Params: []core.Parameter{
				core.IntParam("strikes", "Strikes", s.strikes),
				core.IntParam("bolts", "Bolts", s.bolts),
				core.IntParam("fades", "Active fades", len(s.fades)),
			},
		},
	}}
}

// ParameterControls lists the interactively adjustable values.
func (s *Storm) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "branch_chance", Label: "Branch chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "straightness", Label: "Straightness", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "branch_factor", Label: "Branch factor", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 0.95, HasMin: true, HasMax: true},
		{Key: "max_branch_level", Label: "Max branch level", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 10, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a tunable; the next bolt uses the new value.
func (s *Storm) SetFloatParameter(key string, value float64) bool {
	for _, ctrl := range s.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "branch_chance":
			s.cfg.BranchChance = value
		case "straightness":
			s.cfg.Straightness = value
		case "branch_factor":
			s.cfg.BranchFactor = value
		case "max_branch_level":
			s.cfg.MaxBranchLevel = int(value)
		}
		s.gen = NewGenerator(s.cfg, s.src)
		return true
	}
	return false
}

// SetIntParameter forwards to SetFloatParameter.
func (s *Storm) SetIntParameter(key string, value int) bool {
	return s.SetFloatParameter(key, float64(value))
}
