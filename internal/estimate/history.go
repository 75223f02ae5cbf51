package estimate

// ProbabilityFromHistory converts an invited/attended pair into an attendance
// probability. ok is false when the sample is unusable and the category's
// default should apply.
func ProbabilityFromHistory(invited, attended float64) (p float64, ok bool) {
	if invited <= 0 {
		return 0, false
	}
	if attended < 0 || attended > invited {
		return 0, false
	}
	return attended / invited, true
}

// OverridesFromHistory turns each usable category sample into an override.
// Categories without a usable sample stay nil.
func OverridesFromHistory(h HistoricalSamples) Overrides {
	return Overrides{
		PYes:     fromSample(h.Yes),
		PMaybe:   fromSample(h.Maybe),
		PNo:      fromSample(h.No),
		PUnknown: fromSample(h.Unknown),
	}
}

// ModelFromHistory builds a model where every category with usable history
// uses its observed ratio and every other category falls back to its default.
func ModelFromHistory(h HistoricalSamples) ProbabilityModel {
	return BuildProbabilityModel(OverridesFromHistory(h))
}

func fromSample(s *HistoricalSample) *float64 {
	if s == nil {
		return nil
	}
	p, ok := ProbabilityFromHistory(s.Invited, s.Attended)
	if !ok {
		return nil
	}
	return &p
}
