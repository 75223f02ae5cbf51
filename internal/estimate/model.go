package estimate

import "fmt"

// ProbabilityModel holds the per-category attendance probabilities.
// It is a plain value: derive a new one instead of mutating it.
type ProbabilityModel struct {
	PYes     float64 `json:"p_yes"`
	PMaybe   float64 `json:"p_maybe"`
	PNo      float64 `json:"p_no"`
	PUnknown float64 `json:"p_unknown"`
}

// Default attendance probabilities per RSVP category.
const (
	DefaultPYes     = 0.8
	DefaultPMaybe   = 0.4
	DefaultPNo      = 0.05
	DefaultPUnknown = 0.15
)

// DefaultModel returns the model built from the default probabilities.
func DefaultModel() ProbabilityModel {
	return ProbabilityModel{
		PYes:     DefaultPYes,
		PMaybe:   DefaultPMaybe,
		PNo:      DefaultPNo,
		PUnknown: DefaultPUnknown,
	}
}

// Overrides is a partial ProbabilityModel. Nil fields keep their default.
type Overrides struct {
	PYes     *float64 `json:"p_yes,omitempty"`
	PMaybe   *float64 `json:"p_maybe,omitempty"`
	PNo      *float64 `json:"p_no,omitempty"`
	PUnknown *float64 `json:"p_unknown,omitempty"`
}

// IsEmpty reports whether no field is overridden.
func (o Overrides) IsEmpty() bool {
	return o.PYes == nil && o.PMaybe == nil && o.PNo == nil && o.PUnknown == nil
}

// Merge returns o with every nil field filled from fallback.
func (o Overrides) Merge(fallback Overrides) Overrides {
	if o.PYes == nil {
		o.PYes = fallback.PYes
	}
	if o.PMaybe == nil {
		o.PMaybe = fallback.PMaybe
	}
	if o.PNo == nil {
		o.PNo = fallback.PNo
	}
	if o.PUnknown == nil {
		o.PUnknown = fallback.PUnknown
	}
	return o
}

// BuildProbabilityModel merges overrides over the defaults, field by field.
func BuildProbabilityModel(o Overrides) ProbabilityModel {
	m := DefaultModel()
	if o.PYes != nil {
		m.PYes = *o.PYes
	}
	if o.PMaybe != nil {
		m.PMaybe = *o.PMaybe
	}
	if o.PNo != nil {
		m.PNo = *o.PNo
	}
	if o.PUnknown != nil {
		m.PUnknown = *o.PUnknown
	}
	return m
}

// Validate checks that every probability lies in [0, 1].
// Estimate does not call it; input boundaries do.
func (m ProbabilityModel) Validate() error {
	fields := []struct {
		name string
		p    float64
	}{
		{"p_yes", m.PYes},
		{"p_maybe", m.PMaybe},
		{"p_no", m.PNo},
		{"p_unknown", m.PUnknown},
	}
	for _, f := range fields {
		if !(f.p >= 0 && f.p <= 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %v", f.name, f.p)
		}
	}
	return nil
}

// Float returns a pointer to v, for building Overrides literals.
func Float(v float64) *float64 {
	return &v
}
