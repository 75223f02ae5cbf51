// Package estimate computes expected event attendance from RSVP headcounts.
//
// Each invitee is treated as an independent Bernoulli trial whose success
// probability depends on their RSVP category (Yes, Maybe, No or no response).
// The expected attendance is the probability-weighted headcount and the
// spread is the summed binomial variance of the four categories.
package estimate

import "math"

// Estimate computes expected attendance for already validated counts.
//
// It performs no checks of its own. With Total == 0 the rate is NaN or ±Inf,
// following IEEE float division; use Evaluate for a guarded entry point.
func Estimate(c ResponseCounts, m ProbabilityModel) EstimationResult {
	u := c.Unknown()

	expected := m.PYes*c.Yes + m.PMaybe*c.Maybe + m.PNo*c.No + m.PUnknown*u

	variance := c.Yes*m.PYes*(1-m.PYes) +
		c.Maybe*m.PMaybe*(1-m.PMaybe) +
		c.No*m.PNo*(1-m.PNo) +
		u*m.PUnknown*(1-m.PUnknown)

	return EstimationResult{
		ExpectedAttendance: expected,
		AttendanceRate:     expected / c.Total,
		StandardDeviation:  math.Sqrt(variance),
		UnknownCount:       u,
		Yes:                c.Yes,
		Maybe:              c.Maybe,
		No:                 c.No,
	}
}

// Evaluate validates the counts and the model before estimating.
// Invalid counts return a *ValidationError carrying the validator's message.
func Evaluate(c ResponseCounts, m ProbabilityModel) (EstimationResult, error) {
	if v := ValidateCounts(c); !v.Valid {
		return EstimationResult{}, &ValidationError{Message: v.Message}
	}
	if err := m.Validate(); err != nil {
		return EstimationResult{}, err
	}
	return Estimate(c, m), nil
}

// Contributions returns the expected attendees contributed by each category,
// keyed by category name.
func Contributions(c ResponseCounts, m ProbabilityModel) map[string]float64 {
	return map[string]float64{
		CategoryYes:     m.PYes * c.Yes,
		CategoryMaybe:   m.PMaybe * c.Maybe,
		CategoryNo:      m.PNo * c.No,
		CategoryUnknown: m.PUnknown * c.Unknown(),
	}
}

// RSVP category names.
const (
	CategoryYes     = "yes"
	CategoryMaybe   = "maybe"
	CategoryNo      = "no"
	CategoryUnknown = "unknown"
)

// Categories lists the RSVP categories in display order.
var Categories = []string{CategoryYes, CategoryMaybe, CategoryNo, CategoryUnknown}
