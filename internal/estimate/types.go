package estimate

// ResponseCounts holds the RSVP headcounts for a single event.
type ResponseCounts struct {
	Total float64 `json:"total"`
	Yes   float64 `json:"yes"`
	Maybe float64 `json:"maybe"`
	No    float64 `json:"no"`
}

// Unknown returns the number of invitees who did not respond, floored at zero.
func (c ResponseCounts) Unknown() float64 {
	u := c.Total - (c.Yes + c.Maybe + c.No)
	if u < 0 {
		return 0
	}
	return u
}

// HistoricalSample is the invited/attended pair observed for one RSVP category.
type HistoricalSample struct {
	Invited  float64 `json:"invited" yaml:"invited"`
	Attended float64 `json:"attended" yaml:"attended"`
}

// HistoricalSamples carries optional per-category history. A nil entry means
// no history was supplied for that category.
type HistoricalSamples struct {
	Yes     *HistoricalSample `json:"yes,omitempty"`
	Maybe   *HistoricalSample `json:"maybe,omitempty"`
	No      *HistoricalSample `json:"no,omitempty"`
	Unknown *HistoricalSample `json:"unknown,omitempty"`
}

// EstimationResult is the outcome of a single estimation request.
// Values carry full precision; rounding belongs to Format.
type EstimationResult struct {
	ExpectedAttendance float64 `json:"expected_attendance"`
	AttendanceRate     float64 `json:"attendance_rate"`
	StandardDeviation  float64 `json:"standard_deviation"`
	UnknownCount       float64 `json:"unknown_count"`
	Yes                float64 `json:"yes"`
	Maybe              float64 `json:"maybe"`
	No                 float64 `json:"no"`
}

// ValidationOutcome reports whether a set of headcounts can be estimated.
type ValidationOutcome struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
