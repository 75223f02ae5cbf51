// Package history records how many people actually attended past events,
// broken down by RSVP category, and turns those records into historical
// samples for the estimator.
package history

import (
	"fmt"
	"time"

	"attendance-mcp/internal/estimate"
)

// DateLayout is the calendar-date format used for event dates.
const DateLayout = "2006-01-02"

// EventOutcome is the observed result of one past event.
type EventOutcome struct {
	ID   string `json:"id" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
	Date string `json:"date" yaml:"date"`

	Total float64 `json:"total" yaml:"total"`
	Yes   float64 `json:"yes" yaml:"yes"`
	Maybe float64 `json:"maybe" yaml:"maybe"`
	No    float64 `json:"no" yaml:"no"`

	AttendedYes     float64 `json:"attended_yes" yaml:"attended_yes"`
	AttendedMaybe   float64 `json:"attended_maybe" yaml:"attended_maybe"`
	AttendedNo      float64 `json:"attended_no" yaml:"attended_no"`
	AttendedUnknown float64 `json:"attended_unknown" yaml:"attended_unknown"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Counts returns the RSVP headcounts the event had before it happened.
func (o EventOutcome) Counts() estimate.ResponseCounts {
	return estimate.ResponseCounts{Total: o.Total, Yes: o.Yes, Maybe: o.Maybe, No: o.No}
}

// Attended returns the total number of people who showed up.
func (o EventOutcome) Attended() float64 {
	return o.AttendedYes + o.AttendedMaybe + o.AttendedNo + o.AttendedUnknown
}

// Validate checks the headcounts and that no category attended more people
// than it had.
func (o EventOutcome) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if _, err := time.Parse(DateLayout, o.Date); err != nil {
		return fmt.Errorf("invalid event date %q: expected YYYY-MM-DD", o.Date)
	}
	if v := estimate.ValidateCounts(o.Counts()); !v.Valid {
		return &estimate.ValidationError{Message: v.Message}
	}

	unknown := o.Counts().Unknown()
	checks := []struct {
		category string
		attended float64
		invited  float64
	}{
		{estimate.CategoryYes, o.AttendedYes, o.Yes},
		{estimate.CategoryMaybe, o.AttendedMaybe, o.Maybe},
		{estimate.CategoryNo, o.AttendedNo, o.No},
		{estimate.CategoryUnknown, o.AttendedUnknown, unknown},
	}
	for _, c := range checks {
		if c.attended < 0 || c.attended > c.invited {
			return fmt.Errorf("attended %s (%v) must be between 0 and %v", c.category, c.attended, c.invited)
		}
	}
	return nil
}

// Samples aggregates outcomes into per-category historical samples.
// Categories are summed independently; with no outcomes every entry is nil.
func Samples(outcomes []EventOutcome) estimate.HistoricalSamples {
	if len(outcomes) == 0 {
		return estimate.HistoricalSamples{}
	}

	var yes, maybe, no, unknown estimate.HistoricalSample
	for _, o := range outcomes {
		yes.Invited += o.Yes
		yes.Attended += o.AttendedYes
		maybe.Invited += o.Maybe
		maybe.Attended += o.AttendedMaybe
		no.Invited += o.No
		no.Attended += o.AttendedNo
		unknown.Invited += o.Counts().Unknown()
		unknown.Attended += o.AttendedUnknown
	}

	return estimate.HistoricalSamples{
		Yes:     &yes,
		Maybe:   &maybe,
		No:      &no,
		Unknown: &unknown,
	}
}
