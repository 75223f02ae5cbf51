package estimate

import "fmt"

// Summary is an EstimationResult formatted for display.
type Summary struct {
	Estimate   string `json:"estimate"`
	Percentage string `json:"percentage"`
	StdDev     string `json:"std_dev"`
	NoResponse string `json:"no_response"`
}

// Format rounds a result to one decimal place for display.
func Format(r EstimationResult) Summary {
	return Summary{
		Estimate:   fmt.Sprintf("%.1f people", r.ExpectedAttendance),
		Percentage: fmt.Sprintf("%.1f%% of total", r.AttendanceRate*100),
		StdDev:     fmt.Sprintf("±%.1f", r.StandardDeviation),
		NoResponse: fmt.Sprintf("%g", r.UnknownCount),
	}
}
