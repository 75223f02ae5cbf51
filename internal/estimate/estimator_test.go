package estimate

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestEstimate_DefaultModel(t *testing.T) {
	res := Estimate(ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}, DefaultModel())

	if res.UnknownCount != 20 {
		t.Errorf("expected 20 unknown, got %v", res.UnknownCount)
	}
	if !almostEqual(res.ExpectedAttendance, 51.5) {
		t.Errorf("expected attendance 51.5, got %v", res.ExpectedAttendance)
	}
	if !almostEqual(res.AttendanceRate, 0.515) {
		t.Errorf("expected rate 0.515, got %v", res.AttendanceRate)
	}
	if !almostEqual(res.StandardDeviation, math.Sqrt(15.825)) {
		t.Errorf("expected stdDev sqrt(15.825), got %v", res.StandardDeviation)
	}
	if math.Abs(res.StandardDeviation-3.978) > 0.001 {
		t.Errorf("expected stdDev ~3.978, got %v", res.StandardDeviation)
	}
	if res.Yes != 50 || res.Maybe != 20 || res.No != 10 {
		t.Errorf("input counts not echoed: %+v", res)
	}
}

func TestEstimate_UnknownCount(t *testing.T) {
	tests := []struct {
		name   string
		counts ResponseCounts
		want   float64
	}{
		{"AllResponded", ResponseCounts{Total: 30, Yes: 10, Maybe: 10, No: 10}, 0},
		{"NoneResponded", ResponseCounts{Total: 42}, 42},
		{"Partial", ResponseCounts{Total: 7, Yes: 1, Maybe: 2, No: 3}, 1},
		{"Fractional", ResponseCounts{Total: 10.5, Yes: 2.5}, 8},
		{"OverSubscribedFloorsAtZero", ResponseCounts{Total: 5, Yes: 4, Maybe: 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.counts, DefaultModel()).UnknownCount
			if got != tt.want {
				t.Errorf("UnknownCount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	c := ResponseCounts{Total: 321, Yes: 77, Maybe: 41, No: 13}
	m := BuildProbabilityModel(Overrides{PMaybe: Float(0.33)})

	first := Estimate(c, m)
	second := Estimate(c, m)
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestEstimate_CertainModelHasNoSpread(t *testing.T) {
	m := ProbabilityModel{PYes: 1, PMaybe: 1, PNo: 0, PUnknown: 0}
	res := Estimate(ResponseCounts{Total: 10, Yes: 4, Maybe: 3, No: 2}, m)

	if res.ExpectedAttendance != 7 {
		t.Errorf("expected 7, got %v", res.ExpectedAttendance)
	}
	if res.StandardDeviation != 0 {
		t.Errorf("expected zero spread, got %v", res.StandardDeviation)
	}
}

func TestEstimate_ZeroTotalIsNotFinite(t *testing.T) {
	res := Estimate(ResponseCounts{}, DefaultModel())
	if !math.IsNaN(res.AttendanceRate) {
		t.Errorf("expected NaN rate for 0/0, got %v", res.AttendanceRate)
	}
}

func TestEvaluate(t *testing.T) {
	_, err := Evaluate(ResponseCounts{Total: 0}, DefaultModel())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Message != MsgTotalNotPositive {
		t.Errorf("unexpected message: %s", vErr.Message)
	}

	_, err = Evaluate(ResponseCounts{Total: 10, Yes: 1}, ProbabilityModel{PYes: 1.5})
	if err == nil {
		t.Error("expected error for out of range probability")
	}

	res, err := Evaluate(ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}, DefaultModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(res.ExpectedAttendance, 51.5) {
		t.Errorf("expected 51.5, got %v", res.ExpectedAttendance)
	}
}

func TestContributions_SumToExpected(t *testing.T) {
	c := ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}
	m := DefaultModel()

	sum := 0.0
	for _, name := range Categories {
		sum += Contributions(c, m)[name]
	}
	if !almostEqual(sum, Estimate(c, m).ExpectedAttendance) {
		t.Errorf("contributions sum %v does not match expected attendance", sum)
	}
}

func TestFormat(t *testing.T) {
	res := Estimate(ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}, DefaultModel())
	s := Format(res)

	if s.Estimate != "51.5 people" {
		t.Errorf("unexpected estimate: %q", s.Estimate)
	}
	if s.Percentage != "51.5% of total" {
		t.Errorf("unexpected percentage: %q", s.Percentage)
	}
	if s.StdDev != "±4.0" {
		t.Errorf("unexpected std dev: %q", s.StdDev)
	}
	if s.NoResponse != "20" {
		t.Errorf("unexpected no-response: %q", s.NoResponse)
	}
}
