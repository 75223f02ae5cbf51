package simulation

import (
	"context"
	"errors"
	"math"
	"testing"

	"attendance-mcp/internal/estimate"
)

func mustRun(t *testing.T, e *Engine, trials int) Result {
	t.Helper()
	res, err := e.Run(context.Background(), trials)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func TestEngine_MatchesAnalyticEstimate(t *testing.T) {
	counts := estimate.ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}
	e := NewEngineWithSeed(counts, estimate.DefaultModel(), 42)

	res, err := e.Run(context.Background(), 20000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	analytic := estimate.Estimate(counts, estimate.DefaultModel())

	// Standard error of the mean is ~0.03 people at this trial count.
	if math.Abs(res.Mean-analytic.ExpectedAttendance) > 0.3 {
		t.Errorf("expected mean near %.2f, got %.2f", analytic.ExpectedAttendance, res.Mean)
	}
	if math.Abs(res.StdDev-analytic.StandardDeviation) > 0.3 {
		t.Errorf("expected std dev near %.2f, got %.2f", analytic.StandardDeviation, res.StdDev)
	}
	if !(res.Percentiles.P10 <= res.Percentiles.P50 && res.Percentiles.P50 <= res.Percentiles.P85 && res.Percentiles.P85 <= res.Percentiles.P95) {
		t.Errorf("percentiles not monotonic: %+v", res.Percentiles)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	counts := estimate.ResponseCounts{Total: 40, Yes: 10, Maybe: 10}
	a := mustRun(t, NewEngineWithSeed(counts, estimate.DefaultModel(), 7), 500)
	b := mustRun(t, NewEngineWithSeed(counts, estimate.DefaultModel(), 7), 500)

	if a.Mean != b.Mean || a.Percentiles != b.Percentiles {
		t.Errorf("same seed produced different results: %+v vs %+v", a, b)
	}
}

func TestEngine_CertainOutcome(t *testing.T) {
	counts := estimate.ResponseCounts{Total: 12, Yes: 12}
	model := estimate.ProbabilityModel{PYes: 1}

	res := mustRun(t, NewEngineWithSeed(counts, model, 1), 100)
	if res.Percentiles.P10 != 12 || res.Percentiles.P95 != 12 {
		t.Errorf("expected every trial to be 12, got %+v", res.Percentiles)
	}
	if res.Histogram.Min != 12 || res.Histogram.Max != 12 || res.Histogram.Counts[0] != 100 {
		t.Errorf("unexpected histogram: %+v", res.Histogram)
	}
}

func TestEngine_ZeroTrials(t *testing.T) {
	res := mustRun(t, NewEngine(estimate.ResponseCounts{Total: 1}, estimate.DefaultModel()), 0)
	if res.Trials != 0 || len(res.Warnings) == 0 {
		t.Errorf("expected empty result with warning, got %+v", res)
	}
}

func TestEngine_FractionalCountsWarn(t *testing.T) {
	res := mustRun(t, NewEngineWithSeed(estimate.ResponseCounts{Total: 10.5, Yes: 3}, estimate.DefaultModel(), 3), 10)
	if len(res.Warnings) != 1 {
		t.Errorf("expected rounding warning, got %v", res.Warnings)
	}
}

func TestHistogram_Buckets(t *testing.T) {
	h := NewHistogram([]int{3, 3, 4, 5, 6, 6, 6, 8})
	bounds, counts := h.Buckets(3)

	expectedBounds := []int{3, 5, 7}
	expectedCounts := []int{3, 4, 1}
	if len(bounds) != len(expectedBounds) {
		t.Fatalf("expected %d buckets, got %d", len(expectedBounds), len(bounds))
	}
	for i := range bounds {
		if bounds[i] != expectedBounds[i] || counts[i] != expectedCounts[i] {
			t.Errorf("bucket %d: got (%d,%d), want (%d,%d)", i, bounds[i], counts[i], expectedBounds[i], expectedCounts[i])
		}
	}
}

func TestEngine_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counts := estimate.ResponseCounts{Total: 50000, Yes: 25000}
	_, err := NewEngineWithSeed(counts, estimate.DefaultModel(), 1).Run(ctx, 1000)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCheckLimits(t *testing.T) {
	tests := []struct {
		name    string
		counts  estimate.ResponseCounts
		trials  int
		wantErr bool
	}{
		{"Default", estimate.ResponseCounts{Total: 100, Yes: 50}, DefaultTrials, false},
		{"TooManyTrials", estimate.ResponseCounts{Total: 10}, MaxTrials + 1, true},
		{"TooManyPeople", estimate.ResponseCounts{Total: 1e6, Yes: 5e5}, 1, true},
		{"HugeTotal", estimate.ResponseCounts{Total: 1e20}, 1, true},
		{"TooManyDraws", estimate.ResponseCounts{Total: 50000}, 10000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLimits(tt.counts, tt.trials)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckLimits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTooLarge) {
				t.Errorf("expected ErrTooLarge, got %v", err)
			}
		})
	}
}
