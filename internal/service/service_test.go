package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/history"
	"attendance-mcp/internal/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, history.Store) {
	t.Helper()
	store, err := history.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, Options{}), store
}

func outcome(date string, attendedYes float64) history.EventOutcome {
	return history.EventOutcome{
		Name:            "Social " + date,
		Date:            date,
		Total:           100,
		Yes:             50,
		Maybe:           20,
		No:              10,
		AttendedYes:     attendedYes,
		AttendedMaybe:   10,
		AttendedNo:      0,
		AttendedUnknown: 4,
	}
}

func TestEstimate_DefaultModel(t *testing.T) {
	svc := New(nil, Options{})

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		Counts: estimate.ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10},
	})
	require.NoError(t, err)

	assert.True(t, resp.Validation.Valid)
	require.NotNil(t, resp.Result)
	assert.InDelta(t, 51.5, resp.Result.ExpectedAttendance, 1e-9)
	assert.Equal(t, "51.5 people", resp.Summary.Estimate)
	assert.Equal(t, estimate.DefaultModel(), resp.Model)
}

func TestEstimate_InvalidCountsAreReported(t *testing.T) {
	svc := New(nil, Options{})

	resp, err := svc.Estimate(context.Background(), EstimateRequest{
		Counts: estimate.ResponseCounts{Total: 10, Yes: 8, Maybe: 5},
	})
	require.NoError(t, err)

	assert.False(t, resp.Validation.Valid)
	assert.Equal(t, estimate.MsgSumExceedsTotal, resp.Validation.Message)
	assert.Nil(t, resp.Result)
}

func TestEstimate_InvalidOverride(t *testing.T) {
	svc := New(nil, Options{})

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		Counts:    estimate.ResponseCounts{Total: 10},
		Overrides: estimate.Overrides{PYes: estimate.Float(1.5)},
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestModel_Precedence(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	o := outcome("2024-01-05", 45)
	require.NoError(t, store.Add(ctx, &o))

	svc.opts.Defaults = estimate.Overrides{PNo: estimate.Float(0.1), PMaybe: estimate.Float(0.3)}

	m, err := svc.Model(ctx, estimate.Overrides{PMaybe: estimate.Float(0.6)}, true)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, m.PYes, 1e-9)     // history 45/50
	assert.InDelta(t, 0.6, m.PMaybe, 1e-9)   // request override beats history
	assert.InDelta(t, 0.0, m.PNo, 1e-9)      // history 0/10 beats configured default
	assert.InDelta(t, 0.2, m.PUnknown, 1e-9) // history 4/20
}

func TestModel_HistoryWithoutStore(t *testing.T) {
	svc := New(nil, Options{})
	_, err := svc.Model(context.Background(), estimate.Overrides{}, true)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestSimulate_SeededIsDeterministic(t *testing.T) {
	svc := New(nil, Options{Trials: 500, Seed: 7})
	req := SimulateRequest{
		EstimateRequest: EstimateRequest{Counts: estimate.ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}},
	}

	a, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, a.Simulation)
	assert.Equal(t, 500, a.Simulation.Trials)
	assert.Equal(t, a.Simulation.Mean, b.Simulation.Mean)
	assert.InDelta(t, 51.5, a.Analytic.ExpectedAttendance, 1e-9)
}

func TestSimulate_InvalidCounts(t *testing.T) {
	svc := New(nil, Options{})
	resp, err := svc.Simulate(context.Background(), SimulateRequest{
		EstimateRequest: EstimateRequest{Counts: estimate.ResponseCounts{Total: 0}},
	})
	require.NoError(t, err)
	assert.False(t, resp.Validation.Valid)
	assert.Nil(t, resp.Simulation)
}

func TestRecordHistoryDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	o := outcome("2024-02-01", 40)
	require.NoError(t, svc.Record(ctx, &o))
	assert.NotEmpty(t, o.ID)

	bad := outcome("2024-02-02", 60)
	assert.ErrorIs(t, svc.Record(ctx, &bad), ErrInvalidInput)

	hist, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist.Outcomes, 1)
	require.NotNil(t, hist.Samples.Yes)
	assert.InDelta(t, 0.8, hist.Model.PYes, 1e-9)

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.ErrorIs(t, svc.Delete(ctx, o.ID), history.ErrNotFound)

	hist, err = svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, hist.Outcomes)
	assert.Equal(t, estimate.DefaultModel(), hist.Model)
}

func TestCalibrate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-05", "2024-01-12", "2024-01-19", "2024-01-26"} {
		o := outcome(d, 40)
		require.NoError(t, svc.Record(ctx, &o))
	}

	res, err := svc.Calibrate(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, res.Checkpoints, 2)
	assert.InDelta(t, 0, res.MeanAbsoluteError, 1e-9)
}

func TestImportExport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "in.yaml")
	good := outcome("2024-03-01", 40)
	bad := outcome("2024-03-08", 70)
	require.NoError(t, history.SaveFile(src, []history.EventOutcome{good, bad}))

	n, err := svc.Import(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	dst := filepath.Join(dir, "out.jsonl")
	n, err = svc.Export(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	back, err := history.LoadFile(dst)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "2024-03-01", back[0].Date)
}

func TestSimulate_RejectsOversizedRuns(t *testing.T) {
	svc := New(nil, Options{})

	tests := []struct {
		name   string
		counts estimate.ResponseCounts
		trials int
	}{
		{"HugeHeadcount", estimate.ResponseCounts{Total: 1e9, Yes: 5e8}, 10},
		{"TooManyTrials", estimate.ResponseCounts{Total: 100, Yes: 50}, simulation.MaxTrials + 1},
		{"TooManyDraws", estimate.ResponseCounts{Total: 1e5, Yes: 5e4}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Simulate(context.Background(), SimulateRequest{
				EstimateRequest: EstimateRequest{Counts: tt.counts},
				Trials:          tt.trials,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, simulation.ErrTooLarge)
		})
	}
}

func TestSimulate_HonoursCancelledContext(t *testing.T) {
	svc := New(nil, Options{Seed: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Simulate(ctx, SimulateRequest{
		EstimateRequest: EstimateRequest{Counts: estimate.ResponseCounts{Total: 50000, Yes: 25000}},
		Trials:          1000,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
