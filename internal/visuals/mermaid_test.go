package visuals

import (
	"context"
	"strings"
	"testing"

	"attendance-mcp/internal/calibration"
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/simulation"
)

func TestGenerateContributionChart(t *testing.T) {
	counts := estimate.ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}
	chart := GenerateContributionChart(counts, estimate.DefaultModel())

	for _, want := range []string{"pie showData", `"Yes" : 40.0`, `"Maybe" : 8.0`, `"No" : 0.5`, `"Unknown" : 3.0`} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateContributionChart_Empty(t *testing.T) {
	counts := estimate.ResponseCounts{Total: 10, No: 10}
	model := estimate.ProbabilityModel{}
	if chart := GenerateContributionChart(counts, model); chart != "" {
		t.Errorf("expected no chart, got %s", chart)
	}
}

func TestGenerateSimulationChart(t *testing.T) {
	res, err := simulation.NewEngineWithSeed(estimate.ResponseCounts{Total: 30, Yes: 20}, estimate.DefaultModel(), 11).Run(context.Background(), 200)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	chart := GenerateSimulationChart(res)

	if !strings.Contains(chart, "Simulated Attendance (200 trials)") || !strings.Contains(chart, "bar [") {
		t.Errorf("unexpected chart:\n%s", chart)
	}
	if GenerateSimulationChart(simulation.Result{}) != "" {
		t.Error("expected empty chart for empty result")
	}
}

func TestGenerateCalibrationChart(t *testing.T) {
	res := calibration.Result{Checkpoints: []calibration.Checkpoint{
		{Date: "2024-01-01", Predicted: 50, Actual: 55},
		{Date: "2024-01-08", Predicted: 52, Actual: 48},
	}}
	chart := GenerateCalibrationChart(res)

	if !strings.Contains(chart, `x-axis ["2024-01-01", "2024-01-08"]`) {
		t.Errorf("unexpected labels:\n%s", chart)
	}
	if !strings.Contains(chart, "line [50.0, 52.0]") || !strings.Contains(chart, "line [55.0, 48.0]") {
		t.Errorf("unexpected series:\n%s", chart)
	}
	if !strings.Contains(chart, "0 --> 61") {
		t.Errorf("unexpected y-axis:\n%s", chart)
	}
}

func TestRenderCard(t *testing.T) {
	counts := estimate.ResponseCounts{Total: 100, Yes: 50, Maybe: 20, No: 10}
	card := RenderCard(estimate.Estimate(counts, estimate.DefaultModel()), estimate.DefaultModel())

	for _, want := range []string{"51.5 people", "51.5% of total", "±4.0"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}
