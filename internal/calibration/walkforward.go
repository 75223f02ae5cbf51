// Package calibration backtests the attendance model against recorded
// outcomes. Each event is estimated using only the events that happened
// before it, then compared with how many people actually came.
package calibration

import (
	"fmt"
	"math"
	"sort"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/history"

	"gonum.org/v1/gonum/stat"
)

// DefaultMinHistory is the number of prior events required before an event
// is used as a checkpoint.
const DefaultMinHistory = 3

// Config defines the parameters for the backtest.
type Config struct {
	MinHistory int                // Prior events needed before the first checkpoint
	Overrides  estimate.Overrides // Fallback probabilities for categories without usable history
}

// Checkpoint is one past event replayed against the model.
type Checkpoint struct {
	EventID      string                    `json:"event_id"`
	Name         string                    `json:"name"`
	Date         string                    `json:"date"`
	Model        estimate.ProbabilityModel `json:"model"`
	Predicted    float64                   `json:"predicted"`
	StdDev       float64                   `json:"std_dev"`
	Actual       float64                   `json:"actual"`
	Residual     float64                   `json:"residual"` // Actual - Predicted
	Within1Sigma bool                      `json:"within_1_sigma"`
	Within2Sigma bool                      `json:"within_2_sigma"`
}

// Result holds the aggregate backtest statistics.
type Result struct {
	Checkpoints       []Checkpoint `json:"checkpoints"`
	MeanAbsoluteError float64      `json:"mean_absolute_error"`
	MeanResidual      float64      `json:"mean_residual"` // Positive when the model underestimates
	ResidualStdDev    float64      `json:"residual_std_dev"`
	Coverage1Sigma    float64      `json:"coverage_1_sigma"`
	Coverage2Sigma    float64      `json:"coverage_2_sigma"`
	ValidationMessage string       `json:"validation_message"`
}

// Run performs the walk-forward backtest over the given outcomes.
func Run(outcomes []history.EventOutcome, cfg Config) (Result, error) {
	if cfg.MinHistory <= 0 {
		cfg.MinHistory = DefaultMinHistory
	}

	ordered := make([]history.EventOutcome, len(outcomes))
	copy(ordered, outcomes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	result := Result{Checkpoints: make([]Checkpoint, 0)}
	if len(ordered) <= cfg.MinHistory {
		result.ValidationMessage = fmt.Sprintf("Not enough history: %d events recorded, more than %d needed for a backtest.", len(ordered), cfg.MinHistory)
		return result, nil
	}

	for i := cfg.MinHistory; i < len(ordered); i++ {
		target := ordered[i]
		if err := target.Validate(); err != nil {
			return Result{}, fmt.Errorf("event %q on %s: %w", target.Name, target.Date, err)
		}

		// Only events known before the target may shape its model.
		prior := estimate.OverridesFromHistory(history.Samples(ordered[:i]))
		model := estimate.BuildProbabilityModel(prior.Merge(cfg.Overrides))

		est := estimate.Estimate(target.Counts(), model)
		actual := target.Attended()
		residual := actual - est.ExpectedAttendance

		result.Checkpoints = append(result.Checkpoints, Checkpoint{
			EventID:      target.ID,
			Name:         target.Name,
			Date:         target.Date,
			Model:        model,
			Predicted:    est.ExpectedAttendance,
			StdDev:       est.StandardDeviation,
			Actual:       actual,
			Residual:     residual,
			Within1Sigma: math.Abs(residual) <= est.StandardDeviation,
			Within2Sigma: math.Abs(residual) <= 2*est.StandardDeviation,
		})
	}

	summarize(&result)
	return result, nil
}

func summarize(r *Result) {
	n := len(r.Checkpoints)
	residuals := make([]float64, n)
	absolute := make([]float64, n)
	hits1, hits2 := 0, 0

	for i, cp := range r.Checkpoints {
		residuals[i] = cp.Residual
		absolute[i] = math.Abs(cp.Residual)
		if cp.Within1Sigma {
			hits1++
		}
		if cp.Within2Sigma {
			hits2++
		}
	}

	r.MeanAbsoluteError = stat.Mean(absolute, nil)
	r.MeanResidual, r.ResidualStdDev = stat.MeanStdDev(residuals, nil)
	if n < 2 {
		r.ResidualStdDev = 0
	}
	r.Coverage1Sigma = float64(hits1) / float64(n)
	r.Coverage2Sigma = float64(hits2) / float64(n)

	switch {
	case r.Coverage2Sigma >= 0.9:
		r.ValidationMessage = fmt.Sprintf("Model is well calibrated: %.0f%% of %d events landed within ±2σ.", r.Coverage2Sigma*100, n)
	case r.MeanResidual > 0:
		r.ValidationMessage = fmt.Sprintf("Model tends to underestimate attendance by %.1f people on average.", r.MeanResidual)
	default:
		r.ValidationMessage = fmt.Sprintf("Model tends to overestimate attendance by %.1f people on average.", -r.MeanResidual)
	}
}
