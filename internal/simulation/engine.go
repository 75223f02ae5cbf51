package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"attendance-mcp/internal/estimate"
)

// DefaultTrials is used when the caller does not ask for a trial count.
const DefaultTrials = 10000

// Limits on a single run. Cost grows with headcount times trials.
const (
	MaxTrials    = 100000
	MaxHeadcount = 100000
	MaxDraws     = 100_000_000
)

// ErrTooLarge is returned when a run would exceed the simulation limits.
var ErrTooLarge = errors.New("simulation too large")

// cancelCheckInterval is how many trials run between context checks.
const cancelCheckInterval = 64

// Engine performs the Monte-Carlo attendance simulation.
type Engine struct {
	counts estimate.ResponseCounts
	model  estimate.ProbabilityModel
	rng    *rand.Rand
}

// Percentiles of simulated attendance. P10 is the headcount reached in 90%
// of trials, P95 the headcount exceeded in only 5%.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P85 float64 `json:"p85"`
	P95 float64 `json:"p95"`
}

// Result holds the outcome distribution of a simulation run.
type Result struct {
	Trials      int         `json:"trials"`
	Mean        float64     `json:"mean"`
	StdDev      float64     `json:"std_dev"`
	Percentiles Percentiles `json:"percentiles"`
	Histogram   *Histogram  `json:"histogram,omitempty"`
	Warnings    []string    `json:"warnings,omitempty"`
	Insights    []string    `json:"insights,omitempty"`
}

// NewEngine creates an engine seeded from the clock.
func NewEngine(counts estimate.ResponseCounts, model estimate.ProbabilityModel) *Engine {
	return NewEngineWithSeed(counts, model, time.Now().UnixNano())
}

// NewEngineWithSeed creates an engine with a fixed seed for reproducible runs.
func NewEngineWithSeed(counts estimate.ResponseCounts, model estimate.ProbabilityModel, seed int64) *Engine {
	return &Engine{
		counts: counts,
		model:  model,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// CheckLimits reports whether a run over counts with the given trials stays
// within MaxTrials, MaxHeadcount and MaxDraws.
func CheckLimits(counts estimate.ResponseCounts, trials int) error {
	if trials > MaxTrials {
		return fmt.Errorf("%w: %d trials requested, at most %d allowed", ErrTooLarge, trials, MaxTrials)
	}
	headcount := math.Floor(counts.Yes) + math.Floor(counts.Maybe) + math.Floor(counts.No) + math.Floor(counts.Unknown())
	if !(headcount <= MaxHeadcount) {
		return fmt.Errorf("%w: %v people to sample, at most %d allowed", ErrTooLarge, headcount, MaxHeadcount)
	}
	if trials > 0 && headcount*float64(trials) > MaxDraws {
		return fmt.Errorf("%w: %v people over %d trials exceeds %d draws", ErrTooLarge, headcount, trials, MaxDraws)
	}
	return nil
}

// Run performs the requested number of simulation trials. It stops with
// ctx.Err() when the context ends mid-run.
func (e *Engine) Run(ctx context.Context, trials int) (Result, error) {
	if trials <= 0 {
		return Result{
			Warnings: []string{"No trials requested; the attendance distribution is empty."},
		}, nil
	}
	if err := CheckLimits(e.counts, trials); err != nil {
		return Result{}, err
	}

	groups := e.groups()
	outcomes := make([]int, trials)
	for i := 0; i < trials; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		outcomes[i] = e.simulateTrial(groups)
	}

	sort.Ints(outcomes)

	res := Result{
		Trials: trials,
		Percentiles: Percentiles{
			P10: percentile(outcomes, 0.10),
			P50: percentile(outcomes, 0.50),
			P85: percentile(outcomes, 0.85),
			P95: percentile(outcomes, 0.95),
		},
		Histogram: NewHistogram(outcomes),
	}
	res.Mean, res.StdDev = meanStdDev(outcomes)

	if hasFraction(e.counts) {
		res.Warnings = append(res.Warnings, "Fractional headcounts were rounded down to whole people for sampling.")
	}

	analytic := estimate.Estimate(e.counts, e.model)
	if analytic.StandardDeviation > 0 {
		drift := math.Abs(res.Mean-analytic.ExpectedAttendance) / analytic.StandardDeviation
		if drift > 0.5 {
			res.Insights = append(res.Insights, "Simulated mean deviates from the analytic estimate by more than half a standard deviation; consider more trials.")
		}
	}

	return res, nil
}

type group struct {
	size int
	p    float64
}

func (e *Engine) groups() []group {
	return []group{
		{int(math.Floor(e.counts.Yes)), e.model.PYes},
		{int(math.Floor(e.counts.Maybe)), e.model.PMaybe},
		{int(math.Floor(e.counts.No)), e.model.PNo},
		{int(math.Floor(e.counts.Unknown())), e.model.PUnknown},
	}
}

func (e *Engine) simulateTrial(groups []group) int {
	attended := 0
	for _, g := range groups {
		for i := 0; i < g.size; i++ {
			if e.rng.Float64() < g.p {
				attended++
			}
		}
	}
	return attended
}

// percentile reads the q-quantile from sorted outcomes.
func percentile(sorted []int, q float64) float64 {
	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return float64(sorted[idx])
}

func meanStdDev(values []int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func hasFraction(c estimate.ResponseCounts) bool {
	for _, v := range []float64{c.Yes, c.Maybe, c.No, c.Unknown()} {
		if v != math.Floor(v) {
			return true
		}
	}
	return false
}
