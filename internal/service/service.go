// Package service wires the estimator to configuration and recorded history.
// The CLI, the MCP tools and the HTTP API all go through it.
package service

import (
	"context"
	"errors"
	"fmt"

	"attendance-mcp/internal/calibration"
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/history"
	"attendance-mcp/internal/simulation"

	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidInput marks errors caused by caller-supplied values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoHistory is returned when history is requested but no store is configured.
	ErrNoHistory = errors.New("history store is not configured")
)

// Options tunes a Service.
type Options struct {
	Defaults   estimate.Overrides // Configured replacements for the built-in defaults
	Trials     int
	MinHistory int
	Seed       int64 // Non-zero pins simulation seeds for requests that give none
}

// Service answers estimation requests.
type Service struct {
	store history.Store
	opts  Options
}

// New creates a Service. store may be nil when history is disabled.
func New(store history.Store, opts Options) *Service {
	if opts.Trials <= 0 {
		opts.Trials = simulation.DefaultTrials
	}
	if opts.MinHistory <= 0 {
		opts.MinHistory = calibration.DefaultMinHistory
	}
	return &Service{store: store, opts: opts}
}

// EstimateRequest asks for an estimate of one event.
type EstimateRequest struct {
	Counts     estimate.ResponseCounts `json:"counts"`
	Overrides  estimate.Overrides      `json:"overrides"`
	UseHistory bool                    `json:"use_history"`
}

// EstimateResponse carries the validation outcome and, when valid, the estimate.
type EstimateResponse struct {
	Validation estimate.ValidationOutcome `json:"validation"`
	Model      estimate.ProbabilityModel  `json:"model"`
	Result     *estimate.EstimationResult `json:"result,omitempty"`
	Summary    *estimate.Summary          `json:"summary,omitempty"`
}

// Model resolves the probability model for a request. Precedence per
// category: request override, recorded history, configured default,
// built-in default.
func (s *Service) Model(ctx context.Context, overrides estimate.Overrides, useHistory bool) (estimate.ProbabilityModel, error) {
	merged := overrides
	if useHistory {
		if s.store == nil {
			return estimate.ProbabilityModel{}, ErrNoHistory
		}
		outcomes, err := s.store.List(ctx)
		if err != nil {
			return estimate.ProbabilityModel{}, err
		}
		merged = merged.Merge(estimate.OverridesFromHistory(history.Samples(outcomes)))
	}
	merged = merged.Merge(s.opts.Defaults)

	m := estimate.BuildProbabilityModel(merged)
	if err := m.Validate(); err != nil {
		return estimate.ProbabilityModel{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return m, nil
}

// Estimate validates the counts and estimates attendance.
// Invalid counts are reported in the response, not as an error.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (EstimateResponse, error) {
	model, err := s.Model(ctx, req.Overrides, req.UseHistory)
	if err != nil {
		return EstimateResponse{}, err
	}

	resp := EstimateResponse{
		Validation: estimate.ValidateCounts(req.Counts),
		Model:      model,
	}
	if !resp.Validation.Valid {
		log.Debug().Str("reason", resp.Validation.Message).Msg("Rejected estimation input")
		return resp, nil
	}

	res := estimate.Estimate(req.Counts, model)
	summary := estimate.Format(res)
	resp.Result = &res
	resp.Summary = &summary
	return resp, nil
}

// SimulateRequest asks for a Monte-Carlo simulation of one event.
type SimulateRequest struct {
	EstimateRequest
	Trials int    `json:"trials,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
}

// SimulateResponse pairs the simulated distribution with the analytic estimate.
type SimulateResponse struct {
	Validation estimate.ValidationOutcome `json:"validation"`
	Model      estimate.ProbabilityModel  `json:"model"`
	Analytic   *estimate.EstimationResult `json:"analytic,omitempty"`
	Simulation *simulation.Result         `json:"simulation,omitempty"`
}

// Simulate validates the counts and runs the Monte-Carlo engine.
func (s *Service) Simulate(ctx context.Context, req SimulateRequest) (SimulateResponse, error) {
	model, err := s.Model(ctx, req.Overrides, req.UseHistory)
	if err != nil {
		return SimulateResponse{}, err
	}

	resp := SimulateResponse{
		Validation: estimate.ValidateCounts(req.Counts),
		Model:      model,
	}
	if !resp.Validation.Valid {
		return resp, nil
	}

	trials := req.Trials
	if trials <= 0 {
		trials = s.opts.Trials
	}
	if err := simulation.CheckLimits(req.Counts, trials); err != nil {
		return SimulateResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var engine *simulation.Engine
	switch {
	case req.Seed != nil:
		engine = simulation.NewEngineWithSeed(req.Counts, model, *req.Seed)
	case s.opts.Seed != 0:
		engine = simulation.NewEngineWithSeed(req.Counts, model, s.opts.Seed)
	default:
		engine = simulation.NewEngine(req.Counts, model)
	}

	analytic := estimate.Estimate(req.Counts, model)
	sim, err := engine.Run(ctx, trials)
	if err != nil {
		return SimulateResponse{}, err
	}
	resp.Analytic = &analytic
	resp.Simulation = &sim
	return resp, nil
}

// Record validates and stores an event outcome.
func (s *Service) Record(ctx context.Context, o *history.EventOutcome) error {
	if s.store == nil {
		return ErrNoHistory
	}
	if err := o.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.store.Add(ctx, o); err != nil {
		return err
	}
	log.Info().Str("id", o.ID).Str("name", o.Name).Str("date", o.Date).Msg("Recorded event outcome")
	return nil
}

// HistoryResponse lists recorded outcomes and the model they imply.
type HistoryResponse struct {
	Outcomes []history.EventOutcome     `json:"outcomes"`
	Samples  estimate.HistoricalSamples `json:"samples"`
	Model    estimate.ProbabilityModel  `json:"model"`
}

// History returns every recorded outcome with the derived model.
func (s *Service) History(ctx context.Context) (HistoryResponse, error) {
	if s.store == nil {
		return HistoryResponse{}, ErrNoHistory
	}
	outcomes, err := s.store.List(ctx)
	if err != nil {
		return HistoryResponse{}, err
	}
	if outcomes == nil {
		outcomes = []history.EventOutcome{}
	}

	samples := history.Samples(outcomes)
	model := estimate.BuildProbabilityModel(estimate.OverridesFromHistory(samples).Merge(s.opts.Defaults))
	return HistoryResponse{Outcomes: outcomes, Samples: samples, Model: model}, nil
}

// Outcome returns one recorded outcome.
func (s *Service) Outcome(ctx context.Context, id string) (history.EventOutcome, error) {
	if s.store == nil {
		return history.EventOutcome{}, ErrNoHistory
	}
	return s.store.Get(ctx, id)
}

// Delete removes a recorded outcome.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoHistory
	}
	return s.store.Delete(ctx, id)
}

// Calibrate backtests the model against recorded outcomes.
// minHistory <= 0 uses the configured value.
func (s *Service) Calibrate(ctx context.Context, minHistory int) (calibration.Result, error) {
	if s.store == nil {
		return calibration.Result{}, ErrNoHistory
	}
	if minHistory <= 0 {
		minHistory = s.opts.MinHistory
	}
	outcomes, err := s.store.List(ctx)
	if err != nil {
		return calibration.Result{}, err
	}
	return calibration.Run(outcomes, calibration.Config{MinHistory: minHistory, Overrides: s.opts.Defaults})
}

// Import loads outcomes from a history file into the store.
// Outcomes that fail validation are skipped and logged.
func (s *Service) Import(ctx context.Context, path string) (int, error) {
	if s.store == nil {
		return 0, ErrNoHistory
	}
	outcomes, err := history.LoadFile(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i := range outcomes {
		o := outcomes[i]
		if err := s.store.Add(ctx, &o); err != nil {
			log.Warn().Err(err).Str("name", o.Name).Str("date", o.Date).Msg("Skipping outcome")
			continue
		}
		imported++
	}
	return imported, nil
}

// Export writes every recorded outcome to a history file.
func (s *Service) Export(ctx context.Context, path string) (int, error) {
	if s.store == nil {
		return 0, ErrNoHistory
	}
	outcomes, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := history.SaveFile(path, outcomes); err != nil {
		return 0, err
	}
	return len(outcomes), nil
}
