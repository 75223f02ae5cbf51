package mcp

import (
	"context"
	"fmt"

	"attendance-mcp/internal/calibration"
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/history"
	"attendance-mcp/internal/service"
	"attendance-mcp/internal/simulation"
	"attendance-mcp/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// CountsArgs are the RSVP counts shared by the estimation tools.
type CountsArgs struct {
	Total float64 `json:"total" jsonschema:"Total number of people invited"`
	Yes   float64 `json:"yes,omitempty" jsonschema:"Number of yes responses"`
	Maybe float64 `json:"maybe,omitempty" jsonschema:"Number of maybe responses"`
	No    float64 `json:"no,omitempty" jsonschema:"Number of no responses"`

	PYes     *float64 `json:"p_yes,omitempty" jsonschema:"Optional attendance probability for yes responses (0-1)"`
	PMaybe   *float64 `json:"p_maybe,omitempty" jsonschema:"Optional attendance probability for maybe responses (0-1)"`
	PNo      *float64 `json:"p_no,omitempty" jsonschema:"Optional attendance probability for no responses (0-1)"`
	PUnknown *float64 `json:"p_unknown,omitempty" jsonschema:"Optional attendance probability for people who did not respond (0-1)"`

	UseHistory bool `json:"use_history,omitempty" jsonschema:"Derive probabilities from recorded past events where available"`
}

func (a CountsArgs) request() service.EstimateRequest {
	return service.EstimateRequest{
		Counts: estimate.ResponseCounts{Total: a.Total, Yes: a.Yes, Maybe: a.Maybe, No: a.No},
		Overrides: estimate.Overrides{
			PYes:     a.PYes,
			PMaybe:   a.PMaybe,
			PNo:      a.PNo,
			PUnknown: a.PUnknown,
		},
		UseHistory: a.UseHistory,
	}
}

// EstimateOutput is the result of estimate_attendance.
type EstimateOutput struct {
	Validation estimate.ValidationOutcome `json:"validation"`
	Model      estimate.ProbabilityModel  `json:"model"`
	Result     *estimate.EstimationResult `json:"result,omitempty"`
	Summary    *estimate.Summary          `json:"summary,omitempty"`
	Chart      string                     `json:"chart,omitempty"`
}

func (s *Server) handleEstimate(ctx context.Context, _ *sdk.CallToolRequest, args CountsArgs) (*sdk.CallToolResult, EstimateOutput, error) {
	req := args.request()
	resp, err := s.svc.Estimate(ctx, req)
	if err != nil {
		return nil, EstimateOutput{}, err
	}

	out := EstimateOutput{
		Validation: resp.Validation,
		Model:      resp.Model,
		Result:     resp.Result,
		Summary:    resp.Summary,
	}
	if resp.Result != nil {
		out.Chart = visuals.GenerateContributionChart(req.Counts, resp.Model)
	}
	return nil, out, nil
}

// ProbabilityArgs is one historical sample.
type ProbabilityArgs struct {
	Invited  float64 `json:"invited" jsonschema:"How many people of the category were invited"`
	Attended float64 `json:"attended" jsonschema:"How many of them attended"`
}

// ProbabilityOutput carries the derived probability, or none when the default applies.
type ProbabilityOutput struct {
	Probability *float64 `json:"probability"`
	UseDefault  bool     `json:"use_default"`
}

func (s *Server) handleProbability(_ context.Context, _ *sdk.CallToolRequest, args ProbabilityArgs) (*sdk.CallToolResult, ProbabilityOutput, error) {
	p, ok := estimate.ProbabilityFromHistory(args.Invited, args.Attended)
	if !ok {
		return nil, ProbabilityOutput{UseDefault: true}, nil
	}
	return nil, ProbabilityOutput{Probability: &p}, nil
}

// SimulateArgs extends the counts with simulation settings.
type SimulateArgs struct {
	CountsArgs
	Trials int    `json:"trials,omitempty" jsonschema:"Number of simulated events (default 10000)"`
	Seed   *int64 `json:"seed,omitempty" jsonschema:"Optional random seed for reproducible runs"`
}

// SimulateOutput is the result of simulate_attendance.
type SimulateOutput struct {
	Validation estimate.ValidationOutcome `json:"validation"`
	Model      estimate.ProbabilityModel  `json:"model"`
	Analytic   *estimate.EstimationResult `json:"analytic,omitempty"`
	Simulation *simulation.Result         `json:"simulation,omitempty"`
	Chart      string                     `json:"chart,omitempty"`
}

func (s *Server) handleSimulate(ctx context.Context, _ *sdk.CallToolRequest, args SimulateArgs) (*sdk.CallToolResult, SimulateOutput, error) {
	resp, err := s.svc.Simulate(ctx, service.SimulateRequest{
		EstimateRequest: args.request(),
		Trials:          args.Trials,
		Seed:            args.Seed,
	})
	if err != nil {
		return nil, SimulateOutput{}, err
	}

	out := SimulateOutput{
		Validation: resp.Validation,
		Model:      resp.Model,
		Analytic:   resp.Analytic,
		Simulation: resp.Simulation,
	}
	if resp.Simulation != nil {
		out.Chart = visuals.GenerateSimulationChart(*resp.Simulation)
	}
	return nil, out, nil
}

// RecordArgs describes a past event and who actually came.
type RecordArgs struct {
	Name  string  `json:"name" jsonschema:"Event name"`
	Date  string  `json:"date" jsonschema:"Event date (YYYY-MM-DD)"`
	Total float64 `json:"total" jsonschema:"Total number of people invited"`
	Yes   float64 `json:"yes,omitempty" jsonschema:"Number of yes responses"`
	Maybe float64 `json:"maybe,omitempty" jsonschema:"Number of maybe responses"`
	No    float64 `json:"no,omitempty" jsonschema:"Number of no responses"`

	AttendedYes     float64 `json:"attended_yes,omitempty" jsonschema:"How many yes respondents attended"`
	AttendedMaybe   float64 `json:"attended_maybe,omitempty" jsonschema:"How many maybe respondents attended"`
	AttendedNo      float64 `json:"attended_no,omitempty" jsonschema:"How many no respondents attended"`
	AttendedUnknown float64 `json:"attended_unknown,omitempty" jsonschema:"How many people without a response attended"`
}

// RecordOutput is the stored outcome.
type RecordOutput struct {
	Outcome history.EventOutcome `json:"outcome"`
}

func (s *Server) handleRecord(ctx context.Context, _ *sdk.CallToolRequest, args RecordArgs) (*sdk.CallToolResult, RecordOutput, error) {
	o := history.EventOutcome{
		Name:            args.Name,
		Date:            args.Date,
		Total:           args.Total,
		Yes:             args.Yes,
		Maybe:           args.Maybe,
		No:              args.No,
		AttendedYes:     args.AttendedYes,
		AttendedMaybe:   args.AttendedMaybe,
		AttendedNo:      args.AttendedNo,
		AttendedUnknown: args.AttendedUnknown,
	}
	if err := s.svc.Record(ctx, &o); err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil, RecordOutput{Outcome: o}, nil
}

func (s *Server) handleListHistory(ctx context.Context, _ *sdk.CallToolRequest, _ struct{}) (*sdk.CallToolResult, service.HistoryResponse, error) {
	resp, err := s.svc.History(ctx)
	if err != nil {
		return nil, service.HistoryResponse{}, err
	}
	log.Debug().Int("count", len(resp.Outcomes)).Msg("Listed event history")
	return nil, resp, nil
}

// CalibrateArgs tunes the backtest.
type CalibrateArgs struct {
	MinHistory int `json:"min_history,omitempty" jsonschema:"Number of earlier events required before an event is backtested (default 3)"`
}

// CalibrateOutput is the backtest with a residual chart.
type CalibrateOutput struct {
	calibration.Result
	Chart string `json:"chart,omitempty"`
}

func (s *Server) handleCalibrate(ctx context.Context, _ *sdk.CallToolRequest, args CalibrateArgs) (*sdk.CallToolResult, CalibrateOutput, error) {
	res, err := s.svc.Calibrate(ctx, args.MinHistory)
	if err != nil {
		return nil, CalibrateOutput{}, err
	}

	out := CalibrateOutput{Result: res}
	if len(res.Checkpoints) > 0 {
		out.Chart = visuals.GenerateCalibrationChart(res)
	}
	return nil, out, nil
}
