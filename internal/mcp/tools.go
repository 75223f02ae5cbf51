package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name: "estimate_attendance",
		Description: "Estimate the expected attendance of an event from its RSVP counts. " +
			"Returns the expected headcount, the attendance rate relative to the total invited, and the standard deviation of the estimate.\n\n" +
			"Each respondent attends independently with a per-category probability (defaults: yes 0.8, maybe 0.4, no 0.05, no response 0.15). " +
			"Probabilities can be overridden individually, or derived from recorded past events with 'use_history'.\n" +
			"If 'validation.valid' is false, report 'validation.message' to the user and DO NOT invent an estimate.",
	}, s.handleEstimate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "probability_from_history",
		Description: "Derive an attendance probability from one historical sample (how many of a category were invited and how many of them attended). " +
			"Returns no probability (use the default) when invited is not positive, attended is negative, or attended exceeds invited.",
	}, s.handleProbability)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "simulate_attendance",
		Description: "Run a Monte-Carlo simulation of an event's attendance. Every respondent is sampled as an independent yes/no trial with their category probability. " +
			"Returns percentiles (P10, P50, P85, P95), the sample mean and spread, a histogram, and the analytic estimate for comparison.\n" +
			"Use this when the user asks for ranges or confidence levels (e.g. 'how many chairs do we need to be 95% safe?').\n" +
			"Runs are limited to 100000 trials, 100000 sampled people, and 100 million draws in total; larger requests are rejected.",
	}, s.handleSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "record_event_outcome",
		Description: "Record the RSVP counts and the actual attendance per category of a past event. " +
			"Recorded outcomes feed 'use_history' and 'calibrate_model'.",
	}, s.handleRecord)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "list_event_history",
		Description: "List recorded event outcomes together with the aggregated per-category samples and the probability model they imply.",
	}, s.handleListHistory)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "calibrate_model",
		Description: "Backtest the estimator against recorded events (walk-forward). For each event, a model is built only from events that happened before it, " +
			"and the prediction is compared with the actual attendance. Returns per-event residuals, mean absolute error, and how often the actual value fell within one and two standard deviations.",
	}, s.handleCalibrate)
}
