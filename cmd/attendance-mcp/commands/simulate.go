package commands

import (
	"fmt"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/service"
	"attendance-mcp/internal/visuals"

	"github.com/spf13/cobra"
)

var (
	simulateFlags countFlags
	simTrials     int
	simSeed       int64
	simChart      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte-Carlo simulation of attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := service.SimulateRequest{
			EstimateRequest: simulateFlags.request(cmd),
			Trials:          simTrials,
		}
		if cmd.Flags().Changed("seed") {
			req.Seed = &simSeed
		}

		resp, err := svc.Simulate(cmd.Context(), req)
		if err != nil {
			return err
		}
		if !resp.Validation.Valid {
			return &estimate.ValidationError{Message: resp.Validation.Message}
		}

		out := cmd.OutOrStdout()
		switch {
		case simulateFlags.asJSON:
			return writeJSON(out, resp)
		case simChart:
			fmt.Fprint(out, visuals.GenerateSimulationChart(*resp.Simulation))
		default:
			fmt.Fprintln(out, visuals.RenderCard(*resp.Analytic, resp.Model))
			fmt.Fprintln(out, visuals.RenderSimulation(*resp.Simulation))
		}
		return nil
	},
}

func init() {
	simulateFlags.register(simulateCmd)
	simulateCmd.Flags().IntVar(&simTrials, "trials", 0, "number of simulated events (default from SIMULATION_TRIALS)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed for reproducible runs")
	simulateCmd.Flags().BoolVar(&simChart, "chart", false, "print a Mermaid histogram")
	rootCmd.AddCommand(simulateCmd)
}
