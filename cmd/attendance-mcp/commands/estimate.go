package commands

import (
	"fmt"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/visuals"

	"github.com/spf13/cobra"
)

var estimateFlags countFlags

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate attendance from RSVP counts",
	Example: `  attendance-mcp estimate --total 100 --yes 50 --maybe 20 --no 10
  attendance-mcp estimate -t 100 -y 50 -m 20 -n 10 --p-maybe 0.5 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := svc.Estimate(cmd.Context(), estimateFlags.request(cmd))
		if err != nil {
			return err
		}
		if !resp.Validation.Valid {
			return &estimate.ValidationError{Message: resp.Validation.Message}
		}

		if estimateFlags.asJSON {
			return writeJSON(cmd.OutOrStdout(), resp)
		}
		fmt.Fprintln(cmd.OutOrStdout(), visuals.RenderCard(*resp.Result, resp.Model))
		return nil
	},
}

func init() {
	estimateFlags.register(estimateCmd)
	rootCmd.AddCommand(estimateCmd)
}
