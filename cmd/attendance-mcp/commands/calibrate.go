package commands

import (
	"fmt"
	"text/tabwriter"

	"attendance-mcp/internal/visuals"

	"github.com/spf13/cobra"
)

var (
	calMinHistory int
	calJSON       bool
	calChart      bool
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Backtest the estimator against recorded events",
	Long: `Walks through recorded events in date order. Each event is predicted with a model
built only from the events before it, and the prediction is compared with the actual attendance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := svc.Calibrate(cmd.Context(), calMinHistory)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if calJSON {
			return writeJSON(out, res)
		}
		if res.ValidationMessage != "" {
			fmt.Fprintln(out, res.ValidationMessage)
			return nil
		}
		if calChart {
			fmt.Fprint(out, visuals.GenerateCalibrationChart(res))
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tNAME\tPREDICTED\tACTUAL\tRESIDUAL\t±1σ")
		for _, c := range res.Checkpoints {
			within := "no"
			if c.Within1Sigma {
				within = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%.1f\t%g\t%+.1f\t%s\n", c.Date, c.Name, c.Predicted, c.Actual, c.Residual, within)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nMAE %.2f  mean residual %+.2f  residual σ %.2f  coverage ±1σ %.0f%%  ±2σ %.0f%%\n",
			res.MeanAbsoluteError, res.MeanResidual, res.ResidualStdDev, res.Coverage1Sigma*100, res.Coverage2Sigma*100)
		return nil
	},
}

func init() {
	calibrateCmd.Flags().IntVar(&calMinHistory, "min-history", 0, "earlier events required before an event is backtested (default from CALIBRATION_MIN_HISTORY)")
	calibrateCmd.Flags().BoolVar(&calJSON, "json", false, "print JSON")
	calibrateCmd.Flags().BoolVar(&calChart, "chart", false, "print a Mermaid chart of predicted vs actual attendance")
	rootCmd.AddCommand(calibrateCmd)
}
