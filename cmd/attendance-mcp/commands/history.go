package commands

import (
	"fmt"
	"text/tabwriter"

	"attendance-mcp/internal/history"

	"github.com/spf13/cobra"
)

var (
	historyJSON bool
	newOutcome  history.EventOutcome
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded event outcomes",
}

var historyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record the RSVP counts and actual attendance of a past event",
	Example: `  attendance-mcp history add --name "Friday Social" --date 2024-03-01 \
    --total 100 --yes 50 --maybe 20 --no 10 \
    --attended-yes 40 --attended-maybe 8 --attended-no 1 --attended-unknown 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOutcome
		if err := svc.Record(cmd.Context(), &o); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s (%s): %g of %g invited attended\n", o.Name, o.ID, o.Attended(), o.Total)
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded event outcomes and the model they imply",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := svc.History(cmd.Context())
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd.OutOrStdout(), resp)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tNAME\tINVITED\tATTENDED")
		for _, o := range resp.Outcomes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\n", o.ID, o.Date, o.Name, o.Total, o.Attended())
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		m := resp.Model
		fmt.Fprintf(cmd.OutOrStdout(), "\nModel: yes %.3f  maybe %.3f  no %.3f  no response %.3f\n", m.PYes, m.PMaybe, m.PNo, m.PUnknown)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file.jsonl|file.yaml>",
	Short: "Import outcomes from a JSONL or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := svc.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d outcomes from %s\n", n, args[0])
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <file.jsonl|file.yaml>",
	Short: "Export every recorded outcome to a JSONL or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := svc.Export(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d outcomes to %s\n", n, args[0])
		return nil
	},
}

func init() {
	fl := historyAddCmd.Flags()
	fl.StringVar(&newOutcome.Name, "name", "", "event name")
	fl.StringVar(&newOutcome.Date, "date", "", "event date (YYYY-MM-DD)")
	fl.Float64Var(&newOutcome.Total, "total", 0, "total number of people invited")
	fl.Float64Var(&newOutcome.Yes, "yes", 0, "number of yes responses")
	fl.Float64Var(&newOutcome.Maybe, "maybe", 0, "number of maybe responses")
	fl.Float64Var(&newOutcome.No, "no", 0, "number of no responses")
	fl.Float64Var(&newOutcome.AttendedYes, "attended-yes", 0, "yes respondents who attended")
	fl.Float64Var(&newOutcome.AttendedMaybe, "attended-maybe", 0, "maybe respondents who attended")
	fl.Float64Var(&newOutcome.AttendedNo, "attended-no", 0, "no respondents who attended")
	fl.Float64Var(&newOutcome.AttendedUnknown, "attended-unknown", 0, "people without a response who attended")
	_ = historyAddCmd.MarkFlagRequired("name")
	_ = historyAddCmd.MarkFlagRequired("date")
	_ = historyAddCmd.MarkFlagRequired("total")

	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON")

	historyCmd.AddCommand(historyAddCmd, historyListCmd, historyDeleteCmd, historyImportCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
