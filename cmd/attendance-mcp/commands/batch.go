package commands

import (
	"fmt"
	"io"
	"os"

	"attendance-mcp/internal/batch"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	batchOutput     string
	batchWorkers    int
	batchUseHistory bool
	batchProbs      countFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch <events.csv>",
	Short: "Estimate many events from a CSV file",
	Long: `Reads a CSV file with the columns name,total,yes,maybe,no and writes one estimate per row.
Rows that fail validation keep their message in the error column.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer in.Close()

		rows, err := batch.ReadCSV(in)
		if err != nil {
			return err
		}

		model, err := svc.Model(cmd.Context(), batchProbs.overrides(cmd), batchUseHistory)
		if err != nil {
			return err
		}

		workers := cfg.BatchWorkers
		if batchWorkers > 0 {
			workers = batchWorkers
		}
		results, err := batch.Estimate(cmd.Context(), rows, model, workers)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := batch.WriteCSV(out, results); err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
			}
		}
		log.Info().Int("rows", len(results)).Int("invalid", failed).Msg("Batch estimation finished")
		return nil
	},
}

func init() {
	fl := batchCmd.Flags()
	fl.StringVarP(&batchOutput, "output", "o", "", "write results to a file instead of stdout")
	fl.IntVar(&batchWorkers, "workers", 0, "concurrent workers (default from BATCH_WORKERS)")
	fl.BoolVar(&batchUseHistory, "use-history", false, "derive probabilities from recorded events")
	batchProbs.registerProbabilities(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
