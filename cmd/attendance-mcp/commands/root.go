package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"attendance-mcp/internal/config"
	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/history"
	"attendance-mcp/internal/logging"
	"attendance-mcp/internal/mcp"
	"attendance-mcp/internal/service"
	"attendance-mcp/internal/visuals"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose   bool
	noHistory bool
	cfg       *config.AppConfig

	store history.Store
	svc   *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "attendance-mcp",
	Short: "Attendance estimation MCP server for RSVP-based events",
	Long: `Estimates how many invitees will actually attend an event, based on yes / maybe / no / no-response counts.

Without a subcommand it serves the estimator as MCP tools over stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if !noHistory {
			sqlite, err := history.OpenSQLite(cfg.HistoryDB)
			if err != nil {
				return err
			}
			store = sqlite
		}

		svc = service.New(store, service.Options{
			Defaults:   cfg.Probabilities,
			Trials:     cfg.SimulationTrials,
			MinHistory: cfg.CalibrationMinHistory,
		})

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("attendance-mcp starting")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close history store")
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		server := mcp.NewServer(svc, Version)
		return server.Run(ctx)
	},
}

// Execute runs the root command.
// Execute runs the root command and reports a failure on stderr exactly once.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	var vErr *estimate.ValidationError
	if errors.As(err, &vErr) {
		fmt.Fprintln(w, visuals.RenderError(vErr.Message))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not open the history database")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
