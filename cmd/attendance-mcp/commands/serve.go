package commands

import (
	"strings"
	"time"

	"attendance-mcp/internal/api"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and the calculator page",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		ctx, stop := signalContext()
		defer stop()

		model := cfg.Model()
		log.Info().
			Str("addr", addr).
			Float64("pYes", model.PYes).
			Float64("pMaybe", model.PMaybe).
			Float64("pNo", model.PNo).
			Float64("pUnknown", model.PUnknown).
			Msg("Default probability model")

		if serveOpen {
			go func() {
				time.Sleep(300 * time.Millisecond)
				url := pageURL(addr)
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
				}
			}()
		}

		return api.NewServer(svc, cfg.CORSOrigins).ListenAndServe(ctx, addr)
	},
}

func pageURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr + "/"
	}
	return "http://" + addr + "/"
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (default from HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the calculator page in a browser")
	rootCmd.AddCommand(serveCmd)
}
