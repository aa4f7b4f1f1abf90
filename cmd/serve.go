package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	cfgpkg "github.com/KaramelBytes/crimedash/internal/config"
	"github.com/KaramelBytes/crimedash/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build every chart and serve the dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			if servePort < 0 || servePort > 65535 {
				return fmt.Errorf("invalid --port: %d", servePort)
			}
			cfg.Port = servePort
		}

		// Everything is built before the listener opens; a failing chart
		// aborts startup.
		figs, err := buildFigures()
		if err != nil {
			return err
		}
		page, err := dashboard.NewPage(figs, pageOptions())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		srv := dashboard.NewServer(page, logger)
		return srv.ListenAndServe(ctx, cfg.Addr(), func(addr net.Addr) {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Dashboard available at http://%s/ (%d charts)\n", addr, len(figs))
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", cfgpkg.DefaultHost, "interface to listen on (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", cfgpkg.DefaultPort, "port to listen on (overrides config)")
}
