package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/partsight/insight-cli/internal/analytics"
	"github.com/partsight/insight-cli/internal/server"
	"github.com/partsight/insight-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pattern-analysis API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		source, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer source.Close()

		engine := analytics.NewEngine(source, cfg.Analytics)

		serverCfg := cfg.Server
		if servePort != 0 {
			serverCfg.Port = servePort
		}

		return server.New(engine, source, serverCfg).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
