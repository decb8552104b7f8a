package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/partsight/insight-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "partsight",
	Short: "Pattern analysis for parts-procurement data",
	Long:  "Analyzes the warehouse's order history for price anomalies, supplier risk, delivery forecasts, part associations, and automation impact.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments configure via environment.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
