package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prooflab/artcheck/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "artcheck",
	Short: "Packaging artwork verification",
	Long:  "Verifies print-ready artwork PDFs against approved copy documents: text matching per panel and language, copy quality, claim risk, unit conversions, font minima, and barcode integrity.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
