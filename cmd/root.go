package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/spatial-sim/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "spatial-sim",
	Short: "Simulated spatial raster analysis toolkit",
	Long:  "Generates synthetic elevation/precipitation rasters, draws clumped or random point samples from a cover-derived probability field, and extracts area-weighted zonal means inside circular buffers.",
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
