package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/config"
)

var (
	cfg      *config.Config
	dataPath string
)

var rootCmd = &cobra.Command{
	Use:   "bridge-cli",
	Short: "Query bridge inspection data and route inspectors",
	Long:  "Loads a bridge inspection table (CSV, XLSX or ZIP), answers lookup, proximity and condition queries over it, and assigns inspectors to bridges by priority tier.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
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
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "bridge table to load (default data.path from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
