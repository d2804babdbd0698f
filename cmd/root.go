package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain/config"
	"github.com/ivanschuetz/capi-core-sub000/interface/exporter"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "capi-core",
	Short: "Composes, signs and submits capi dao transaction groups",
	Long: `Debug harness around the capi-core library: inspect dao state and
run the flows against a node. The library itself is consumed by a separate
front-end.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})))

		if err := config.ReadConfig(configFile); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		exporter.Init()
		return defaultDependencyInject()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "config file")
}
