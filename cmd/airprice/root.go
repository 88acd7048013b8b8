package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/airbnb-price/config"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// app carries state shared by the subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "airprice",
		Short: "Clean Airbnb listings and train a price model",
		Long: `airprice loads per-city Airbnb listings dumps from a data directory,
cleans them into a cached CSV and trains a linear baseline price model.

Data layout:
  <data-dir>/<city>/raw/<city>_listings.csv.gz
  <data-dir>/<city>/processed/<city>_cleaned.csv`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := log.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}
			if cfg.File != "" {
				log.GetLogger().Debug("Using config file", log.PathKey, cfg.File)
			}
			a.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./airprice.yaml)")
	root.PersistentFlags().String("data-dir", "data", "Root directory holding <city>/raw and <city>/processed")
	root.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	root.PersistentFlags().String("log-format", "console", "Log format (console|json)")
	root.PersistentFlags().Int("jobs", 4, "Cities cleaned concurrently")

	root.AddCommand(newCleanCmd(a))
	root.AddCommand(newTrainCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}
