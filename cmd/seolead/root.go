package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ceddto100/SEO-LEAD/internal/config"
)

const version = "0.3.0"

type rootFlags struct {
	configPath string
	dryRun     bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:     "seolead",
		Short:   "SEO content and lead automation pipeline",
		Long:    "seolead runs the keyword-to-publish content pipeline and the lead capture funnel,\nstoring all state in a shared spreadsheet.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.configPath != "" {
				os.Setenv("SEO_LEAD_CONFIG", flags.configPath)
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the YAML config file")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "use deterministic mock adapters, no external calls")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newServeCmd(flags))

	return cmd
}

// loadConfig merges file, env and CLI-level overrides.
func loadConfig(flags *rootFlags, cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if cmd.Flags().Changed("dry-run") || flags.dryRun {
		cfg.DryRun = cfg.DryRun || flags.dryRun
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	return cfg
}
