package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ceddto100/SEO-LEAD/internal/app"
	"github.com/ceddto100/SEO-LEAD/internal/logging"
	"github.com/ceddto100/SEO-LEAD/internal/metrics"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		niche    string
		keywords string
		limit    int
		mode     string
	)

	cmd := &cobra.Command{
		Use:   "run <workflow-id>",
		Short: "Execute one workflow (wf01-wf11)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(flags, cmd)
			logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
			metrics.Init()

			var seeds []string
			for _, kw := range strings.Split(keywords, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					seeds = append(seeds, kw)
				}
			}

			application, err := app.New(cfg, logger, app.Options{
				Niche: niche,
				Seeds: seeds,
				Limit: limit,
				Mode:  mode,
			})
			if err != nil {
				return err
			}

			summary, err := application.RunWorkflow(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for key, value := range summary {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", key, value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "business niche for keyword research")
	cmd.Flags().StringVar(&keywords, "keywords", "", "comma-separated seed keywords")
	cmd.Flags().IntVar(&limit, "limit", 0, "max articles per blog-writing run (0 = all)")
	cmd.Flags().StringVar(&mode, "mode", "daily", "analytics depth: daily, weekly or monthly")

	return cmd
}
