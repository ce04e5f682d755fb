package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var marketRefresh bool

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show derived market parameters and current sentiment",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan()
		if err != nil {
			return err
		}
		logger := engineLogger(cmd)
		provider := buildProvider(plan, logger)
		if provider == nil {
			return fmt.Errorf("plan file has no market_data section")
		}

		fetch := provider.MarketParameters
		if marketRefresh {
			fetch = provider.Refresh
		}
		params, err := fetch(cmd.Context())
		if err != nil {
			return err
		}
		sentiment := provider.MarketSentiment(cmd.Context())

		report := newReport()
		report.Market = &params
		report.Sentiment = &sentiment
		return emit(cmd, report)
	},
}

func init() {
	marketCmd.Flags().BoolVar(&marketRefresh, "refresh", false, "force recomputation, bypassing the cache")
}
