package main

import (
	"github.com/spf13/cobra"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/analysis"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a Monte Carlo projection of the portfolio value",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan()
		if err != nil {
			return err
		}
		logger := engineLogger(cmd)
		projector, provider := buildProjector(plan, logger)

		results, err := projector.Project(cmd.Context(), plan.ProjectionConfig())
		if err != nil {
			return err
		}

		report := newReport()
		report.Projection = results
		if holdings := plan.DomainHoldings(); len(holdings) > 0 {
			summary := analysis.ValueHoldings(holdings)
			report.Summary = &summary
		}
		if provider != nil {
			params, err := provider.MarketParameters(cmd.Context())
			if err == nil {
				report.Market = &params
			}
		}
		return emit(cmd, report)
	},
}
