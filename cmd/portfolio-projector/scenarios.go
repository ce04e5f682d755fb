package main

import (
	"github.com/spf13/cobra"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/projection"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Project the portfolio under bull/base/bear/crash regimes",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan()
		if err != nil {
			return err
		}
		logger := engineLogger(cmd)
		projector, provider := buildProjector(plan, logger)

		analyzer := projection.NewScenarioAnalyzer(projector, scenarioSource(provider))
		analyzer.Logger = logger
		analyzer.Seed = plan.Projection.Seed

		years := plan.Projection.Years
		if years == 0 {
			years = projection.DefaultYears
		}
		results, err := analyzer.Analyze(cmd.Context(), plan.Portfolio.CurrentValue, years, nil)
		if err != nil {
			return err
		}

		report := newReport()
		report.Scenarios = results
		if provider != nil {
			sentiment := provider.MarketSentiment(cmd.Context())
			report.Sentiment = &sentiment
		}
		return emit(cmd, report)
	},
}
