package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/projection"
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Solve the monthly savings needed to reach the target corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan()
		if err != nil {
			return err
		}
		if plan.Savings == nil {
			return fmt.Errorf("plan file has no savings section")
		}
		logger := engineLogger(cmd)
		provider := buildProvider(plan, logger)

		planner := projection.NewRetirementPlanner(parameterSource(provider))
		planner.SetLogger(logger)

		result, err := planner.RequiredSavings(cmd.Context(), plan.SavingsConfig())
		if err != nil {
			return err
		}

		report := newReport()
		report.Savings = result
		return emit(cmd, report)
	},
}
