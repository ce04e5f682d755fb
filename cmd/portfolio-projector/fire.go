package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/projection"
)

var fireCmd = &cobra.Command{
	Use:   "fire",
	Short: "Calculate the FIRE number and total retirement needs",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan()
		if err != nil {
			return err
		}
		if plan.Fire == nil {
			return fmt.Errorf("plan file has no fire section")
		}
		logger := engineLogger(cmd)
		provider := buildProvider(plan, logger)

		planner := projection.NewRetirementPlanner(parameterSource(provider))
		planner.SetLogger(logger)

		result, err := planner.FireNumber(cmd.Context(), plan.FireConfig())
		if err != nil {
			return err
		}

		report := newReport()
		report.Fire = result
		return emit(cmd, report)
	},
}
