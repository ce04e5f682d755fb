package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/config"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/logging"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/marketdata"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/output"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/projection"
)

var (
	planFile   string
	formatName string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-projector",
	Short: "Portfolio projection and planning engine",
	Long: `portfolio-projector runs Monte Carlo projections, scenario analysis
under market regimes, and FIRE/savings calculations over a YAML plan file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&planFile, "plan", "p", "plan.yaml", "path to the YAML plan file")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "console", "output format (console, json, csv)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine progress to stderr")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(fireCmd)
	rootCmd.AddCommand(savingsCmd)
	rootCmd.AddCommand(marketCmd)
}

// loadPlan reads and validates the plan file.
func loadPlan() (*config.Plan, error) {
	return config.NewInputParser().LoadFromFile(planFile)
}

// engineLogger builds the logger engines run with.
func engineLogger(cmd *cobra.Command) logging.Logger {
	if !verbose {
		return logging.NopLogger{}
	}
	return logging.WriterLogger{W: cmd.ErrOrStderr(), Debug: true}
}

// buildProvider wires the market-data provider when the plan points at a
// price-history export; otherwise returns nil and engines use built-in
// defaults.
func buildProvider(plan *config.Plan, logger logging.Logger) *marketdata.Provider {
	if plan.MarketData == nil || plan.MarketData.Path == "" {
		return nil
	}
	provider := marketdata.NewProvider(marketdata.NewCSVSource(plan.MarketData.Path))
	provider.SetLogger(logger)
	if plan.MarketData.CacheTTLHours > 0 {
		provider.SetCacheTTL(time.Duration(plan.MarketData.CacheTTLHours) * time.Hour)
	}
	return provider
}

// buildProjector wires the projector over the optional provider.
func buildProjector(plan *config.Plan, logger logging.Logger) (*projection.Projector, *marketdata.Provider) {
	provider := buildProvider(plan, logger)
	projector := projection.NewProjector(parameterSource(provider))
	projector.SetLogger(logger)
	return projector, provider
}

// parameterSource adapts the optional provider to the engine interface
// without smuggling a typed nil into it.
func parameterSource(provider *marketdata.Provider) projection.ParameterSource {
	if provider == nil {
		return nil
	}
	return provider
}

// scenarioSource adapts the optional provider to the analyzer interface
// without smuggling a typed nil into it.
func scenarioSource(provider *marketdata.Provider) projection.ScenarioSource {
	if provider == nil {
		return nil
	}
	return provider
}

// emit renders the report with the selected formatter.
func emit(cmd *cobra.Command, report *output.Report) error {
	formatter, err := output.ByName(formatName)
	if err != nil {
		return err
	}
	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newReport() *output.Report {
	return &output.Report{GeneratedAt: time.Now()}
}
