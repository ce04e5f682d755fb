package projection

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/analysis"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/logging"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/marketdata"
)

// scenarioSimulations is the reduced path count used per scenario; only a
// loss probability is needed, not a tight distribution.
const scenarioSimulations = 1000

// ScenarioSource supplies regime-conditioned scenario parameters.
type ScenarioSource interface {
	ScenarioParameters(ctx context.Context) ([]domain.ScenarioParameter, error)
}

// ScenarioAnalyzer runs the projector under a fixed set of named market
// regimes.
type ScenarioAnalyzer struct {
	Projector *Projector
	Scenarios ScenarioSource // optional; canonical defaults when nil
	Logger    logging.Logger

	// Seed makes scenario runs reproducible; each scenario offsets it by
	// its position. 0 uses the entropy source per run.
	Seed int64
}

// NewScenarioAnalyzer creates an analyzer over the given projector.
func NewScenarioAnalyzer(projector *Projector, scenarios ScenarioSource) *ScenarioAnalyzer {
	return &ScenarioAnalyzer{
		Projector: projector,
		Scenarios: scenarios,
		Logger:    logging.NopLogger{},
	}
}

// Analyze projects currentValue under each scenario, in scenario order.
// With default scenarios the results are ordered by descending expected
// return (bull > base > bear > crash). ProjectedValue is deterministic
// compounding; ProbabilityOfLoss and SimulatedMean come from a
// reduced-sample Monte Carlo run under the scenario's parameters.
func (a *ScenarioAnalyzer) Analyze(ctx context.Context, currentValue decimal.Decimal, years int, custom []domain.ScenarioParameter) ([]domain.ScenarioResult, error) {
	if !currentValue.IsPositive() {
		return nil, fmt.Errorf("%w: current portfolio value must be positive, got %s",
			domain.ErrInvalidInput, currentValue)
	}
	if years <= 0 {
		return nil, fmt.Errorf("%w: years must be positive, got %d", domain.ErrInvalidInput, years)
	}

	scenarios, err := a.resolveScenarios(ctx, custom)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	yearsExp := decimal.NewFromInt(int64(years))
	results := make([]domain.ScenarioResult, 0, len(scenarios))
	for i, scenario := range scenarios {
		projected := currentValue.Mul(one.Add(scenario.Return).Pow(yearsExp))

		var seed int64
		if a.Seed != 0 {
			seed = a.Seed + int64(i)
		}
		mc, err := a.Projector.Project(ctx, ProjectionConfig{
			CurrentValue:   currentValue,
			Years:          years,
			Simulations:    scenarioSimulations,
			Method:         MethodParametric,
			ExpectedReturn: decimal.NullDecimal{Decimal: scenario.Return, Valid: true},
			Volatility:     decimal.NullDecimal{Decimal: scenario.Volatility, Valid: true},
			Seed:           seed,
		})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Key, err)
		}

		results = append(results, domain.ScenarioResult{
			Name:               scenario.Name,
			Description:        scenario.Description,
			ExpectedReturn:     scenario.Return,
			ExpectedVolatility: scenario.Volatility,
			ProjectedValue:     projected,
			SimulatedMean:      analysis.Mean(mc.FinalValues),
			ProbabilityOfLoss:  mc.ProbabilityOfLoss,
		})
	}
	return results, nil
}

func (a *ScenarioAnalyzer) resolveScenarios(ctx context.Context, custom []domain.ScenarioParameter) ([]domain.ScenarioParameter, error) {
	if len(custom) > 0 {
		return custom, nil
	}
	if a.Scenarios != nil {
		scenarios, err := a.Scenarios.ScenarioParameters(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving scenario parameters: %w", err)
		}
		return scenarios, nil
	}

	params, err := a.Projector.resolveParameters(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving market parameters: %w", err)
	}
	return marketdata.DefaultScenarios(params), nil
}
