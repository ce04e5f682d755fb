package marketdata

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

// Regime is the closed set of volatility regimes scenario parameters are
// conditioned on.
type Regime int

const (
	RegimeNormal Regime = iota
	RegimeStressed
	RegimeCalm
)

func (r Regime) String() string {
	switch r {
	case RegimeStressed:
		return "stressed"
	case RegimeCalm:
		return "calm"
	default:
		return "normal"
	}
}

var (
	stressedThreshold = decimal.NewFromFloat(1.5)
	calmThreshold     = decimal.NewFromFloat(0.8)
)

// ClassifyRegime maps the ratio of current VIX to its historical average
// onto a regime.
func ClassifyRegime(vixAdjustment decimal.Decimal) Regime {
	switch {
	case vixAdjustment.GreaterThan(stressedThreshold):
		return RegimeStressed
	case vixAdjustment.LessThan(calmThreshold):
		return RegimeCalm
	default:
		return RegimeNormal
	}
}

// scenarioSpec parameterizes one scenario row: the return is either a
// multiple of the base expected return or a fixed crash return, and the
// volatility is a multiple of base volatility (optionally the vix
// adjustment itself).
type scenarioSpec struct {
	key         string
	name        string
	description string
	returnMult  decimal.Decimal
	fixedReturn decimal.NullDecimal
	volMult     decimal.Decimal
	volFromVIX  bool
}

func mult(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func fixed(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

// scenarioTable returns the bull/base/bear/crash rows for a regime, in
// descending expected-return order.
func scenarioTable(regime Regime) []scenarioSpec {
	switch regime {
	case RegimeStressed:
		return []scenarioSpec{
			{key: "bull", name: "Bull Market", description: "Recovery from high volatility",
				returnMult: mult(1.3), volMult: mult(1.2)},
			{key: "base", name: "Base Case", description: "Volatile market conditions",
				returnMult: mult(0.8), volFromVIX: true},
			{key: "bear", name: "Bear Market", description: "Continued high volatility",
				returnMult: mult(0.2), volMult: mult(2.0)},
			{key: "crash", name: "Market Crash", description: "Extreme volatility scenario",
				fixedReturn: fixed(-0.30), volMult: mult(3.0)},
		}
	case RegimeCalm:
		return []scenarioSpec{
			{key: "bull", name: "Bull Market", description: "Strong growth in calm markets",
				returnMult: mult(1.8), volMult: mult(0.7)},
			{key: "base", name: "Base Case", description: "Stable market conditions",
				returnMult: mult(1.1), volFromVIX: true},
			{key: "bear", name: "Bear Market", description: "Mild correction",
				returnMult: mult(0.5), volMult: mult(1.3)},
			{key: "crash", name: "Market Crash", description: "Sharp but brief correction",
				fixedReturn: fixed(-0.15), volMult: mult(2.0)},
		}
	default:
		return defaultScenarioTable()
	}
}

// defaultScenarioTable holds the canonical multipliers used both for the
// normal regime and when no market-data source is available.
func defaultScenarioTable() []scenarioSpec {
	return []scenarioSpec{
		{key: "bull", name: "Bull Market", description: "Strong economic growth, positive reforms",
			returnMult: mult(1.5), volMult: mult(0.8)},
		{key: "base", name: "Base Case", description: "Normal market conditions based on historical average",
			returnMult: mult(1.0), volMult: mult(1.0)},
		{key: "bear", name: "Bear Market", description: "Economic slowdown, global headwinds",
			returnMult: mult(0.3), volMult: mult(1.5)},
		{key: "crash", name: "Market Crash", description: "Severe recession, systemic crisis",
			fixedReturn: fixed(-0.20), volMult: mult(2.5)},
	}
}

// buildScenarios expands a table of specs against base market parameters.
func buildScenarios(specs []scenarioSpec, base domain.MarketParameters, vixAdjustment decimal.Decimal) []domain.ScenarioParameter {
	out := make([]domain.ScenarioParameter, 0, len(specs))
	for _, spec := range specs {
		ret := base.ExpectedReturn.Mul(spec.returnMult)
		if spec.fixedReturn.Valid {
			ret = spec.fixedReturn.Decimal
		}
		volMult := spec.volMult
		if spec.volFromVIX {
			volMult = vixAdjustment
		}
		out = append(out, domain.ScenarioParameter{
			Key:         spec.key,
			Name:        spec.name,
			Description: spec.description,
			Return:      ret,
			Volatility:  base.Volatility.Mul(volMult),
		})
	}
	return out
}

// DefaultScenarios returns the canonical bull/base/bear/crash parameters
// derived from base market parameters, without VIX conditioning.
func DefaultScenarios(base domain.MarketParameters) []domain.ScenarioParameter {
	return buildScenarios(defaultScenarioTable(), base, decimal.NewFromInt(1))
}

// ScenarioParameters returns scenario parameters conditioned on the
// current volatility regime (ratio of current VIX to its historical
// average over the trailing 30 days).
func (p *Provider) ScenarioParameters(ctx context.Context) ([]domain.ScenarioParameter, error) {
	base, err := p.MarketParameters(ctx)
	if err != nil {
		return nil, err
	}

	vixStats := p.volatilityIndexStats(ctx, 30)
	vixAdjustment := decimal.NewFromInt(1)
	if !vixStats.AverageVIX.IsZero() {
		vixAdjustment = vixStats.CurrentVIX.Div(vixStats.AverageVIX)
	}

	regime := ClassifyRegime(vixAdjustment)
	p.logger.Infof("scenario regime=%s vix_adjustment=%s", regime, vixAdjustment.StringFixed(2))
	return buildScenarios(scenarioTable(regime), base, vixAdjustment), nil
}
