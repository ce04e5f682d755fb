package marketdata

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

var (
	vixCalm     = decimal.NewFromInt(15)
	vixNormal   = decimal.NewFromInt(20)
	vixElevated = decimal.NewFromInt(30)
)

// MarketSentiment classifies current conditions from the trailing-30-day
// VIX level and ranks it against three years of history.
func (p *Provider) MarketSentiment(ctx context.Context) domain.MarketSentiment {
	recent := p.volatilityIndexStats(ctx, 30)
	current := recent.CurrentVIX

	var sentiment, riskLevel string
	switch {
	case current.LessThan(vixCalm):
		sentiment = "Low Volatility - Calm Markets"
		riskLevel = "Low"
	case current.LessThan(vixNormal):
		sentiment = "Normal Volatility"
		riskLevel = "Moderate"
	case current.LessThan(vixElevated):
		sentiment = "Elevated Volatility - Caution Advised"
		riskLevel = "High"
	default:
		sentiment = "High Volatility - Extreme Caution"
		riskLevel = "Very High"
	}

	historical := p.volatilityIndexStats(ctx, 365*3)

	return domain.MarketSentiment{
		CurrentVIX:     current,
		Sentiment:      sentiment,
		RiskLevel:      riskLevel,
		VIXPercentile:  vixPercentile(current, historical),
		Recommendation: recommendation(current),
	}
}

// vixPercentile places the current VIX within the historical distribution
// by piecewise-linear interpolation between the known quantiles.
func vixPercentile(current decimal.Decimal, stats domain.VolatilityIndexStats) decimal.Decimal {
	segment := func(lo, hi, floor decimal.Decimal) decimal.Decimal {
		span := hi.Sub(lo)
		if span.IsZero() {
			return floor
		}
		frac := current.Sub(lo).Div(span)
		return floor.Add(decimal.NewFromInt(25).Mul(frac))
	}

	switch {
	case current.LessThanOrEqual(stats.MinVIX):
		return decimal.Zero
	case current.GreaterThanOrEqual(stats.MaxVIX):
		return decimal.NewFromInt(100)
	case current.LessThanOrEqual(stats.Percentile25):
		return segment(stats.MinVIX, stats.Percentile25, decimal.Zero)
	case current.LessThanOrEqual(stats.AverageVIX):
		return segment(stats.Percentile25, stats.AverageVIX, decimal.NewFromInt(25))
	case current.LessThanOrEqual(stats.Percentile75):
		return segment(stats.AverageVIX, stats.Percentile75, decimal.NewFromInt(50))
	default:
		return segment(stats.Percentile75, stats.MaxVIX, decimal.NewFromInt(75))
	}
}

func recommendation(vix decimal.Decimal) string {
	switch {
	case vix.LessThan(vixCalm):
		return "Markets are calm. Good time for systematic investments."
	case vix.LessThan(vixNormal):
		return "Normal market conditions. Continue with regular investment plan."
	case vix.LessThan(vixElevated):
		return "Volatility is elevated. Consider defensive positions or wait for better entry points."
	default:
		return "Extreme volatility. Consider reducing exposure or hedging positions."
	}
}
