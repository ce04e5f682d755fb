package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketParameters holds the market assumptions every calculator in the
// engine is parameterized by. Computed from benchmark history when
// possible, replaced wholesale on cache refresh.
type MarketParameters struct {
	ExpectedReturn decimal.Decimal `json:"expected_return"` // annualized CAGR
	Volatility     decimal.Decimal `json:"volatility"`      // annualized std dev
	RiskFreeRate   decimal.Decimal `json:"risk_free_rate"`
	InflationRate  decimal.Decimal `json:"inflation_rate"`
	SharpeRatio    decimal.Decimal `json:"sharpe_ratio"`
	MaxDrawdown    decimal.Decimal `json:"max_drawdown"`

	// Provenance of the numbers above.
	DataPoints  int             `json:"data_points"`
	PeriodYears decimal.Decimal `json:"period_years"`
	Window      string          `json:"window"` // e.g. "20-year", "fallback"
	VIXAdjusted bool            `json:"vix_adjusted"`
}

// PricePoint is a single close observation of a benchmark or index series.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// ReturnPoint is one observation of a return series. Missing observations
// carry an invalid NullDecimal and are dropped during cleaning.
type ReturnPoint struct {
	Date   time.Time           `json:"date"`
	Return decimal.NullDecimal `json:"return"`
}

// ReturnSeries is an ordered series of (possibly gappy) returns.
type ReturnSeries []ReturnPoint

// Clean drops missing observations and returns the valid values in order.
func (s ReturnSeries) Clean() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(s))
	for _, p := range s {
		if p.Return.Valid {
			out = append(out, p.Return.Decimal)
		}
	}
	return out
}

// VolatilityIndexStats summarizes a volatility index (India VIX) over a
// lookback period.
type VolatilityIndexStats struct {
	CurrentVIX   decimal.Decimal `json:"current_vix"`
	AverageVIX   decimal.Decimal `json:"average_vix"`
	MinVIX       decimal.Decimal `json:"min_vix"`
	MaxVIX       decimal.Decimal `json:"max_vix"`
	Percentile25 decimal.Decimal `json:"percentile_25"`
	Percentile75 decimal.Decimal `json:"percentile_75"`
	DataPoints   int             `json:"data_points"`
}

// MarketSentiment classifies current conditions from the VIX level.
type MarketSentiment struct {
	CurrentVIX     decimal.Decimal `json:"current_vix"`
	Sentiment      string          `json:"sentiment"`
	RiskLevel      string          `json:"risk_level"`
	VIXPercentile  decimal.Decimal `json:"vix_percentile"`
	Recommendation string          `json:"recommendation"`
}

// ScenarioParameter describes one named market regime for scenario
// analysis. Scenarios are carried in ordered slices, never maps: the
// bull > base > bear > crash ordering is part of the contract.
type ScenarioParameter struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Return      decimal.Decimal `json:"return"`
	Volatility  decimal.Decimal `json:"volatility"`
}
