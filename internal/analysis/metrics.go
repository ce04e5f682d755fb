// Package analysis provides portfolio valuation and return-series
// statistics shared by the market-data provider and the projection engine.
package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

// TradingDaysPerYear is the annualization convention for daily series.
const TradingDaysPerYear = 252

var sqrtTradingDays = decimal.NewFromFloat(math.Sqrt(TradingDaysPerYear))

// Mean returns the arithmetic mean of values, or zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	var sum decimal.Decimal
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	mean := Mean(values)
	var varianceSum decimal.Decimal
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(decimal.NewFromInt(int64(len(values))))
	f, _ := variance.Float64()
	return decimal.NewFromFloat(math.Sqrt(f))
}

// Percentile computes the linear-interpolation percentile estimator at the
// given rank (0-100) over an already-sorted ascending slice.
func Percentile(sorted []decimal.Decimal, rank float64) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n == 1 {
		return sorted[0]
	}
	pos := rank / 100 * float64(n-1)
	lower := int(math.Floor(pos))
	if lower >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lower)
	spread := sorted[lower+1].Sub(sorted[lower])
	return sorted[lower].Add(spread.Mul(decimal.NewFromFloat(frac)))
}

// SortValues sorts a copy of values ascending and returns it.
func SortValues(values []decimal.Decimal) []decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	return sorted
}

// DailyReturns computes simple percentage changes between consecutive
// closes. The result has one fewer element than the input.
func DailyReturns(points []domain.PricePoint) []decimal.Decimal {
	if len(points) < 2 {
		return nil
	}
	returns := make([]decimal.Decimal, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Close
		if prev.IsZero() {
			continue
		}
		returns = append(returns, points[i].Close.Sub(prev).Div(prev))
	}
	return returns
}

// SeriesMetrics computes annualized volatility, Sharpe ratio, maximum
// drawdown, total return and the cumulative return path for a daily return
// series. A constant or empty series yields all-zero metrics.
func SeriesMetrics(returns []decimal.Decimal, riskFreeRate decimal.Decimal) domain.PerformanceMetrics {
	if len(returns) == 0 {
		return domain.PerformanceMetrics{}
	}
	stdDev := StdDev(returns)
	if stdDev.IsZero() {
		return domain.PerformanceMetrics{}
	}

	one := decimal.NewFromInt(1)
	cumulative := make([]decimal.Decimal, len(returns))
	running := one
	peak := decimal.Zero
	maxDrawdown := decimal.Zero
	for i, r := range returns {
		running = running.Mul(one.Add(r))
		cumulative[i] = running.Sub(one)
		if running.GreaterThan(peak) {
			peak = running
		}
		drawdown := running.Div(peak).Sub(one)
		if drawdown.LessThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}

	riskFreeDaily := riskFreeRate.Div(decimal.NewFromInt(TradingDaysPerYear))
	excess := make([]decimal.Decimal, len(returns))
	for i, r := range returns {
		excess[i] = r.Sub(riskFreeDaily)
	}
	excessStd := StdDev(excess)
	sharpe := decimal.Zero
	if !excessStd.IsZero() {
		sharpe = Mean(excess).Div(excessStd).Mul(sqrtTradingDays)
	}

	return domain.PerformanceMetrics{
		Volatility:        stdDev.Mul(sqrtTradingDays),
		SharpeRatio:       sharpe,
		MaxDrawdown:       maxDrawdown,
		TotalReturn:       running.Sub(one),
		CumulativeReturns: cumulative,
	}
}
