package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestMean(t *testing.T) {
	if !Mean(decimals(1, 2, 3, 4)).Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("Mean(1,2,3,4) should be 2.5")
	}
	if !Mean(nil).IsZero() {
		t.Errorf("Mean of empty slice should be zero")
	}
}

func TestStdDev(t *testing.T) {
	// Population std dev of {2,4,4,4,5,5,7,9} is exactly 2
	got := StdDev(decimals(2, 4, 4, 4, 5, 5, 7, 9))
	if !got.Equal(decimal.NewFromInt(2)) {
		t.Errorf("StdDev = %s, want 2", got)
	}
	if !StdDev(decimals(5, 5, 5)).IsZero() {
		t.Errorf("StdDev of constant series should be zero")
	}
	if !StdDev(nil).IsZero() {
		t.Errorf("StdDev of empty slice should be zero")
	}
}

func TestPercentile(t *testing.T) {
	sorted := decimals(10, 20, 30, 40, 50)

	cases := []struct {
		rank float64
		want float64
	}{
		{0, 10},
		{50, 30},
		{100, 50},
		{25, 20},
		{5, 12}, // pos 0.2 between 10 and 20
	}
	for _, tc := range cases {
		got := Percentile(sorted, tc.rank)
		if !got.Equal(decimal.NewFromFloat(tc.want)) {
			t.Errorf("Percentile(%v) = %s, want %v", tc.rank, got, tc.want)
		}
	}

	if !Percentile(nil, 50).IsZero() {
		t.Errorf("Percentile of empty slice should be zero")
	}
	single := decimals(42)
	if !Percentile(single, 95).Equal(decimal.NewFromInt(42)) {
		t.Errorf("Percentile of single element should return it")
	}
}

func TestSortValuesDoesNotMutate(t *testing.T) {
	values := decimals(3, 1, 2)
	sorted := SortValues(values)

	if !sorted[0].Equal(decimal.NewFromInt(1)) || !sorted[2].Equal(decimal.NewFromInt(3)) {
		t.Errorf("SortValues not ascending: %v", sorted)
	}
	if !values[0].Equal(decimal.NewFromInt(3)) {
		t.Errorf("SortValues mutated its input")
	}
}

func TestDailyReturns(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []domain.PricePoint{
		{Date: day, Close: decimal.NewFromInt(100)},
		{Date: day.AddDate(0, 0, 1), Close: decimal.NewFromInt(110)},
		{Date: day.AddDate(0, 0, 2), Close: decimal.NewFromInt(99)},
	}

	returns := DailyReturns(points)
	if len(returns) != 2 {
		t.Fatalf("Expected 2 returns, got %d", len(returns))
	}
	if !returns[0].Equal(decimal.NewFromFloat(0.1)) {
		t.Errorf("First return = %s, want 0.1", returns[0])
	}
	if !returns[1].Equal(decimal.NewFromFloat(-0.1)) {
		t.Errorf("Second return = %s, want -0.1", returns[1])
	}

	if DailyReturns(points[:1]) != nil {
		t.Errorf("Single point should yield no returns")
	}
}

func TestSeriesMetrics(t *testing.T) {
	returns := decimals(0.01, -0.02, 0.015, -0.005, 0.02)
	metrics := SeriesMetrics(returns, decimal.NewFromFloat(0.06))

	if !metrics.Volatility.IsPositive() {
		t.Errorf("Volatility should be positive")
	}
	if metrics.MaxDrawdown.IsPositive() {
		t.Errorf("Max drawdown should be non-positive, got %s", metrics.MaxDrawdown)
	}
	if len(metrics.CumulativeReturns) != len(returns) {
		t.Errorf("Expected %d cumulative points, got %d", len(returns), len(metrics.CumulativeReturns))
	}

	// Total return is the compounded product minus one
	one := decimal.NewFromInt(1)
	want := one
	for _, r := range returns {
		want = want.Mul(one.Add(r))
	}
	want = want.Sub(one)
	if !metrics.TotalReturn.Equal(want) {
		t.Errorf("TotalReturn = %s, want %s", metrics.TotalReturn, want)
	}
}

func TestSeriesMetricsDegenerate(t *testing.T) {
	if m := SeriesMetrics(nil, decimal.Zero); !m.Volatility.IsZero() {
		t.Errorf("Empty series should yield zero metrics")
	}
	if m := SeriesMetrics(decimals(0.01, 0.01, 0.01), decimal.Zero); !m.SharpeRatio.IsZero() {
		t.Errorf("Constant series should yield zero metrics")
	}
}

func TestSeriesMetricsMaxDrawdown(t *testing.T) {
	// Up 10%, down 20%, up 5%: trough is 0.88 of the 1.10 peak
	metrics := SeriesMetrics(decimals(0.10, -0.20, 0.05), decimal.Zero)
	want := decimal.NewFromFloat(-0.20)
	if !metrics.MaxDrawdown.Equal(want) {
		t.Errorf("MaxDrawdown = %s, want %s", metrics.MaxDrawdown, want)
	}
}
