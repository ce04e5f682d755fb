package marketdata

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

// fixedNow anchors the provider clock and restores it on cleanup.
func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

// stubSource serves generated series and rejects lookbacks longer than
// maxYears, mimicking an API with limited history depth.
type stubSource struct {
	maxYears  int
	benchmark []domain.PricePoint
	vix       []domain.PricePoint

	benchmarkErr error
	vixErr       error

	benchmarkCalls int
}

func (s *stubSource) BenchmarkHistory(_ context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	s.benchmarkCalls++
	if s.benchmarkErr != nil {
		return nil, s.benchmarkErr
	}
	span := end.Sub(start).Hours() / 24 / 365.25
	if s.maxYears > 0 && span > float64(s.maxYears)+0.5 {
		return nil, fmt.Errorf("history depth exceeded: %w", domain.ErrDataUnavailable)
	}
	return s.benchmark, nil
}

func (s *stubSource) VolatilityIndexHistory(_ context.Context, _, _ time.Time) ([]domain.PricePoint, error) {
	if s.vixErr != nil {
		return nil, s.vixErr
	}
	return s.vix, nil
}

// generatedSeries builds n daily points ending at end, with closes growing
// linearly from first to last.
func generatedSeries(end time.Time, n int, first, last float64) []domain.PricePoint {
	points := make([]domain.PricePoint, n)
	step := (last - first) / float64(n-1)
	for i := 0; i < n; i++ {
		points[i] = domain.PricePoint{
			Date:  end.AddDate(0, 0, -(n - 1 - i)),
			Close: decimal.NewFromFloat(first + step*float64(i)),
		}
	}
	return points
}

// constantSeries builds n daily points ending at end with a fixed close.
func constantSeries(end time.Time, n int, value float64) []domain.PricePoint {
	points := make([]domain.PricePoint, n)
	for i := 0; i < n; i++ {
		points[i] = domain.PricePoint{
			Date:  end.AddDate(0, 0, -(n - 1 - i)),
			Close: decimal.NewFromFloat(value),
		}
	}
	return points
}

func TestMarketParametersWindowSelection(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	source := &stubSource{
		maxYears:  3,
		benchmark: generatedSeries(now, 750, 100, 150),
		vix:       constantSeries(now, 200, 20),
	}
	provider := NewProvider(source)

	params, err := provider.MarketParameters(context.Background())
	require.NoError(t, err)

	// 20y, 10y and 5y lookbacks exceed the source depth, 3y wins
	assert.Equal(t, "3-year", params.Window)
	assert.Equal(t, 4, source.benchmarkCalls)

	// CAGR of 100 -> 150 over the 3-year window
	wantCAGR := decimal.NewFromFloat(0.1447) // 1.5^(1/3) - 1
	spread := params.ExpectedReturn.Sub(wantCAGR).Abs()
	assert.True(t, spread.LessThan(decimal.NewFromFloat(0.001)),
		"expected return %s, want about %s", params.ExpectedReturn, wantCAGR)

	assert.True(t, params.RiskFreeRate.Equal(decimal.NewFromFloat(0.0625)))
	assert.True(t, params.InflationRate.Equal(decimal.NewFromFloat(0.046)))
	assert.Equal(t, 749, params.DataPoints)

	// 200 VIX observations exceed the blending threshold
	assert.True(t, params.VIXAdjusted)
	// Blended volatility is dominated by the 20-level implied figure (0.20)
	assert.True(t, params.Volatility.GreaterThan(decimal.NewFromFloat(0.11)))
	assert.True(t, params.Volatility.LessThan(decimal.NewFromFloat(0.30)))
}

func TestMarketParametersNoVIXBlending(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	source := &stubSource{
		maxYears:  3,
		benchmark: generatedSeries(now, 750, 100, 150),
		vix:       constantSeries(now, 50, 20), // below minVIXPoints
	}
	provider := NewProvider(source)

	params, err := provider.MarketParameters(context.Background())
	require.NoError(t, err)
	assert.False(t, params.VIXAdjusted)
}

func TestMarketParametersCaching(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	currentTime := now
	SetNowFunc(func() time.Time { return currentTime })
	t.Cleanup(func() { SetNowFunc(time.Now) })

	source := &stubSource{
		maxYears:  3,
		benchmark: generatedSeries(now, 750, 100, 150),
		vix:       constantSeries(now, 200, 20),
	}
	provider := NewProvider(source)
	ctx := context.Background()

	_, err := provider.MarketParameters(ctx)
	require.NoError(t, err)
	callsAfterFirst := source.benchmarkCalls

	// Within the TTL the snapshot is served without touching the source
	currentTime = now.Add(1 * time.Hour)
	_, err = provider.MarketParameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, source.benchmarkCalls)

	// Past the TTL the snapshot is recomputed
	currentTime = now.Add(DefaultCacheTTL + time.Minute)
	_, err = provider.MarketParameters(ctx)
	require.NoError(t, err)
	assert.Greater(t, source.benchmarkCalls, callsAfterFirst)

	// Refresh always recomputes
	callsBeforeRefresh := source.benchmarkCalls
	_, err = provider.Refresh(ctx)
	require.NoError(t, err)
	assert.Greater(t, source.benchmarkCalls, callsBeforeRefresh)
}

func TestMarketParametersFallback(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	source := &stubSource{benchmarkErr: fmt.Errorf("exchange unreachable")}
	provider := NewProvider(source)

	params, err := provider.MarketParameters(context.Background())
	require.NoError(t, err, "parameter resolution degrades, never fails")

	assert.Equal(t, "fallback", params.Window)
	assert.True(t, params.ExpectedReturn.Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, params.Volatility.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, params.RiskFreeRate.Equal(decimal.NewFromFloat(0.0625)))
	// Fallback keeps its own conservative inflation assumption
	assert.True(t, params.InflationRate.Equal(decimal.NewFromFloat(0.05)))
}

func TestMarketParametersNilSource(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	provider := NewProvider(nil)
	params, err := provider.MarketParameters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fallback", params.Window)
}

func TestVolatilityIndexStats(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	vix := []domain.PricePoint{
		{Date: now.AddDate(0, 0, -4), Close: decimal.NewFromInt(12)},
		{Date: now.AddDate(0, 0, -3), Close: decimal.NewFromInt(18)},
		{Date: now.AddDate(0, 0, -2), Close: decimal.NewFromInt(30)},
		{Date: now.AddDate(0, 0, -1), Close: decimal.NewFromInt(24)},
	}
	provider := NewProvider(&stubSource{maxYears: 1, vix: vix})

	stats := provider.VolatilityIndexStats(context.Background(), 30)
	assert.Equal(t, 4, stats.DataPoints)
	assert.True(t, stats.CurrentVIX.Equal(decimal.NewFromInt(24)), "current is the latest close")
	assert.True(t, stats.AverageVIX.Equal(decimal.NewFromInt(21)))
	assert.True(t, stats.MinVIX.Equal(decimal.NewFromInt(12)))
	assert.True(t, stats.MaxVIX.Equal(decimal.NewFromInt(30)))
}

func TestVolatilityIndexStatsFallback(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	provider := NewProvider(&stubSource{vixErr: fmt.Errorf("index feed down")})
	stats := provider.VolatilityIndexStats(context.Background(), 30)

	assert.Equal(t, 0, stats.DataPoints)
	assert.True(t, stats.CurrentVIX.Equal(decimal.NewFromFloat(15.0)))
	assert.True(t, stats.AverageVIX.Equal(decimal.NewFromFloat(21.18)))
}

func TestMarketSentimentLevels(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	cases := []struct {
		vix       float64
		riskLevel string
	}{
		{12, "Low"},
		{17, "Moderate"},
		{25, "High"},
		{45, "Very High"},
	}
	for _, tc := range cases {
		provider := NewProvider(&stubSource{
			maxYears: 5,
			vix:      constantSeries(now, 10, tc.vix),
		})
		sentiment := provider.MarketSentiment(context.Background())
		assert.Equal(t, tc.riskLevel, sentiment.RiskLevel, "VIX %v", tc.vix)
		assert.NotEmpty(t, sentiment.Sentiment)
		assert.NotEmpty(t, sentiment.Recommendation)
	}
}

func TestVIXPercentileInterpolation(t *testing.T) {
	stats := domain.VolatilityIndexStats{
		MinVIX:       decimal.NewFromInt(10),
		Percentile25: decimal.NewFromInt(15),
		AverageVIX:   decimal.NewFromInt(20),
		Percentile75: decimal.NewFromInt(25),
		MaxVIX:       decimal.NewFromInt(40),
	}

	cases := []struct {
		current float64
		want    float64
	}{
		{5, 0},     // below historical min
		{50, 100},  // above historical max
		{15, 25},   // exactly the 25th percentile
		{12.5, 12.5},
		{20, 50},
		{32.5, 87.5},
	}
	for _, tc := range cases {
		got := vixPercentile(decimal.NewFromFloat(tc.current), stats)
		assert.True(t, got.Equal(decimal.NewFromFloat(tc.want)),
			"vix %v: percentile %s, want %v", tc.current, got, tc.want)
	}
}
