package marketdata

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/analysis"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/logging"
)

// minWindowPoints is the minimum number of daily observations a lookback
// window must have to be usable (roughly one trading year).
const minWindowPoints = 250

// minVIXPoints is the minimum VIX observation count before VIX-blended
// volatility is trusted over the realized figure.
const minVIXPoints = 100

// DefaultCacheTTL bounds how long a computed parameter snapshot is served
// before recomputation.
const DefaultCacheTTL = 24 * time.Hour

// lookbackWindow is one candidate history window for parameter estimation.
type lookbackWindow struct {
	name  string
	years int
}

// Candidate windows in priority order: the first one with enough data wins.
var lookbackWindows = []lookbackWindow{
	{"20-year", 20},
	{"10-year", 10},
	{"5-year", 5},
	{"3-year", 3},
}

// fallbackParameters are the conservative constants served when no lookback
// window yields sufficient data.
func fallbackParameters() domain.MarketParameters {
	return domain.MarketParameters{
		ExpectedReturn: decimal.NewFromFloat(0.10),
		Volatility:     decimal.NewFromFloat(0.25),
		RiskFreeRate:   decimal.NewFromFloat(0.0625),
		InflationRate:  decimal.NewFromFloat(0.05),
		SharpeRatio:    decimal.NewFromFloat(0.4),
		MaxDrawdown:    decimal.NewFromFloat(-0.5),
		Window:         "fallback",
	}
}

// fallbackVIXStats are historical-average VIX constants used when no index
// data is available.
func fallbackVIXStats() domain.VolatilityIndexStats {
	return domain.VolatilityIndexStats{
		CurrentVIX:   decimal.NewFromFloat(15.0),
		AverageVIX:   decimal.NewFromFloat(21.18),
		MinVIX:       decimal.NewFromFloat(8.60),
		MaxVIX:       decimal.NewFromFloat(86.64),
		Percentile25: decimal.NewFromFloat(15.0),
		Percentile75: decimal.NewFromFloat(25.0),
		DataPoints:   0,
	}
}

// currentMarketConditions returns the scalar rates not derivable from the
// benchmark series (repo rate, CPI inflation).
func currentMarketConditions() (riskFree, inflation decimal.Decimal) {
	return decimal.NewFromFloat(0.0625), decimal.NewFromFloat(0.046)
}

// Provider computes and caches market parameters. The cache is a single
// immutable snapshot plus a refresh timestamp guarded by a mutex; the
// snapshot is replaced wholesale on expiry or forced refresh.
type Provider struct {
	source BenchmarkSource
	logger logging.Logger

	cacheTTL time.Duration

	mu        sync.Mutex
	snapshot  *domain.MarketParameters
	fetchedAt time.Time
}

// NewProvider creates a provider over the given source.
func NewProvider(source BenchmarkSource) *Provider {
	return &Provider{
		source:   source,
		logger:   logging.NopLogger{},
		cacheTTL: DefaultCacheTTL,
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (p *Provider) SetLogger(l logging.Logger) {
	if l == nil {
		p.logger = logging.NopLogger{}
		return
	}
	p.logger = l
}

// SetCacheTTL overrides the snapshot lifetime.
func (p *Provider) SetCacheTTL(ttl time.Duration) { p.cacheTTL = ttl }

// MarketParameters returns the current parameter snapshot, recomputing it
// when the cache has expired. Never fails: exhausting every lookback window
// degrades to the documented conservative constants.
func (p *Provider) MarketParameters(ctx context.Context) (domain.MarketParameters, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snapshot != nil && nowFunc().Sub(p.fetchedAt) < p.cacheTTL {
		p.logger.Debugf("serving cached market parameters (window=%s)", p.snapshot.Window)
		return *p.snapshot, nil
	}
	return p.refreshLocked(ctx)
}

// Refresh forces recomputation regardless of cache age.
func (p *Provider) Refresh(ctx context.Context) (domain.MarketParameters, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshLocked(ctx)
}

func (p *Provider) refreshLocked(ctx context.Context) (domain.MarketParameters, error) {
	params := p.computeParameters(ctx)

	riskFree, inflation := currentMarketConditions()
	params.RiskFreeRate = riskFree
	if params.Window != "fallback" {
		params.InflationRate = inflation
	}

	p.snapshot = &params
	p.fetchedAt = nowFunc()
	p.logger.Infof("market parameters refreshed: window=%s return=%s volatility=%s",
		params.Window, params.ExpectedReturn.StringFixed(4), params.Volatility.StringFixed(4))
	return params, nil
}

// computeParameters walks the lookback windows in priority order and
// returns the first viable estimate, or the fallback constants.
func (p *Provider) computeParameters(ctx context.Context) domain.MarketParameters {
	if p.source == nil {
		p.logger.Warnf("no benchmark source configured, using fallback parameters")
		return fallbackParameters()
	}

	end := nowFunc()
	for _, window := range lookbackWindows {
		start := end.AddDate(-window.years, 0, 0)
		params, err := p.windowParameters(ctx, start, end, window.name)
		if err != nil {
			p.logger.Warnf("%s window unusable: %v", window.name, err)
			continue
		}
		params.Window = window.name
		return params
	}

	p.logger.Warnf("no lookback window has sufficient benchmark data, using fallback parameters: %v",
		domain.ErrDataUnavailable)
	return fallbackParameters()
}

// windowParameters estimates parameters from one lookback window.
func (p *Provider) windowParameters(ctx context.Context, start, end time.Time, name string) (domain.MarketParameters, error) {
	points, err := p.source.BenchmarkHistory(ctx, start, end)
	if err != nil {
		return domain.MarketParameters{}, fmt.Errorf("benchmark history: %w", err)
	}
	if len(points) < minWindowPoints {
		return domain.MarketParameters{}, fmt.Errorf("%w: %d benchmark points in %s window, need %d",
			domain.ErrInsufficientData, len(points), name, minWindowPoints)
	}

	first := points[0].Close
	last := points[len(points)-1].Close
	if first.IsZero() {
		return domain.MarketParameters{}, fmt.Errorf("%w: zero opening close in %s window", domain.ErrInsufficientData, name)
	}

	years := end.Sub(start).Hours() / 24 / 365.25
	totalReturn, _ := last.Div(first).Float64()
	cagr := math.Pow(totalReturn, 1/years) - 1

	dailyReturns := analysis.DailyReturns(points)
	riskFree, _ := currentMarketConditions()
	metrics := analysis.SeriesMetrics(dailyReturns, riskFree)
	volatility := metrics.Volatility

	// Blend with VIX-implied volatility when enough index data exists;
	// the forward-looking figure gets the larger weight.
	vixStats := p.volatilityIndexStats(ctx, int(years*365))
	vixAdjusted := vixStats.DataPoints > minVIXPoints
	if vixAdjusted {
		vixImplied := vixStats.AverageVIX.Div(decimal.NewFromInt(100))
		volatility = volatility.Mul(decimal.NewFromFloat(0.4)).
			Add(vixImplied.Mul(decimal.NewFromFloat(0.6)))
		p.logger.Infof("using VIX-adjusted volatility: %s", volatility.StringFixed(4))
	}

	return domain.MarketParameters{
		ExpectedReturn: decimal.NewFromFloat(cagr),
		Volatility:     volatility,
		SharpeRatio:    metrics.SharpeRatio,
		MaxDrawdown:    metrics.MaxDrawdown,
		DataPoints:     len(dailyReturns),
		PeriodYears:    decimal.NewFromFloat(years),
		VIXAdjusted:    vixAdjusted,
	}, nil
}

// VolatilityIndexStats summarizes the volatility index over the trailing
// daysBack days. Degrades to historical-average constants when the index
// series is unavailable.
func (p *Provider) VolatilityIndexStats(ctx context.Context, daysBack int) domain.VolatilityIndexStats {
	return p.volatilityIndexStats(ctx, daysBack)
}

func (p *Provider) volatilityIndexStats(ctx context.Context, daysBack int) domain.VolatilityIndexStats {
	if p.source == nil {
		return fallbackVIXStats()
	}

	end := nowFunc()
	start := end.AddDate(0, 0, -daysBack)
	points, err := p.source.VolatilityIndexHistory(ctx, start, end)
	if err != nil || len(points) == 0 {
		p.logger.Warnf("no VIX data available, using fallback values")
		return fallbackVIXStats()
	}

	closes := make([]decimal.Decimal, len(points))
	for i, pt := range points {
		closes[i] = pt.Close
	}
	sorted := analysis.SortValues(closes)

	return domain.VolatilityIndexStats{
		CurrentVIX:   closes[len(closes)-1],
		AverageVIX:   analysis.Mean(closes),
		MinVIX:       sorted[0],
		MaxVIX:       sorted[len(sorted)-1],
		Percentile25: analysis.Percentile(sorted, 25),
		Percentile75: analysis.Percentile(sorted, 75),
		DataPoints:   len(points),
	}
}
