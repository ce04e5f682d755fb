// Package projection implements the portfolio projection engine: Monte
// Carlo simulation of future portfolio value, scenario analysis under
// named market regimes, and long-horizon retirement planning calculators.
package projection

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/analysis"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/logging"
)

// Method selects the simulation algorithm.
type Method string

const (
	// MethodParametric draws annual log-normal growth factors from the
	// supplied (or resolved) expected return and volatility.
	MethodParametric Method = "parametric"
	// MethodHistorical bootstraps annual returns from a caller-supplied
	// historical series, sampling with replacement.
	MethodHistorical Method = "historical"
)

const (
	// DefaultYears and DefaultSimulations apply when the caller leaves the
	// corresponding config fields zero. Callers should keep Simulations in
	// the 1,000-100,000 range to bound latency.
	DefaultYears       = 5
	DefaultSimulations = 10000

	// dailyObservationThreshold: series longer than this are treated as
	// daily data and compressed to calendar-year returns.
	dailyObservationThreshold = 250

	// minBootstrapSample: below this many source observations the
	// bootstrap proceeds but statistical reliability is degraded.
	minBootstrapSample = 30

	// maxConcurrentPaths bounds simultaneous path goroutines.
	maxConcurrentPaths = 10
)

// ParameterSource supplies market parameters when the caller omits
// expected return or volatility.
type ParameterSource interface {
	MarketParameters(ctx context.Context) (domain.MarketParameters, error)
}

// ProjectionConfig describes one simulation run.
type ProjectionConfig struct {
	CurrentValue decimal.Decimal
	Years        int    // 0 means DefaultYears
	Simulations  int    // 0 means DefaultSimulations
	Method       Method // empty means MethodParametric

	// Parametric inputs; resolved from the ParameterSource when absent.
	ExpectedReturn decimal.NullDecimal
	Volatility     decimal.NullDecimal

	// Historical input; required for MethodHistorical.
	HistoricalReturns domain.ReturnSeries

	// Seed makes the run byte-for-byte reproducible. 0 draws a seed from
	// the global entropy source.
	Seed int64
}

// Projector runs Monte Carlo projections. Stateless across calls; the only
// shared state lives in the injected ParameterSource.
type Projector struct {
	Params ParameterSource // optional; built-in defaults when nil
	Logger logging.Logger
}

// NewProjector creates a projector over an optional parameter source.
func NewProjector(params ParameterSource) *Projector {
	return &Projector{Params: params, Logger: logging.NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (p *Projector) SetLogger(l logging.Logger) {
	if l == nil {
		p.Logger = logging.NopLogger{}
		return
	}
	p.Logger = l
}

// defaultParameters are the assumptions used when no parameter source is
// configured.
func defaultParameters() domain.MarketParameters {
	return domain.MarketParameters{
		ExpectedReturn: decimal.NewFromFloat(0.12),
		Volatility:     decimal.NewFromFloat(0.22),
		RiskFreeRate:   decimal.NewFromFloat(0.0625),
		InflationRate:  decimal.NewFromFloat(0.046),
		Window:         "default",
	}
}

// resolveParameters returns parameters from the source, or the built-in
// defaults when no source is configured.
func (p *Projector) resolveParameters(ctx context.Context) (domain.MarketParameters, error) {
	if p.Params == nil {
		return defaultParameters(), nil
	}
	return p.Params.MarketParameters(ctx)
}

// Project runs a Monte Carlo simulation and aggregates the terminal value
// distribution into a ProjectionResults value.
func (p *Projector) Project(ctx context.Context, config ProjectionConfig) (*domain.ProjectionResults, error) {
	if !config.CurrentValue.IsPositive() {
		return nil, fmt.Errorf("%w: current portfolio value must be positive, got %s",
			domain.ErrInvalidInput, config.CurrentValue)
	}
	if config.Years == 0 {
		config.Years = DefaultYears
	}
	if config.Simulations == 0 {
		config.Simulations = DefaultSimulations
	}
	if config.Method == "" {
		config.Method = MethodParametric
	}
	if config.Years < 0 || config.Simulations < 0 {
		return nil, fmt.Errorf("%w: years and simulations must be positive", domain.ErrInvalidInput)
	}

	seed := config.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	p.Logger.Infof("running %s Monte Carlo with %d simulations over %d years",
		config.Method, config.Simulations, config.Years)

	var finalValues []decimal.Decimal
	var err error
	switch config.Method {
	case MethodParametric:
		finalValues, err = p.runParametric(ctx, config, seed)
	case MethodHistorical:
		finalValues, err = p.runHistorical(ctx, config, seed)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", domain.ErrInvalidInput, config.Method)
	}
	if err != nil {
		return nil, err
	}

	results := aggregate(finalValues, config)
	p.Logger.Infof("projection complete, expected return %s",
		results.ExpectedReturn.StringFixed(4))
	return results, nil
}

// runParametric simulates geometric Brownian motion with annual steps.
// The drift uses ln(1+mu) - sigma^2/2 so the expected simple growth factor
// per year is exactly 1+mu; at zero volatility every path degenerates to
// deterministic compounding at mu.
func (p *Projector) runParametric(ctx context.Context, config ProjectionConfig, seed int64) ([]decimal.Decimal, error) {
	expectedReturn := config.ExpectedReturn
	volatility := config.Volatility
	if !expectedReturn.Valid || !volatility.Valid {
		params, err := p.resolveParameters(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: expected return and volatility could not be resolved: %v",
				domain.ErrInvalidInput, err)
		}
		if !expectedReturn.Valid {
			expectedReturn = decimal.NullDecimal{Decimal: params.ExpectedReturn, Valid: true}
		}
		if !volatility.Valid {
			volatility = decimal.NullDecimal{Decimal: params.Volatility, Valid: true}
		}
		p.Logger.Infof("using market parameters: return=%s volatility=%s",
			expectedReturn.Decimal.StringFixed(4), volatility.Decimal.StringFixed(4))
	}

	mu, _ := expectedReturn.Decimal.Float64()
	sigma, _ := volatility.Decimal.Float64()
	if mu <= -1 {
		return nil, fmt.Errorf("%w: expected return must exceed -100%%", domain.ErrInvalidInput)
	}
	drift := math.Log1p(mu) - 0.5*sigma*sigma

	return p.runPaths(ctx, config.Simulations, seed, func(rng *rand.Rand) decimal.Decimal {
		value := config.CurrentValue
		for year := 0; year < config.Years; year++ {
			z := boxMuller(rng)
			growth := math.Exp(drift + sigma*z)
			value = value.Mul(decimal.NewFromFloat(growth))
		}
		return value
	})
}

// runHistorical bootstraps annual returns from the supplied series.
func (p *Projector) runHistorical(ctx context.Context, config ProjectionConfig, seed int64) ([]decimal.Decimal, error) {
	if len(config.HistoricalReturns) == 0 {
		return nil, fmt.Errorf("%w: historical returns required for historical method", domain.ErrInvalidInput)
	}

	pool := annualReturnPool(config.HistoricalReturns)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: historical returns contain no valid observations", domain.ErrInvalidInput)
	}
	if len(pool) < minBootstrapSample {
		p.Logger.Warnf("limited historical data: only %d returns available (%v)",
			len(pool), domain.ErrInsufficientData)
	}

	one := decimal.NewFromInt(1)
	return p.runPaths(ctx, config.Simulations, seed, func(rng *rand.Rand) decimal.Decimal {
		value := config.CurrentValue
		for year := 0; year < config.Years; year++ {
			sampled := pool[rng.Intn(len(pool))]
			value = value.Mul(one.Add(sampled))
		}
		return value
	})
}

// annualReturnPool cleans the series and, when it looks like daily data,
// compresses it into one compounded return per calendar year.
func annualReturnPool(series domain.ReturnSeries) []decimal.Decimal {
	clean := series.Clean()
	if len(clean) <= dailyObservationThreshold {
		return clean
	}

	one := decimal.NewFromInt(1)
	factors := make(map[int]decimal.Decimal)
	var years []int
	for _, point := range series {
		if !point.Return.Valid {
			continue
		}
		year := point.Date.Year()
		factor, ok := factors[year]
		if !ok {
			factor = one
			years = append(years, year)
		}
		factors[year] = factor.Mul(one.Add(point.Return.Decimal))
	}

	annual := make([]decimal.Decimal, 0, len(years))
	for _, year := range years {
		annual = append(annual, factors[year].Sub(one))
	}
	return annual
}

// runPaths executes path simulations in parallel. Each path derives its
// own RNG from seed+index, so the final value sequence is deterministic
// regardless of scheduling and aggregate statistics are order-independent.
func (p *Projector) runPaths(ctx context.Context, simulations int, seed int64, path func(rng *rand.Rand) decimal.Decimal) ([]decimal.Decimal, error) {
	finalValues := make([]decimal.Decimal, simulations)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentPaths)

	for i := 0; i < simulations; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(pathIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rng := rand.New(rand.NewSource(seed + int64(pathIndex)))
			finalValues[pathIndex] = path(rng)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return finalValues, nil
}

// boxMuller converts two uniform draws into a standard normal deviate.
// u1 is shifted into (0,1] to keep the logarithm finite.
func boxMuller(rng *rand.Rand) float64 {
	u1 := 1 - rng.Float64()
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// aggregate reduces terminal path values into the reported statistics.
func aggregate(finalValues []decimal.Decimal, config ProjectionConfig) *domain.ProjectionResults {
	sorted := analysis.SortValues(finalValues)

	percentiles := make(map[int]decimal.Decimal, len(domain.PercentileRanks))
	for _, rank := range domain.PercentileRanks {
		percentiles[rank] = analysis.Percentile(sorted, float64(rank))
	}

	initial, _ := config.CurrentValue.Float64()
	exponent := 1 / float64(config.Years)
	annualized := make([]decimal.Decimal, len(finalValues))
	lossCount := 0
	for i, final := range finalValues {
		f, _ := final.Float64()
		annualized[i] = decimal.NewFromFloat(math.Pow(f/initial, exponent) - 1)
		if final.LessThan(config.CurrentValue) {
			lossCount++
		}
	}

	probabilityOfLoss := decimal.Zero
	if len(finalValues) > 0 {
		probabilityOfLoss = decimal.NewFromInt(int64(lossCount)).
			Div(decimal.NewFromInt(int64(len(finalValues))))
	}

	var95 := percentiles[5]
	cvar95 := conditionalVaR(sorted, var95)

	return &domain.ProjectionResults{
		FinalValues:       finalValues,
		Percentiles:       percentiles,
		ExpectedReturn:    analysis.Mean(annualized),
		ProbabilityOfLoss: probabilityOfLoss,
		VaR95:             var95,
		CVaR95:            cvar95,
		ProjectionYears:   config.Years,
		Simulations:       config.Simulations,
		InitialValue:      config.CurrentValue,
	}
}

// conditionalVaR is the mean terminal value over the paths at or below the
// VaR threshold. The empty-subset guard cannot trigger under correct
// percentile semantics but is kept as a safety net.
func conditionalVaR(sorted []decimal.Decimal, var95 decimal.Decimal) decimal.Decimal {
	var worst []decimal.Decimal
	for _, v := range sorted {
		if v.GreaterThan(var95) {
			break
		}
		worst = append(worst, v)
	}
	if len(worst) == 0 {
		return var95
	}
	return analysis.Mean(worst)
}
