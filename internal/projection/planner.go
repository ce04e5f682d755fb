package projection

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/logging"
)

// DefaultWithdrawalRate is the safe withdrawal rate assumed when the
// caller does not override it (3%, conservative for Indian markets).
var DefaultWithdrawalRate = decimal.NewFromFloat(0.03)

// DefaultLifeExpectancy applies when FireConfig leaves it zero.
const DefaultLifeExpectancy = 90

// RetirementPlanner computes FIRE targets and required-savings plans from
// closed-form annuity formulas over the shared market parameters.
type RetirementPlanner struct {
	Params ParameterSource // optional; built-in defaults when nil
	Logger logging.Logger
}

// NewRetirementPlanner creates a planner over an optional parameter source.
func NewRetirementPlanner(params ParameterSource) *RetirementPlanner {
	return &RetirementPlanner{Params: params, Logger: logging.NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (rp *RetirementPlanner) SetLogger(l logging.Logger) {
	if l == nil {
		rp.Logger = logging.NopLogger{}
		return
	}
	rp.Logger = l
}

func (rp *RetirementPlanner) resolveParameters(ctx context.Context) (domain.MarketParameters, error) {
	if rp.Params == nil {
		return defaultParameters(), nil
	}
	return rp.Params.MarketParameters(ctx)
}

// FireConfig describes one FIRE-number calculation.
type FireConfig struct {
	AnnualExpenses decimal.Decimal
	CurrentAge     int
	RetirementAge  int
	LifeExpectancy int // 0 means DefaultLifeExpectancy

	// Resolved from the parameter source when absent.
	InflationRate  decimal.NullDecimal
	WithdrawalRate decimal.NullDecimal // invalid means DefaultWithdrawalRate
}

// FireNumber computes the corpus required for financial independence.
func (rp *RetirementPlanner) FireNumber(ctx context.Context, config FireConfig) (*domain.FireResult, error) {
	if config.RetirementAge <= config.CurrentAge {
		return nil, fmt.Errorf("%w: retirement age (%d) must be greater than current age (%d)",
			domain.ErrInvalidInput, config.RetirementAge, config.CurrentAge)
	}
	if config.LifeExpectancy == 0 {
		config.LifeExpectancy = DefaultLifeExpectancy
	}

	params, err := rp.resolveParameters(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving market parameters: %w", err)
	}

	inflationRate := params.InflationRate
	if config.InflationRate.Valid {
		inflationRate = config.InflationRate.Decimal
	}
	withdrawalRate := DefaultWithdrawalRate
	if config.WithdrawalRate.Valid {
		withdrawalRate = config.WithdrawalRate.Decimal
	}

	yearsToRetirement := config.RetirementAge - config.CurrentAge
	retirementYears := config.LifeExpectancy - config.RetirementAge

	one := decimal.NewFromInt(1)
	futureExpenses := config.AnnualExpenses.Mul(
		one.Add(inflationRate).Pow(decimal.NewFromInt(int64(yearsToRetirement))))
	fireNumber := futureExpenses.Div(withdrawalRate)

	totalNeeds := retirementNeeds(futureExpenses, retirementYears, inflationRate, params.ExpectedReturn)

	rp.Logger.Infof("FIRE number %s at age %d (%d retirement years)",
		fireNumber.StringFixed(0), config.RetirementAge, retirementYears)

	return &domain.FireResult{
		FireNumber:                 fireNumber,
		AnnualExpensesToday:        config.AnnualExpenses,
		AnnualExpensesAtRetirement: futureExpenses,
		YearsToRetirement:          yearsToRetirement,
		RetirementYears:            retirementYears,
		TotalRetirementNeeds:       totalNeeds,
		WithdrawalRate:             withdrawalRate,
	}, nil
}

// retirementNeeds is the present value of a growing annuity of expenses
// over the retirement years. When the real return is non-positive the
// closed form is undefined, so expenses are summed directly.
func retirementNeeds(annualExpenses decimal.Decimal, years int, inflationRate, returnRate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	realReturn := one.Add(returnRate).Div(one.Add(inflationRate)).Sub(one)

	if realReturn.LessThanOrEqual(decimal.Zero) {
		total := decimal.Zero
		for i := 0; i < years; i++ {
			total = total.Add(annualExpenses.Mul(one.Add(inflationRate).Pow(decimal.NewFromInt(int64(i)))))
		}
		return total
	}

	ratio := one.Add(inflationRate).Div(one.Add(returnRate))
	return annualExpenses.Mul(one.Sub(ratio.Pow(decimal.NewFromInt(int64(years))))).
		Div(returnRate.Sub(inflationRate))
}

// SavingsConfig describes one required-savings calculation.
type SavingsConfig struct {
	CurrentValue   decimal.Decimal
	TargetValue    decimal.Decimal
	Years          int
	ExpectedReturn decimal.NullDecimal // resolved from the source when absent
}

// RequiredSavings solves for the monthly contribution that closes the gap
// between the compounded current portfolio and the target.
func (rp *RetirementPlanner) RequiredSavings(ctx context.Context, config SavingsConfig) (*domain.SavingsPlan, error) {
	if config.TargetValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: target value must be positive, got %s",
			domain.ErrInvalidInput, config.TargetValue)
	}
	if config.Years <= 0 {
		return nil, fmt.Errorf("%w: years must be positive, got %d", domain.ErrInvalidInput, config.Years)
	}
	if config.CurrentValue.IsNegative() {
		return nil, fmt.Errorf("%w: current value must not be negative, got %s",
			domain.ErrInvalidInput, config.CurrentValue)
	}

	expectedReturn := config.ExpectedReturn.Decimal
	if !config.ExpectedReturn.Valid {
		params, err := rp.resolveParameters(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving market parameters: %w", err)
		}
		expectedReturn = params.ExpectedReturn
	}

	one := decimal.NewFromInt(1)
	months := int64(config.Years) * 12
	monthlyRate := expectedReturn.Div(decimal.NewFromInt(12))

	futureValueCurrent := config.CurrentValue.Mul(
		one.Add(expectedReturn).Pow(decimal.NewFromInt(int64(config.Years))))
	remaining := config.TargetValue.Sub(futureValueCurrent)

	if remaining.LessThanOrEqual(decimal.Zero) {
		return &domain.SavingsPlan{
			MonthlySavingsNeeded: decimal.Zero,
			TotalSavingsNeeded:   decimal.Zero,
			CurrentValue:         config.CurrentValue,
			TargetValue:          config.TargetValue,
			FutureValueCurrent:   futureValueCurrent,
			Surplus:              remaining.Abs(),
		}, nil
	}

	var monthlySavings decimal.Decimal
	if monthlyRate.IsZero() {
		monthlySavings = remaining.Div(decimal.NewFromInt(months))
	} else {
		// Ordinary annuity PMT: remaining * r / ((1+r)^n - 1)
		compounded := one.Add(monthlyRate).Pow(decimal.NewFromInt(months))
		monthlySavings = remaining.Mul(monthlyRate).Div(compounded.Sub(one))
	}

	return &domain.SavingsPlan{
		MonthlySavingsNeeded: monthlySavings,
		TotalSavingsNeeded:   monthlySavings.Mul(decimal.NewFromInt(months)),
		CurrentValue:         config.CurrentValue,
		TargetValue:          config.TargetValue,
		FutureValueCurrent:   futureValueCurrent,
		Gap:                  remaining,
	}, nil
}
