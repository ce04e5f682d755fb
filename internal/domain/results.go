package domain

import "github.com/shopspring/decimal"

// PercentileRanks are the percentile cut points reported for every
// simulation run.
var PercentileRanks = []int{5, 25, 50, 75, 95}

// ProjectionResults is the immutable outcome of one Monte Carlo run.
// Created fresh per call and owned by the caller.
type ProjectionResults struct {
	// FinalValues holds one terminal portfolio value per simulated path,
	// in path order. Excluded from serialization: only the aggregate
	// statistics cross into the presentation layer.
	FinalValues []decimal.Decimal `json:"-"`

	Percentiles       map[int]decimal.Decimal `json:"percentiles"`
	ExpectedReturn    decimal.Decimal         `json:"expected_return"` // mean per-path annualized return
	ProbabilityOfLoss decimal.Decimal         `json:"probability_of_loss"`
	VaR95             decimal.Decimal         `json:"var_95"`  // 5th-percentile terminal value
	CVaR95            decimal.Decimal         `json:"cvar_95"` // mean terminal value at or below VaR95

	ProjectionYears int             `json:"projection_years"`
	Simulations     int             `json:"simulations"`
	InitialValue    decimal.Decimal `json:"initial_value"`
}

// ToMap flattens the results to JSON-primitive types for the presentation
// layer. No decimal or slice types escape.
func (r *ProjectionResults) ToMap() map[string]any {
	percentiles := make(map[int]float64, len(r.Percentiles))
	for rank, v := range r.Percentiles {
		percentiles[rank] = v.InexactFloat64()
	}
	return map[string]any{
		"percentiles":         percentiles,
		"expected_return":     r.ExpectedReturn.InexactFloat64(),
		"probability_of_loss": r.ProbabilityOfLoss.InexactFloat64(),
		"var_95":              r.VaR95.InexactFloat64(),
		"cvar_95":             r.CVaR95.InexactFloat64(),
		"projection_years":    r.ProjectionYears,
		"simulations":         r.Simulations,
		"initial_value":       r.InitialValue.InexactFloat64(),
	}
}

// ScenarioResult is the outcome of one scenario-analysis regime.
// ProjectedValue is a deterministic point estimate for display;
// SimulatedMean and ProbabilityOfLoss come from the reduced-sample Monte
// Carlo run under the same nominal parameters.
type ScenarioResult struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ExpectedReturn     decimal.Decimal `json:"expected_return"`
	ExpectedVolatility decimal.Decimal `json:"expected_volatility"`
	ProjectedValue     decimal.Decimal `json:"projected_value"`
	SimulatedMean      decimal.Decimal `json:"simulated_mean"`
	ProbabilityOfLoss  decimal.Decimal `json:"probability_of_loss"`
}

// FireResult holds the Financial Independence / Retire Early numbers.
type FireResult struct {
	FireNumber                 decimal.Decimal `json:"fire_number"`
	AnnualExpensesToday        decimal.Decimal `json:"annual_expenses_today"`
	AnnualExpensesAtRetirement decimal.Decimal `json:"annual_expenses_at_retirement"`
	YearsToRetirement          int             `json:"years_to_retirement"`
	RetirementYears            int             `json:"retirement_years"`
	TotalRetirementNeeds       decimal.Decimal `json:"total_retirement_needs"`
	WithdrawalRate             decimal.Decimal `json:"withdrawal_rate"`
}

// SavingsPlan holds the required-monthly-savings solution. Exactly one of
// Gap or Surplus is non-zero.
type SavingsPlan struct {
	MonthlySavingsNeeded decimal.Decimal `json:"monthly_savings_needed"`
	TotalSavingsNeeded   decimal.Decimal `json:"total_savings_needed"`
	CurrentValue         decimal.Decimal `json:"current_value"`
	TargetValue          decimal.Decimal `json:"target_value"`
	FutureValueCurrent   decimal.Decimal `json:"future_value_current"`
	Gap                  decimal.Decimal `json:"gap"`
	Surplus              decimal.Decimal `json:"surplus"`
}
