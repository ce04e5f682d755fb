// Package config parses and validates YAML plan files for the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/projection"
)

// Plan is the top-level plan file structure.
type Plan struct {
	Portfolio  PortfolioInput   `yaml:"portfolio"`
	Projection ProjectionInput  `yaml:"projection"`
	Fire       *FireInput       `yaml:"fire,omitempty"`
	Savings    *SavingsInput    `yaml:"savings,omitempty"`
	MarketData *MarketDataInput `yaml:"market_data,omitempty"`
}

// PortfolioInput carries the portfolio value and optional holdings detail.
type PortfolioInput struct {
	CurrentValue decimal.Decimal `yaml:"current_value"`
	Holdings     []HoldingInput  `yaml:"holdings,omitempty"`
}

// HoldingInput is one position as exported from the brokerage.
type HoldingInput struct {
	TradingSymbol string          `yaml:"tradingsymbol"`
	Quantity      decimal.Decimal `yaml:"quantity"`
	AveragePrice  decimal.Decimal `yaml:"average_price"`
	LastPrice     decimal.Decimal `yaml:"last_price"`
	ClosePrice    decimal.Decimal `yaml:"close_price"`
	PnL           decimal.Decimal `yaml:"pnl"`
}

// ProjectionInput configures the Monte Carlo run.
type ProjectionInput struct {
	Years          int              `yaml:"years"`
	Simulations    int              `yaml:"simulations"`
	Method         string           `yaml:"method"`
	ExpectedReturn *decimal.Decimal `yaml:"expected_return,omitempty"`
	Volatility     *decimal.Decimal `yaml:"volatility,omitempty"`
	Seed           int64            `yaml:"seed,omitempty"`
}

// FireInput configures the FIRE calculation.
type FireInput struct {
	AnnualExpenses decimal.Decimal  `yaml:"annual_expenses"`
	CurrentAge     int              `yaml:"current_age"`
	RetirementAge  int              `yaml:"retirement_age"`
	LifeExpectancy int              `yaml:"life_expectancy,omitempty"`
	InflationRate  *decimal.Decimal `yaml:"inflation_rate,omitempty"`
	WithdrawalRate *decimal.Decimal `yaml:"withdrawal_rate,omitempty"`
}

// SavingsInput configures the required-savings calculation.
type SavingsInput struct {
	TargetValue    decimal.Decimal  `yaml:"target_value"`
	Years          int              `yaml:"years"`
	ExpectedReturn *decimal.Decimal `yaml:"expected_return,omitempty"`
}

// MarketDataInput points at the local price-history export.
type MarketDataInput struct {
	Path          string `yaml:"path"`
	CacheTTLHours int    `yaml:"cache_ttl_hours,omitempty"`
}

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan validates a loaded plan.
func (ip *InputParser) ValidatePlan(plan *Plan) error {
	if !plan.Portfolio.CurrentValue.IsPositive() {
		return fmt.Errorf("portfolio current_value must be positive, got %s",
			plan.Portfolio.CurrentValue)
	}

	for i, h := range plan.Portfolio.Holdings {
		if h.TradingSymbol == "" {
			return fmt.Errorf("holding %d: tradingsymbol is required", i)
		}
		if h.Quantity.IsNegative() {
			return fmt.Errorf("holding %s: quantity must not be negative", h.TradingSymbol)
		}
	}

	if plan.Projection.Years < 0 {
		return fmt.Errorf("projection years must not be negative, got %d", plan.Projection.Years)
	}
	if plan.Projection.Simulations < 0 {
		return fmt.Errorf("projection simulations must not be negative, got %d", plan.Projection.Simulations)
	}
	switch plan.Projection.Method {
	case "", string(projection.MethodParametric), string(projection.MethodHistorical):
	default:
		return fmt.Errorf("unknown projection method %q", plan.Projection.Method)
	}

	if plan.Fire != nil {
		if plan.Fire.RetirementAge <= plan.Fire.CurrentAge {
			return fmt.Errorf("fire retirement_age (%d) must be greater than current_age (%d)",
				plan.Fire.RetirementAge, plan.Fire.CurrentAge)
		}
		if !plan.Fire.AnnualExpenses.IsPositive() {
			return fmt.Errorf("fire annual_expenses must be positive, got %s", plan.Fire.AnnualExpenses)
		}
	}

	if plan.Savings != nil {
		if !plan.Savings.TargetValue.IsPositive() {
			return fmt.Errorf("savings target_value must be positive, got %s", plan.Savings.TargetValue)
		}
		if plan.Savings.Years <= 0 {
			return fmt.Errorf("savings years must be positive, got %d", plan.Savings.Years)
		}
	}

	return nil
}

// DomainHoldings converts the plan's holdings to domain values.
func (p *Plan) DomainHoldings() []domain.Holding {
	holdings := make([]domain.Holding, len(p.Portfolio.Holdings))
	for i, h := range p.Portfolio.Holdings {
		holdings[i] = domain.Holding{
			TradingSymbol: h.TradingSymbol,
			Quantity:      h.Quantity,
			AveragePrice:  h.AveragePrice,
			LastPrice:     h.LastPrice,
			ClosePrice:    h.ClosePrice,
			PnL:           h.PnL,
		}
	}
	return holdings
}

// ProjectionConfig converts the plan into a projector configuration.
func (p *Plan) ProjectionConfig() projection.ProjectionConfig {
	cfg := projection.ProjectionConfig{
		CurrentValue: p.Portfolio.CurrentValue,
		Years:        p.Projection.Years,
		Simulations:  p.Projection.Simulations,
		Method:       projection.Method(p.Projection.Method),
		Seed:         p.Projection.Seed,
	}
	if p.Projection.ExpectedReturn != nil {
		cfg.ExpectedReturn = decimal.NullDecimal{Decimal: *p.Projection.ExpectedReturn, Valid: true}
	}
	if p.Projection.Volatility != nil {
		cfg.Volatility = decimal.NullDecimal{Decimal: *p.Projection.Volatility, Valid: true}
	}
	return cfg
}

// FireConfig converts the plan's fire block; callers must check Fire != nil.
func (p *Plan) FireConfig() projection.FireConfig {
	cfg := projection.FireConfig{
		AnnualExpenses: p.Fire.AnnualExpenses,
		CurrentAge:     p.Fire.CurrentAge,
		RetirementAge:  p.Fire.RetirementAge,
		LifeExpectancy: p.Fire.LifeExpectancy,
	}
	if p.Fire.InflationRate != nil {
		cfg.InflationRate = decimal.NullDecimal{Decimal: *p.Fire.InflationRate, Valid: true}
	}
	if p.Fire.WithdrawalRate != nil {
		cfg.WithdrawalRate = decimal.NullDecimal{Decimal: *p.Fire.WithdrawalRate, Valid: true}
	}
	return cfg
}

// SavingsConfig converts the plan's savings block; callers must check
// Savings != nil.
func (p *Plan) SavingsConfig() projection.SavingsConfig {
	cfg := projection.SavingsConfig{
		CurrentValue: p.Portfolio.CurrentValue,
		TargetValue:  p.Savings.TargetValue,
		Years:        p.Savings.Years,
	}
	if p.Savings.ExpectedReturn != nil {
		cfg.ExpectedReturn = decimal.NullDecimal{Decimal: *p.Savings.ExpectedReturn, Valid: true}
	}
	return cfg
}
