package analysis

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

func TestValueHoldings(t *testing.T) {
	holdings := []domain.Holding{
		{
			TradingSymbol: "RELIANCE",
			Quantity:      decimal.NewFromInt(10),
			AveragePrice:  decimal.NewFromInt(2400),
			LastPrice:     decimal.NewFromInt(3000),
			PnL:           decimal.NewFromInt(6000),
		},
		{
			TradingSymbol: "INFY",
			Quantity:      decimal.NewFromInt(20),
			AveragePrice:  decimal.NewFromInt(1500),
			LastPrice:     decimal.NewFromInt(1350),
			PnL:           decimal.NewFromInt(-3000),
		},
	}

	summary := ValueHoldings(holdings)

	if !summary.TotalValue.Equal(decimal.NewFromInt(57000)) {
		t.Errorf("TotalValue = %s, want 57000", summary.TotalValue)
	}
	if !summary.TotalInvestment.Equal(decimal.NewFromInt(54000)) {
		t.Errorf("TotalInvestment = %s, want 54000", summary.TotalInvestment)
	}
	if !summary.TotalPnL.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("TotalPnL = %s, want 3000", summary.TotalPnL)
	}

	reliance := summary.Holdings[0]
	if !reliance.CurrentValue.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("RELIANCE current value = %s, want 30000", reliance.CurrentValue)
	}
	if !reliance.ReturnPercentage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("RELIANCE return = %s, want 25", reliance.ReturnPercentage)
	}

	// Allocations sum to 100 within rounding
	allocation := decimal.Zero
	for _, h := range summary.Holdings {
		allocation = allocation.Add(h.AllocationPercentage)
	}
	diff := allocation.Sub(decimal.NewFromInt(100)).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.02)) {
		t.Errorf("Allocations sum to %s, want about 100", allocation)
	}

	// Input slice is not mutated
	if !holdings[0].CurrentValue.IsZero() {
		t.Errorf("ValueHoldings mutated its input")
	}
}

func TestValueHoldingsEmpty(t *testing.T) {
	summary := ValueHoldings(nil)
	if !summary.TotalValue.IsZero() || !summary.TotalReturnPercentage.IsZero() {
		t.Errorf("Empty portfolio should produce zero totals")
	}
	if len(summary.Holdings) != 0 {
		t.Errorf("Expected no holdings, got %d", len(summary.Holdings))
	}
}

func TestValueHoldingsZeroAveragePrice(t *testing.T) {
	// Bonus or gifted units have no cost basis; return stays zero
	summary := ValueHoldings([]domain.Holding{
		{
			TradingSymbol: "BONUS",
			Quantity:      decimal.NewFromInt(5),
			LastPrice:     decimal.NewFromInt(100),
		},
	})
	if !summary.Holdings[0].ReturnPercentage.IsZero() {
		t.Errorf("Return with zero average price should be zero")
	}
	if !summary.Holdings[0].CurrentValue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Current value = %s, want 500", summary.Holdings[0].CurrentValue)
	}
}
