package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ValueHoldings fills in the derived fields of each holding and returns the
// aggregated summary. Holdings are copied; the input is not mutated.
func ValueHoldings(holdings []domain.Holding) domain.PortfolioSummary {
	valued := make([]domain.Holding, len(holdings))
	copy(valued, holdings)

	var totalValue, totalInvestment, totalPnL decimal.Decimal
	for i := range valued {
		h := &valued[i]
		h.CurrentValue = h.Quantity.Mul(h.LastPrice)
		h.Investment = h.Quantity.Mul(h.AveragePrice)
		if !h.AveragePrice.IsZero() {
			h.ReturnPercentage = h.LastPrice.Sub(h.AveragePrice).
				Div(h.AveragePrice).Mul(hundred).Round(2)
		}
		totalValue = totalValue.Add(h.CurrentValue)
		totalInvestment = totalInvestment.Add(h.Investment)
		totalPnL = totalPnL.Add(h.PnL)
	}

	for i := range valued {
		if !totalValue.IsZero() {
			valued[i].AllocationPercentage = valued[i].CurrentValue.
				Div(totalValue).Mul(hundred).Round(2)
		}
	}

	totalReturn := decimal.Zero
	if totalInvestment.IsPositive() {
		totalReturn = totalPnL.Div(totalInvestment).Mul(hundred)
	}

	return domain.PortfolioSummary{
		TotalValue:            totalValue,
		TotalInvestment:       totalInvestment,
		TotalPnL:              totalPnL,
		TotalReturnPercentage: totalReturn,
		Holdings:              valued,
	}
}
