package domain

import "github.com/shopspring/decimal"

// Holding is a single position in the portfolio. All derived fields are
// populated at valuation time; none are attached conditionally.
type Holding struct {
	TradingSymbol   string          `json:"tradingsymbol"`
	InstrumentToken string          `json:"instrument_token,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	AveragePrice    decimal.Decimal `json:"average_price"`
	LastPrice       decimal.Decimal `json:"last_price"`
	ClosePrice      decimal.Decimal `json:"close_price"`
	PnL             decimal.Decimal `json:"pnl"`

	// Derived at valuation; zero until then.
	CurrentValue         decimal.Decimal `json:"current_value"`
	Investment           decimal.Decimal `json:"investment"`
	ReturnPercentage     decimal.Decimal `json:"return_percentage"`
	AllocationPercentage decimal.Decimal `json:"allocation_percentage"`
}

// PortfolioSummary aggregates valued holdings.
type PortfolioSummary struct {
	TotalValue            decimal.Decimal `json:"total_value"`
	TotalInvestment       decimal.Decimal `json:"total_investment"`
	TotalPnL              decimal.Decimal `json:"total_pnl"`
	TotalReturnPercentage decimal.Decimal `json:"total_return_percentage"`
	Holdings              []Holding       `json:"holdings"`
}

// PerformanceMetrics summarizes a return series.
type PerformanceMetrics struct {
	Volatility        decimal.Decimal   `json:"volatility"` // annualized
	SharpeRatio       decimal.Decimal   `json:"sharpe_ratio"`
	MaxDrawdown       decimal.Decimal   `json:"max_drawdown"`
	TotalReturn       decimal.Decimal   `json:"total_return"`
	CumulativeReturns []decimal.Decimal `json:"cumulative_returns,omitempty"`
}
