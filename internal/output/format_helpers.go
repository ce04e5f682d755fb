package output

import (
	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/pkg/money"
)

// FormatCurrency formats a decimal as whole rupees with separators. Kept
// here so it can be reused by multiple formatters and unit tested in
// isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.FromDecimal(amount).Format()
}

// FormatPercentage formats a decimal rate (0.12) as a percentage ("12.0%").
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
