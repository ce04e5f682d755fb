package output

import (
	"bytes"
	"fmt"
	"sort"
)

// ConsoleFormatter provides a concise console-style summary via the
// formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PORTFOLIO PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")

	if report.Summary != nil {
		s := report.Summary
		fmt.Fprintf(&buf, "Portfolio Value: %s  Investment: %s  P&L: %s (%s)\n",
			FormatCurrency(s.TotalValue), FormatCurrency(s.TotalInvestment),
			FormatCurrency(s.TotalPnL), s.TotalReturnPercentage.StringFixed(1)+"%")
		for _, h := range s.Holdings {
			fmt.Fprintf(&buf, "  %-12s qty=%s value=%s alloc=%s%%\n",
				h.TradingSymbol, h.Quantity.String(),
				FormatCurrency(h.CurrentValue), h.AllocationPercentage.StringFixed(1))
		}
		fmt.Fprintln(&buf)
	}

	if report.Market != nil {
		m := report.Market
		fmt.Fprintf(&buf, "Market Parameters (%s window): return=%s volatility=%s risk-free=%s inflation=%s\n",
			m.Window, FormatPercentage(m.ExpectedReturn), FormatPercentage(m.Volatility),
			FormatPercentage(m.RiskFreeRate), FormatPercentage(m.InflationRate))
		fmt.Fprintln(&buf)
	}

	if report.Projection != nil {
		p := report.Projection
		fmt.Fprintf(&buf, "Monte Carlo: %d paths over %d years from %s\n",
			p.Simulations, p.ProjectionYears, FormatCurrency(p.InitialValue))
		ranks := make([]int, 0, len(p.Percentiles))
		for rank := range p.Percentiles {
			ranks = append(ranks, rank)
		}
		sort.Ints(ranks)
		for _, rank := range ranks {
			fmt.Fprintf(&buf, "  P%-2d: %s\n", rank, FormatCurrency(p.Percentiles[rank]))
		}
		fmt.Fprintf(&buf, "  Expected Return: %s  P(loss): %s\n",
			FormatPercentage(p.ExpectedReturn), FormatPercentage(p.ProbabilityOfLoss))
		fmt.Fprintf(&buf, "  VaR95: %s  CVaR95: %s\n",
			FormatCurrency(p.VaR95), FormatCurrency(p.CVaR95))
		fmt.Fprintln(&buf)
	}

	if len(report.Scenarios) > 0 {
		fmt.Fprintln(&buf, "Scenarios:")
		for _, sc := range report.Scenarios {
			fmt.Fprintf(&buf, "  %-14s return=%s vol=%s projected=%s P(loss)=%s\n",
				sc.Name, FormatPercentage(sc.ExpectedReturn), FormatPercentage(sc.ExpectedVolatility),
				FormatCurrency(sc.ProjectedValue), FormatPercentage(sc.ProbabilityOfLoss))
			fmt.Fprintf(&buf, "    %s\n", sc.Description)
		}
		fmt.Fprintln(&buf)
	}

	if report.Fire != nil {
		f := report.Fire
		fmt.Fprintf(&buf, "FIRE Number: %s (withdrawal rate %s)\n",
			FormatCurrency(f.FireNumber), FormatPercentage(f.WithdrawalRate))
		fmt.Fprintf(&buf, "  Expenses today %s -> at retirement %s (%d years out, %d retirement years)\n",
			FormatCurrency(f.AnnualExpensesToday), FormatCurrency(f.AnnualExpensesAtRetirement),
			f.YearsToRetirement, f.RetirementYears)
		fmt.Fprintf(&buf, "  Total Retirement Needs: %s\n", FormatCurrency(f.TotalRetirementNeeds))
		fmt.Fprintln(&buf)
	}

	if report.Savings != nil {
		s := report.Savings
		fmt.Fprintf(&buf, "Required Savings to reach %s:\n", FormatCurrency(s.TargetValue))
		if s.MonthlySavingsNeeded.IsZero() {
			fmt.Fprintf(&buf, "  Target already met; surplus %s\n", FormatCurrency(s.Surplus))
		} else {
			fmt.Fprintf(&buf, "  Monthly: %s  Total: %s  Gap: %s\n",
				FormatCurrency(s.MonthlySavingsNeeded), FormatCurrency(s.TotalSavingsNeeded),
				FormatCurrency(s.Gap))
		}
		fmt.Fprintln(&buf)
	}

	if report.Sentiment != nil {
		fmt.Fprintf(&buf, "Market Sentiment: %s (risk %s, VIX %s, percentile %s)\n",
			report.Sentiment.Sentiment, report.Sentiment.RiskLevel,
			report.Sentiment.CurrentVIX.StringFixed(2), report.Sentiment.VIXPercentile.StringFixed(0))
		fmt.Fprintf(&buf, "  %s\n", report.Sentiment.Recommendation)
	}

	return buf.Bytes(), nil
}
