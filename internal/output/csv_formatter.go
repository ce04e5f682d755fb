package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
)

// CSVFormatter emits the projection percentiles and scenario table as CSV
// for spreadsheet analysis.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if report.Projection != nil {
		p := report.Projection
		if err := w.Write([]string{"section", "metric", "value"}); err != nil {
			return nil, err
		}
		ranks := make([]int, 0, len(p.Percentiles))
		for rank := range p.Percentiles {
			ranks = append(ranks, rank)
		}
		sort.Ints(ranks)
		for _, rank := range ranks {
			if err := w.Write([]string{"projection", fmt.Sprintf("p%d", rank), p.Percentiles[rank].StringFixed(2)}); err != nil {
				return nil, err
			}
		}
		rows := [][]string{
			{"projection", "expected_return", p.ExpectedReturn.StringFixed(6)},
			{"projection", "probability_of_loss", p.ProbabilityOfLoss.StringFixed(6)},
			{"projection", "var_95", p.VaR95.StringFixed(2)},
			{"projection", "cvar_95", p.CVaR95.StringFixed(2)},
			{"projection", "projection_years", fmt.Sprintf("%d", p.ProjectionYears)},
			{"projection", "simulations", fmt.Sprintf("%d", p.Simulations)},
			{"projection", "initial_value", p.InitialValue.StringFixed(2)},
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	if len(report.Scenarios) > 0 {
		if err := w.Write([]string{"scenario", "expected_return", "expected_volatility", "projected_value", "probability_of_loss"}); err != nil {
			return nil, err
		}
		for _, sc := range report.Scenarios {
			row := []string{
				sc.Name,
				sc.ExpectedReturn.StringFixed(6),
				sc.ExpectedVolatility.StringFixed(6),
				sc.ProjectedValue.StringFixed(2),
				sc.ProbabilityOfLoss.StringFixed(6),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
