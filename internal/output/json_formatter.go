package output

import "encoding/json"

// JSONFormatter serializes the report as pretty-printed JSON. The
// projection section is flattened through ProjectionResults.ToMap so only
// JSON-primitive types cross the boundary.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	out := map[string]any{
		"generated_at": report.GeneratedAt,
	}
	if report.Summary != nil {
		out["summary"] = report.Summary
	}
	if report.Projection != nil {
		out["projection"] = report.Projection.ToMap()
	}
	if report.Scenarios != nil {
		out["scenarios"] = report.Scenarios
	}
	if report.Fire != nil {
		out["fire"] = report.Fire
	}
	if report.Savings != nil {
		out["savings"] = report.Savings
	}
	if report.Market != nil {
		out["market"] = report.Market
	}
	if report.Sentiment != nil {
		out["sentiment"] = report.Sentiment
	}
	return json.MarshalIndent(out, "", "  ")
}
