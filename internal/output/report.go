// Package output renders engine results through pluggable formatters.
package output

import (
	"time"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

// Report bundles whatever the caller computed for one invocation. Nil
// sections are omitted by every formatter.
type Report struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Summary     *domain.PortfolioSummary   `json:"summary,omitempty"`
	Projection  *domain.ProjectionResults  `json:"projection,omitempty"`
	Scenarios   []domain.ScenarioResult    `json:"scenarios,omitempty"`
	Fire        *domain.FireResult         `json:"fire,omitempty"`
	Savings     *domain.SavingsPlan        `json:"savings,omitempty"`
	Market      *domain.MarketParameters   `json:"market,omitempty"`
	Sentiment   *domain.MarketSentiment    `json:"sentiment,omitempty"`
}
