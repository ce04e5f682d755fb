// Package marketdata derives market parameters (expected return,
// volatility, risk-free rate, inflation) from benchmark price history and
// serves them to the projection engine through a bounded cache.
package marketdata

import (
	"context"
	"time"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

// BenchmarkSource supplies historical close series. This is the narrow
// boundary to the brokerage/market-data collaborator; implementations own
// retries and raw-response caching.
type BenchmarkSource interface {
	// BenchmarkHistory returns benchmark index closes in [start, end],
	// oldest first.
	BenchmarkHistory(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error)

	// VolatilityIndexHistory returns volatility index (India VIX) closes
	// in [start, end], oldest first.
	VolatilityIndexHistory(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error)
}
