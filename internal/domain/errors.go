package domain

import "errors"

// Sentinel errors for the projection core. Callers should match with
// errors.Is; all wrapping goes through fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidInput indicates a caller-supplied parameter that cannot be
	// computed with (non-positive portfolio value, retirement age not after
	// current age, missing method parameters). Never silently corrected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData is warning-level: the computation proceeds but
	// with reduced statistical confidence (small bootstrap sample, short
	// benchmark window).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDataUnavailable indicates no benchmark data could be obtained for
	// any lookback window. Recovered by falling back to conservative
	// constants rather than failing.
	ErrDataUnavailable = errors.New("market data unavailable")
)
