package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestReturnSeriesClean(t *testing.T) {
	series := ReturnSeries{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Return: decimal.NullDecimal{Decimal: decimal.NewFromFloat(0.01), Valid: true}},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Return: decimal.NullDecimal{Decimal: decimal.NewFromFloat(-0.02), Valid: true}},
	}

	clean := series.Clean()
	if len(clean) != 2 {
		t.Fatalf("Expected 2 valid returns, got %d", len(clean))
	}
	if !clean[0].Equal(decimal.NewFromFloat(0.01)) || !clean[1].Equal(decimal.NewFromFloat(-0.02)) {
		t.Errorf("Clean reordered or altered values: %v", clean)
	}
}

func TestSentinelErrorWrapping(t *testing.T) {
	err := fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("wrapped sentinel should satisfy errors.Is")
	}
	if errors.Is(err, ErrInsufficientData) {
		t.Errorf("distinct sentinels should not match")
	}
}
