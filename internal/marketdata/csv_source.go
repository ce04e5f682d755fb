package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murtazahr/Investment-Portfolio-Analyzer/internal/domain"
)

// CSVSource is a BenchmarkSource backed by local CSV files, so the engine
// can run offline from exported price history. Expected layout under the
// data path:
//
//	benchmark.csv   date,close   (benchmark index, e.g. Nifty 50)
//	vix.csv         date,close   (volatility index)
//
// Dates are ISO (2006-01-02). Malformed rows are skipped.
type CSVSource struct {
	DataPath string
}

// NewCSVSource creates a CSV-backed source rooted at dataPath.
func NewCSVSource(dataPath string) *CSVSource {
	return &CSVSource{DataPath: dataPath}
}

// BenchmarkHistory implements BenchmarkSource.
func (s *CSVSource) BenchmarkHistory(_ context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	return s.loadSeries("benchmark.csv", start, end)
}

// VolatilityIndexHistory implements BenchmarkSource.
func (s *CSVSource) VolatilityIndexHistory(_ context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	return s.loadSeries("vix.csv", start, end)
}

func (s *CSVSource) loadSeries(fileName string, start, end time.Time) ([]domain.PricePoint, error) {
	filePath := filepath.Join(s.DataPath, fileName)
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []domain.PricePoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue // Skip malformed rows
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			continue // Skip rows with invalid date
		}
		closePrice, err := decimal.NewFromString(record[1])
		if err != nil {
			continue // Skip rows with invalid close
		}

		if date.Before(start) || date.After(end) {
			continue
		}
		points = append(points, domain.PricePoint{Date: date, Close: closePrice})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no data points in %s between %s and %s: %w",
			fileName, start.Format("2006-01-02"), end.Format("2006-01-02"), domain.ErrDataUnavailable)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
