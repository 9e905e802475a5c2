package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"yield-optimizer/models"
)

var rankingHeader = []string{
	"rank", "deal_score", "address", "zip_code", "property_type", "price",
	"rent_estimate", "square_footage", "year_built", "bedrooms", "bathrooms",
	"rent_to_cost_ratio", "maintenance_risk_score", "vacancy_adjusted_revenue",
}

// CSVWriter writes the final ranking to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rankingHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the ranked listings, one row each, in the given order.
func (c *CSVWriter) Write(ranked []*models.ScoredListing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, sl := range ranked {
		if err := c.writer.Write(rankingRow(i+1, sl)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func rankingRow(rank int, sl *models.ScoredListing) []string {
	l := sl.Listing
	year := ""
	if l.YearBuilt != nil {
		year = strconv.Itoa(*l.YearBuilt)
	}
	return []string{
		strconv.Itoa(rank),
		formatFloat(sl.DealScore, 1),
		l.Address,
		l.ZipCode,
		string(l.PropertyType),
		formatFloat(l.Price, 2),
		formatFloat(l.RentEstimate, 2),
		formatFloat(l.SquareFootage, -1),
		year,
		formatFloat(l.Bedrooms, -1),
		formatFloat(l.Bathrooms, -1),
		formatFloat(sl.Features.RentToCostRatio, 6),
		formatFloat(sl.Features.MaintenanceRiskScore, 4),
		formatFloat(sl.Features.VacancyAdjustedRevenue, 2),
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
