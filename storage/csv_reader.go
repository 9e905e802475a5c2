package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"yield-optimizer/models"
)

// Column names follow the enrichment step's export. addressLine1 is used when
// formattedAddress is absent; propertyType is optional.
var requiredColumns = []string{"price", "zipCode"}

// CSVReader reads enriched listings from a CSV file with a header row.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the file at path. The file is opened on ReadRaw.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadRaw opens the file and decodes every row.
func (r *CSVReader) ReadRaw() ([]*models.RawListing, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", r.path, err)
	}
	defer f.Close()
	return DecodeRawListings(f)
}

// DecodeRawListings parses CSV rows into RawListings, mapping columns by header name.
func DecodeRawListings(src io.Reader) ([]*models.RawListing, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv: missing column %q", col)
		}
	}
	addressCol := "formattedAddress"
	if _, ok := idx[addressCol]; !ok {
		addressCol = "addressLine1"
		if _, ok := idx[addressCol]; !ok {
			return nil, fmt.Errorf("csv: missing column %q", "formattedAddress")
		}
	}

	_, hasType := idx["propertyType"]

	var listings []*models.RawListing
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", line, err)
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		listings = append(listings, &models.RawListing{
			Address:       get(addressCol),
			Price:         get("price"),
			PropertyType:  get("propertyType"),
			SquareFootage: get("squareFootage"),
			YearBuilt:     get("yearBuilt"),
			Bedrooms:      get("bedrooms"),
			Bathrooms:     get("bathrooms"),
			ZipCode:       get("zipCode"),
			RentEstimate:  get("rent_estimate"),

			NoPropertyType: !hasType,
		})
	}
	return listings, nil
}
