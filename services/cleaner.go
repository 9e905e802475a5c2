package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"yield-optimizer/models"
	"yield-optimizer/utils"
)

// numberRegexp matches a cell that is a single number, optionally prefixed with
// a dollar sign, e.g. "$189900" or "1920.0". Separators are removed beforehand.
var numberRegexp = regexp.MustCompile(`^\$?(-?\d+(?:\.\d+)?(?:e[-+]?\d+)?)$`)

// Cleaner transforms RawListings into typed ListingRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean keeps investment-grade property types with a parseable price
// (every type when the source has no propertyType column),
// coerces numeric columns and drops duplicate addresses (first one wins).
// Missing year or rent is kept as absent; the scorer applies its fallbacks.
func (c *Cleaner) Clean(raw []*models.RawListing) []models.ListingRecord {
	seen := make(map[string]struct{})
	result := make([]models.ListingRecord, 0, len(raw))

	for _, r := range raw {
		address := normaliseText(r.Address)
		if address == "" {
			c.logger.Warn("[cleaner] Dropping listing with empty address (zip %s)", r.ZipCode)
			continue
		}

		var ptype models.PropertyType
		if !r.NoPropertyType {
			var ok bool
			if ptype, ok = models.ParsePropertyType(r.PropertyType); !ok {
				c.logger.Debug("[cleaner] Dropping %s: property type %q is not investment grade", address, r.PropertyType)
				continue
			}
		}

		price, ok := parseNumber(r.Price)
		if !ok {
			c.logger.Warn("[cleaner] Dropping %s: unparseable price %q", address, r.Price)
			continue
		}

		key := strings.ToLower(address)
		if _, dup := seen[key]; dup {
			c.logger.Debug("[cleaner] Duplicate address skipped: %s", address)
			continue
		}
		seen[key] = struct{}{}

		listing := models.ListingRecord{
			Address:       address,
			Price:         price,
			PropertyType:  ptype,
			SquareFootage: parseNumberOrZero(r.SquareFootage),
			YearBuilt:     parseYear(r.YearBuilt),
			Bedrooms:      parseNumberOrZero(r.Bedrooms),
			Bathrooms:     parseNumberOrZero(r.Bathrooms),
			ZipCode:       normaliseZip(r.ZipCode),
			RentEstimate:  parseNumberOrZero(r.RentEstimate),
		}
		result = append(result, listing)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parseNumber parses a numeric cell, allowing a leading "$" and thousands
// separators. Empty cells, "nan" and cells with any other text report false.
func parseNumber(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "nan" || s == "null" || s == "none" {
		return 0, false
	}

	m := numberRegexp.FindStringSubmatch(strings.ReplaceAll(s, ",", ""))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseNumberOrZero(raw string) float64 {
	v, _ := parseNumber(raw)
	return v
}

// parseYear accepts "1920" as well as the float form "1920.0" and returns nil
// when the cell is empty.
func parseYear(raw string) *int {
	v, ok := parseNumber(raw)
	if !ok {
		return nil
	}
	y := int(math.Round(v))
	return &y
}

// normaliseZip drops a trailing ".0" left behind by float-typed exports.
func normaliseZip(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), ".0")
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
