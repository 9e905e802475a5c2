package models

import (
	"math"
	"strings"
)

// DefaultYearBuilt is assumed for listings that arrive without a construction year.
const DefaultYearBuilt = 1980

// PropertyType is one of the investment-grade structure types kept by the cleaner.
type PropertyType string

const (
	SingleFamily PropertyType = "Single Family"
	MultiFamily  PropertyType = "Multi-Family"
	Condo        PropertyType = "Condo"
	Townhouse    PropertyType = "Townhouse"
)

// ParsePropertyType maps a raw listing type onto a PropertyType.
// The second return value is false for land, manufactured homes and anything unknown.
func ParsePropertyType(raw string) (PropertyType, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "", " ", "", "_", "").Replace(key)

	switch key {
	case "singlefamily":
		return SingleFamily, true
	case "multifamily":
		return MultiFamily, true
	case "condo":
		return Condo, true
	case "townhouse":
		return Townhouse, true
	}
	return "", false
}

// RawListing holds one unprocessed row of the enriched-listings file.
// Every field is kept as text until the cleaner parses it.
type RawListing struct {
	Address       string
	Price         string
	PropertyType  string
	SquareFootage string
	YearBuilt     string
	Bedrooms      string
	Bathrooms     string
	ZipCode       string
	RentEstimate  string

	// NoPropertyType is set when the source has no propertyType column at all;
	// such rows skip the property-type filter.
	NoPropertyType bool
}

// ListingRecord is a cleaned, rent-enriched listing. It is treated as
// immutable once it leaves the cleaner.
type ListingRecord struct {
	Address       string
	Price         float64
	// PropertyType is empty when the source did not carry one.
	PropertyType  PropertyType
	SquareFootage float64
	YearBuilt     *int
	Bedrooms      float64
	Bathrooms     float64
	ZipCode       string
	// RentEstimate of 0 means no estimate was available.
	RentEstimate  float64
}

// EffectiveYearBuilt returns YearBuilt, or DefaultYearBuilt when it is absent.
func (l ListingRecord) EffectiveYearBuilt() int {
	if l.YearBuilt == nil {
		return DefaultYearBuilt
	}
	return *l.YearBuilt
}

// HasRent reports whether the listing carries a usable rent estimate.
func (l ListingRecord) HasRent() bool {
	return !math.IsNaN(l.RentEstimate) && l.RentEstimate != 0
}

// YearPtr is a small helper for building listings with a known construction year.
func YearPtr(y int) *int {
	return &y
}
