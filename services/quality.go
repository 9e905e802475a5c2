package services

import "yield-optimizer/models"

// DataQualityWarning records a documented fallback applied to a listing.
// It is informational; the listing is still scored.
type DataQualityWarning struct {
	Address string
	Kind    models.WarningKind
}

// Inspect lists the fallbacks Derive will apply to l.
func Inspect(l models.ListingRecord) []DataQualityWarning {
	var warnings []DataQualityWarning
	if !l.HasRent() {
		warnings = append(warnings, DataQualityWarning{Address: l.Address, Kind: models.WarningMissingRent})
	}
	if l.YearBuilt == nil {
		warnings = append(warnings, DataQualityWarning{Address: l.Address, Kind: models.WarningMissingYearBuilt})
	}
	return warnings
}
