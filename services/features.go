package services

import (
	"yield-optimizer/models"
)

// FeatureDeriver computes the per-listing financial metrics.
type FeatureDeriver struct{}

// NewFeatureDeriver returns a FeatureDeriver.
func NewFeatureDeriver() *FeatureDeriver {
	return &FeatureDeriver{}
}

// Derive computes rent-to-cost, maintenance risk and vacancy-adjusted revenue
// for one listing. It never fails: a non-positive price yields a zero ratio,
// a missing year falls back to models.DefaultYearBuilt, and a missing rent
// yields zero revenue. Inputs are not range-checked.
func (d *FeatureDeriver) Derive(l models.ListingRecord, profile models.MarketProfile, asOfYear int) models.DerivedFeatures {
	return models.DerivedFeatures{
		RentToCostRatio:        rentToCostRatio(l),
		MaintenanceRiskScore:   maintenanceRiskScore(l, profile, asOfYear),
		VacancyAdjustedRevenue: vacancyAdjustedRevenue(l, profile),
	}
}

func rentToCostRatio(l models.ListingRecord) float64 {
	if l.Price <= 0 || !l.HasRent() {
		return 0
	}
	return l.RentEstimate / l.Price
}

// maintenanceRiskScore is age × sqft × labor index / 1000.
// Future construction years give a negative age and are left unclamped.
func maintenanceRiskScore(l models.ListingRecord, profile models.MarketProfile, asOfYear int) float64 {
	age := float64(asOfYear - l.EffectiveYearBuilt())
	return age * l.SquareFootage * profile.LaborCostIndex / 1000
}

func vacancyAdjustedRevenue(l models.ListingRecord, profile models.MarketProfile) float64 {
	if !l.HasRent() {
		return 0
	}
	return l.RentEstimate * (1 - profile.VacancyRate)
}
