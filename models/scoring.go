package models

// MarketProfile holds the locale-specific economics for one zip code.
type MarketProfile struct {
	LaborCostIndex float64
	VacancyRate    float64
}

// DerivedFeatures are the financial metrics computed once per listing.
type DerivedFeatures struct {
	RentToCostRatio        float64
	MaintenanceRiskScore   float64
	VacancyAdjustedRevenue float64
}

// Weights controls how much each sub-score contributes to the deal score.
type Weights struct {
	RentToCost      float64
	MaintenanceRisk float64
	VacancyAdjusted float64
}

// Scaling holds the normalisation targets for the sub-scores.
type Scaling struct {
	TargetYield  float64
	MaxRiskScore float64
}

// ScoringConfig is the read-only scoring model shared by every listing in a run.
type ScoringConfig struct {
	Weights Weights
	Scaling Scaling
}

// SubScores are the normalised [0,1] components of a deal score.
type SubScores struct {
	Yield   float64
	Risk    float64
	Revenue float64
}

// ScoredListing pairs a listing with its features and final 0–100 score.
type ScoredListing struct {
	Listing   ListingRecord
	Features  DerivedFeatures
	SubScores SubScores
	DealScore float64
}

// WarningKind names a data-quality fallback applied to a listing.
type WarningKind string

const (
	WarningMissingRent      WarningKind = "missing_rent"
	WarningMissingYearBuilt WarningKind = "missing_year_built"
)

// RunResult is the outcome of one scoring run.
type RunResult struct {
	Ranked   []*ScoredListing
	Warnings map[WarningKind]int
	AsOfYear int
}

// Report holds the computed summary over a ranked run.
type Report struct {
	TotalListings  int
	AverageScore   float64
	MinScore       float64
	MaxScore       float64
	TopDeals       []*ScoredListing
	ListingsByZip  map[string]int
	Warnings       map[WarningKind]int
	ZeroScoreDeals int
	AsOfYear       int
}
