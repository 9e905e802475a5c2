package services

import (
	"math"
	"strconv"

	"yield-optimizer/models"
)

// DealScorer turns derived features into a 0–100 deal score.
type DealScorer struct {
	cfg models.ScoringConfig
}

// NewDealScorer returns a scorer bound to a read-only scoring model.
func NewDealScorer(cfg models.ScoringConfig) *DealScorer {
	return &DealScorer{cfg: cfg}
}

// SubScores normalises each feature into [0,1]:
//
//	yield   = ratio / targetYield, capped at 1
//	risk    = 1 - risk / maxRiskScore, floored at 0
//	revenue = (revenue × 12) / price / targetYield, capped at 1; 0 when price <= 0
//
// All three are additionally clamped to [0,1] so that pathological inputs
// (negative age, negative rent) cannot leave the range.
func (s *DealScorer) SubScores(f models.DerivedFeatures, l models.ListingRecord) models.SubScores {
	sc := s.cfg.Scaling

	sub := models.SubScores{
		Yield: clamp01(f.RentToCostRatio / sc.TargetYield),
		Risk:  clamp01(1 - f.MaintenanceRiskScore/sc.MaxRiskScore),
	}
	if l.Price > 0 {
		sub.Revenue = clamp01(f.VacancyAdjustedRevenue * 12 / l.Price / sc.TargetYield)
	}
	return sub
}

// Score returns the weighted sum of the sub-scores on a 0–100 scale, rounded
// to one decimal place.
func (s *DealScorer) Score(f models.DerivedFeatures, l models.ListingRecord) float64 {
	return s.combine(s.SubScores(f, l))
}

func (s *DealScorer) combine(sub models.SubScores) float64 {
	w := s.cfg.Weights
	final := sub.Yield*w.RentToCost + sub.Risk*w.MaintenanceRisk + sub.Revenue*w.VacancyAdjusted
	return round1(final * 100)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round1 rounds the exact binary value to one decimal, sending exact ties to
// the even digit (69.25 → 69.2).
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
