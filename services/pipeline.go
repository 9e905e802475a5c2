package services

import (
	"context"
	"fmt"

	"yield-optimizer/models"
	"yield-optimizer/utils"
)

// Pipeline scores and ranks a batch of cleaned listings. The market lookup and
// scoring model are shared read-only by all workers.
type Pipeline struct {
	markets     *MarketLookup
	deriver     *FeatureDeriver
	scorer      *DealScorer
	asOfYear    int
	concurrency int
	logger      *utils.Logger
}

// NewPipeline wires the scoring stages together.
func NewPipeline(markets *MarketLookup, scoring models.ScoringConfig, asOfYear, concurrency int, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		markets:     markets,
		deriver:     NewFeatureDeriver(),
		scorer:      NewDealScorer(scoring),
		asOfYear:    asOfYear,
		concurrency: concurrency,
		logger:      logger,
	}
}

type scoredItem struct {
	scored   *models.ScoredListing
	warnings []DataQualityWarning
}

// ScoreOne derives features for l and scores them.
func (p *Pipeline) ScoreOne(l models.ListingRecord) *models.ScoredListing {
	profile := p.markets.Resolve(l.ZipCode)
	features := p.deriver.Derive(l, profile, p.asOfYear)
	sub := p.scorer.SubScores(features, l)

	return &models.ScoredListing{
		Listing:   l,
		Features:  features,
		SubScores: sub,
		DealScore: p.scorer.combine(sub),
	}
}

// Run scores every listing in parallel, then ranks the results.
func (p *Pipeline) Run(ctx context.Context, listings []models.ListingRecord) (*models.RunResult, error) {
	p.logger.Info("[pipeline] Scoring %d listings (as of %d, concurrency %d)",
		len(listings), p.asOfYear, p.concurrency)

	items, err := utils.ParallelMap(ctx, p.concurrency, listings,
		func(_ context.Context, _ int, l models.ListingRecord) (scoredItem, error) {
			return scoredItem{scored: p.ScoreOne(l), warnings: Inspect(l)}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("pipeline: score listings: %w", err)
	}

	result := &models.RunResult{
		Warnings: make(map[models.WarningKind]int),
		AsOfYear: p.asOfYear,
	}
	scored := make([]*models.ScoredListing, 0, len(items))
	unknownZips := 0
	for _, it := range items {
		scored = append(scored, it.scored)
		for _, w := range it.warnings {
			result.Warnings[w.Kind]++
			p.logger.Debug("[pipeline] %s: fallback applied (%s)", w.Address, w.Kind)
		}
		if !p.markets.Known(it.scored.Listing.ZipCode) {
			unknownZips++
		}
	}

	if n := result.Warnings[models.WarningMissingRent]; n > 0 {
		p.logger.Warn("[pipeline] %d listings had no rent estimate; revenue and yield scored as 0", n)
	}
	if n := result.Warnings[models.WarningMissingYearBuilt]; n > 0 {
		p.logger.Warn("[pipeline] %d listings had no year built; assumed %d", n, models.DefaultYearBuilt)
	}
	if unknownZips > 0 {
		p.logger.Info("[pipeline] %d listings used the default market profile", unknownZips)
	}

	result.Ranked = Rank(scored)
	return result, nil
}
