package services

import (
	"yield-optimizer/config"
	"yield-optimizer/models"
)

// MarketLookup resolves locale economics for a zip code, falling back to the
// default profile for zips without an explicit entry.
type MarketLookup struct {
	profiles map[string]models.MarketProfile
	fallback models.MarketProfile
}

// NewMarketLookup copies profiles into a read-only lookup. It fails with a
// *config.ConfigError when the mapping has no default entry.
func NewMarketLookup(profiles map[string]models.MarketProfile) (*MarketLookup, error) {
	def, ok := profiles[config.DefaultMarketKey]
	if !ok {
		return nil, &config.ConfigError{Key: "markets." + config.DefaultMarketKey}
	}

	own := make(map[string]models.MarketProfile, len(profiles))
	for zip, p := range profiles {
		own[zip] = p
	}
	return &MarketLookup{profiles: own, fallback: def}, nil
}

// Resolve returns the profile for zip, or the default profile.
func (m *MarketLookup) Resolve(zip string) models.MarketProfile {
	if p, ok := m.profiles[zip]; ok {
		return p
	}
	return m.fallback
}

// Known reports whether zip has its own entry.
func (m *MarketLookup) Known(zip string) bool {
	_, ok := m.profiles[zip]
	return ok && zip != config.DefaultMarketKey
}
