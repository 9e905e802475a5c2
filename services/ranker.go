package services

import (
	"sort"

	"yield-optimizer/models"
)

// Rank returns a new slice ordered by deal score, best first. Listings with
// equal scores keep their input order. Neither the input slice nor its
// elements are modified.
func Rank(scored []*models.ScoredListing) []*models.ScoredListing {
	ranked := make([]*models.ScoredListing, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DealScore > ranked[j].DealScore
	})
	return ranked
}
