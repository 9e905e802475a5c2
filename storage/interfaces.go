package storage

import "yield-optimizer/models"

// ScoredListingWriter is the interface any ranking sink must satisfy.
// Listings arrive in rank order.
type ScoredListingWriter interface {
	Write(ranked []*models.ScoredListing) error
	Close() error
}

// RawListingReader supplies unprocessed listing rows to the cleaner.
type RawListingReader interface {
	ReadRaw() ([]*models.RawListing, error)
}
