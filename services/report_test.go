package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yield-optimizer/models"
)

func sampleRun() *models.RunResult {
	mk := func(addr, zip string, score float64) *models.ScoredListing {
		return &models.ScoredListing{Listing: models.ListingRecord{Address: addr, ZipCode: zip}, DealScore: score}
	}
	return &models.RunResult{
		Ranked: []*models.ScoredListing{
			mk("A", "46901", 90),
			mk("B", "46901", 70.5),
			mk("C", "46902", 40),
			mk("D", "99999", 0),
		},
		Warnings: map[models.WarningKind]int{models.WarningMissingRent: 1},
		AsOfYear: 2024,
	}
}

func TestReportScoreStats(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate(sampleRun(), 5)

	assert.Equal(t, 4, r.TotalListings)
	// (90 + 70.5 + 40 + 0) / 4 = 50.125
	assert.Equal(t, 50.1, r.AverageScore)
	assert.Equal(t, 0.0, r.MinScore)
	assert.Equal(t, 90.0, r.MaxScore)
	assert.Equal(t, 1, r.ZeroScoreDeals)
	assert.Equal(t, 2024, r.AsOfYear)
}

func TestReportTopDeals(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate(sampleRun(), 2)

	require.Len(t, r.TopDeals, 2)
	assert.Equal(t, "A", r.TopDeals[0].Listing.Address)
	assert.Equal(t, "B", r.TopDeals[1].Listing.Address)
}

func TestReportZipGroupingAndWarnings(t *testing.T) {
	svc := NewReportService(newTestLogger())
	run := sampleRun()
	r := svc.Generate(run, 5)

	assert.Equal(t, 2, r.ListingsByZip["46901"])
	assert.Equal(t, 1, r.Warnings[models.WarningMissingRent])

	run.Warnings[models.WarningMissingRent] = 99
	assert.Equal(t, 1, r.Warnings[models.WarningMissingRent], "report warnings should be a copy of the run's")
}

func TestReportEmptyInput(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate(nil, 5)
	assert.Equal(t, 0, r.TotalListings)

	r = svc.Generate(&models.RunResult{}, 5)
	assert.Equal(t, 0, r.TotalListings)
	assert.Empty(t, r.TopDeals)
}
