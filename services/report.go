package services

import (
	"fmt"
	"sort"
	"strings"

	"yield-optimizer/models"
	"yield-optimizer/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate summarises a ranked run. topN bounds the number of deals listed.
func (s *ReportService) Generate(result *models.RunResult, topN int) *models.Report {
	report := &models.Report{
		ListingsByZip: make(map[string]int),
		Warnings:      make(map[models.WarningKind]int),
	}
	if result == nil {
		return report
	}
	report.AsOfYear = result.AsOfYear
	for k, v := range result.Warnings {
		report.Warnings[k] = v
	}

	ranked := result.Ranked
	if len(ranked) == 0 {
		return report
	}
	report.TotalListings = len(ranked)

	report.MinScore = ranked[0].DealScore
	report.MaxScore = ranked[0].DealScore
	var total float64
	for _, sl := range ranked {
		total += sl.DealScore
		if sl.DealScore < report.MinScore {
			report.MinScore = sl.DealScore
		}
		if sl.DealScore > report.MaxScore {
			report.MaxScore = sl.DealScore
		}
		if sl.DealScore == 0 {
			report.ZeroScoreDeals++
		}
		if sl.Listing.ZipCode != "" {
			report.ListingsByZip[sl.Listing.ZipCode]++
		}
	}
	report.AverageScore = round1(total / float64(len(ranked)))

	// Ranked is already ordered best first.
	if topN < 0 {
		topN = 0
	}
	if len(ranked) > topN {
		report.TopDeals = ranked[:topN]
	} else {
		report.TopDeals = ranked
	}

	return report
}

func (s *ReportService) Print(r *models.Report) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏆 DEAL RANKING (as of %d)\033[0m\n", r.AsOfYear)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Listings scored        : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Missing rent estimate  : \033[1m%d\033[0m\n", r.Warnings[models.WarningMissingRent])
	fmt.Printf("  Missing year built     : \033[1m%d\033[0m\n", r.Warnings[models.WarningMissingYearBuilt])
	fmt.Printf("  Zero-score listings    : \033[1m%d\033[0m\n", r.ZeroScoreDeals)
	fmt.Println()

	fmt.Printf("\033[1;33m  Deal Score Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalListings > 0 {
		fmt.Printf("  Average : \033[1;32m%.1f\033[0m\n", r.AverageScore)
		fmt.Printf("  Minimum : \033[1;32m%.1f\033[0m\n", r.MinScore)
		fmt.Printf("  Maximum : \033[1;32m%.1f\033[0m\n", r.MaxScore)
	} else {
		fmt.Printf("  No listings were scored\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top %d Deals\033[0m\n", len(r.TopDeals))
	fmt.Printf("  %s\n", thin)
	if len(r.TopDeals) == 0 {
		fmt.Printf("  No deals found\n")
	} else {
		for i, sl := range r.TopDeals {
			fmt.Printf("  \033[1m%d.\033[0m %-34s $%-10.0f yield %.4f  risk %6.1f  \033[1;32m%5.1f\033[0m\n",
				i+1, truncate(sl.Listing.Address, 32), sl.Listing.Price,
				sl.Features.RentToCostRatio, sl.Features.MaintenanceRiskScore, sl.DealScore)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Zip Code\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByZip) == 0 {
		fmt.Printf("  No zip data\n")
	} else {
		type zipCount struct {
			zip   string
			count int
		}
		var zips []zipCount
		for zip, cnt := range r.ListingsByZip {
			zips = append(zips, zipCount{zip, cnt})
		}
		sort.Slice(zips, func(i, j int) bool {
			if zips[i].count != zips[j].count {
				return zips[i].count > zips[j].count
			}
			return zips[i].zip < zips[j].zip
		})
		for _, zc := range zips {
			bar := strings.Repeat("█", zc.count)
			fmt.Printf("  %-12s %s (%d)\n", zc.zip, bar, zc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
