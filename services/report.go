package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"hospital-scraper/models"
	"hospital-scraper/utils"
)

// ratingValueRegexp captures a numeric 0–5 rating from labels like
// "5 stars", "Rated 4.0 out of 5" or a bare "3.5".
var ratingValueRegexp = regexp.MustCompile(`\b([0-5](?:\.\d{1,2})?)\b`)

// ReportService computes a summary over a completed run.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate summarizes the accepted reviews of one run. Rejection counts are
// taken from the collectors' tallies and passed through unchanged.
func (s *ReportService) Generate(location string, hospitals []*models.HospitalListing,
	reviews []*models.Review, rejected map[RejectReason]int) *models.RunReport {

	report := &models.RunReport{
		Location:          location,
		HospitalsFound:    len(hospitals),
		ReviewsAccepted:   len(reviews),
		RejectedMissing:   rejected[RejectMissingField],
		RejectedTooShort:  rejected[RejectTooShort],
		RejectedDuplicate: rejected[RejectDuplicate],
		ReviewsByHospital: make(map[string]int),
	}

	var ratingTotal float64
	for _, r := range reviews {
		report.ReviewsByHospital[r.Hospital]++
		if v, ok := parseRatingValue(r.Rating); ok {
			ratingTotal += v
			report.RatedReviews++
		}
	}
	report.HospitalsProcessed = len(report.ReviewsByHospital)

	if report.RatedReviews > 0 {
		report.AverageRating = round2(ratingTotal / float64(report.RatedReviews))
	}

	return report
}

// Print renders the report to the console.
func (s *ReportService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  HOSPITAL REVIEW SCRAPE SUMMARY — %s\033[0m\n", r.Location)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Hospitals found      : \033[1m%d\033[0m\n", r.HospitalsFound)
	fmt.Printf("  Hospitals w/ reviews : \033[1m%d\033[0m\n", r.HospitalsProcessed)
	fmt.Printf("  Reviews accepted     : \033[1;32m%d\033[0m\n", r.ReviewsAccepted)
	fmt.Printf("  Rejected — missing   : %d\n", r.RejectedMissing)
	fmt.Printf("  Rejected — too short : %d\n", r.RejectedTooShort)
	fmt.Printf("  Rejected — duplicate : %d\n", r.RejectedDuplicate)
	if r.RatedReviews > 0 {
		fmt.Printf("  Average rating       : \033[1;32m%.2f ★\033[0m (%d rated)\n",
			r.AverageRating, r.RatedReviews)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Reviews by Hospital\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ReviewsByHospital) == 0 {
		fmt.Printf("  No reviews collected\n")
	} else {
		type hospCount struct {
			name  string
			count int
		}
		var counts []hospCount
		for name, cnt := range r.ReviewsByHospital {
			counts = append(counts, hospCount{name, cnt})
		}
		sort.Slice(counts, func(i, j int) bool {
			return counts[i].count > counts[j].count
		})
		for _, hc := range counts {
			fmt.Printf("  %-40s %d\n", truncate(hc.name, 38), hc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// parseRatingValue extracts a numeric rating from a scraped rating label.
func parseRatingValue(raw string) (float64, bool) {
	match := ratingValueRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil || v < 0 || v > 5 {
		return 0, false
	}
	return v, true
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
