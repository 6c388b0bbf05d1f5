package models

import "time"

// HospitalListing is one hospital entry from the search results feed.
// Immutable after collection; drives navigation and the listing file.
type HospitalListing struct {
	Name    string
	Address string
	Link    string
}

// RawReview holds unprocessed review data directly from the page.
// Ephemeral — every RawReview is passed straight to the validator.
type RawReview struct {
	Hospital string
	Reviewer string
	Rating   string
	Text     string
	Posted   string
}

// Review is a validated, deduplicated review ready for storage.
type Review struct {
	Hospital  string
	Reviewer  string
	Rating    string
	Text      string
	Posted    string
	ScrapedAt time.Time
}

// HospitalReviews groups the accepted reviews of one hospital for the
// JSON output form.
type HospitalReviews struct {
	HospitalName string       `json:"hospital_name"`
	Reviews      []ReviewJSON `json:"reviews"`
}

// ReviewJSON is the JSON output shape of a single review.
type ReviewJSON struct {
	Author string `json:"author"`
	Rating string `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// RunReport holds the computed summary over a completed run.
type RunReport struct {
	Location           string
	HospitalsFound     int
	HospitalsProcessed int
	ReviewsAccepted    int
	RejectedMissing    int
	RejectedTooShort   int
	RejectedDuplicate  int
	ReviewsByHospital  map[string]int
	AverageRating      float64
	RatedReviews       int
}
