package storage

import "hospital-scraper/models"

// ListingWriter persists the collected hospital listings.
type ListingWriter interface {
	WriteListings(hospitals []*models.HospitalListing) error
}

// ReviewWriter persists the validated reviews of one hospital.
type ReviewWriter interface {
	WriteReviews(hospital string, reviews []*models.Review) error
}
