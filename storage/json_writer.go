package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hospital-scraper/models"
)

// JSONWriter accumulates reviews per hospital and serializes the whole run
// as one JSON array of {hospital_name, reviews} documents. Call Flush after
// the last hospital has been processed.
type JSONWriter struct {
	dir      string
	location string
	docs     []models.HospitalReviews
}

// NewJSONWriter creates the location directory under baseDir and returns a
// writer scoped to it.
func NewJSONWriter(baseDir, location string) (*JSONWriter, error) {
	dir := filepath.Join(baseDir, "hospital_reviews_"+SanitizeName(location))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir: %w", err)
	}
	return &JSONWriter{dir: dir, location: location}, nil
}

// WriteReviews buffers one hospital's reviews for the final document.
// Hospitals with zero accepted reviews are omitted.
func (j *JSONWriter) WriteReviews(hospital string, reviews []*models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	doc := models.HospitalReviews{
		HospitalName: hospital,
		Reviews:      make([]models.ReviewJSON, 0, len(reviews)),
	}
	for _, r := range reviews {
		doc.Reviews = append(doc.Reviews, models.ReviewJSON{
			Author: r.Reviewer,
			Rating: r.Rating,
			Text:   r.Text,
			Date:   r.Posted,
		})
	}

	j.docs = append(j.docs, doc)
	return nil
}

// Flush writes the accumulated documents to reviews_<location>.json.
// No file is written when nothing was collected.
func (j *JSONWriter) Flush() error {
	if len(j.docs) == 0 {
		return nil
	}

	path := filepath.Join(j.dir, "reviews_"+SanitizeName(j.location)+".json")
	data, err := json.MarshalIndent(j.docs, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("json: write file %q: %w", path, err)
	}
	return nil
}
