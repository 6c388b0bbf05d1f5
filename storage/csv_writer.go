package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"hospital-scraper/models"
)

// unsafeFilenameRegexp matches everything that is not safe in a filename.
var unsafeFilenameRegexp = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// CSVWriter writes hospital listings and per-hospital review files under a
// location-scoped directory, mirroring the on-disk layout
// <dir>/hospital_list_<location>.csv and <dir>/<hospital>_reviews.csv.
type CSVWriter struct {
	dir      string
	location string
}

// NewCSVWriter creates the location directory under baseDir and returns a
// writer scoped to it.
func NewCSVWriter(baseDir, location string) (*CSVWriter, error) {
	dir := filepath.Join(baseDir, "hospital_reviews_"+SanitizeName(location))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir, location: location}, nil
}

// Dir returns the location-scoped output directory.
func (c *CSVWriter) Dir() string {
	return c.dir
}

// WriteListings writes the hospital list file. Nothing is written for an
// empty list, so a failed run leaves no misleading empty file behind.
func (c *CSVWriter) WriteListings(hospitals []*models.HospitalListing) error {
	if len(hospitals) == 0 {
		return nil
	}

	path := filepath.Join(c.dir, "hospital_list_"+SanitizeName(c.location)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Index", "Hospital Name", "Hospital Address", "Google Maps URL"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i, h := range hospitals {
		row := []string{strconv.Itoa(i + 1), h.Name, h.Address, h.Link}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteReviews writes one hospital's reviews to its own file. Nothing is
// written when there are no reviews.
func (c *CSVWriter) WriteReviews(hospital string, reviews []*models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	path := filepath.Join(c.dir, SanitizeName(hospital)+"_reviews.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Hospital", "Reviewer", "Rating", "Review"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range reviews {
		row := []string{r.Hospital, r.Reviewer, r.Rating, r.Text}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// SanitizeName converts an arbitrary name into a safe filename fragment.
func SanitizeName(name string) string {
	s := unsafeFilenameRegexp.ReplaceAllString(name, "_")
	return strings.Trim(s, "_")
}
