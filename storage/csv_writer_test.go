package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hospital-scraper/models"
)

func sampleHospitals() []*models.HospitalListing {
	return []*models.HospitalListing{
		{Name: "City Hospital", Address: "12 Harbour Road", Link: "https://maps.example/1"},
		{Name: "Central Clinic", Address: "", Link: "https://maps.example/2"},
	}
}

func TestCSVWriterListingFile(t *testing.T) {
	base := t.TempDir()
	w, err := NewCSVWriter(base, "Istanbul, Turkey")
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := w.WriteListings(sampleHospitals()); err != nil {
		t.Fatalf("WriteListings: %v", err)
	}

	path := filepath.Join(w.Dir(), "hospital_list_Istanbul_Turkey.csv")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected listing file at %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	wantHeader := []string{"Index", "Hospital Name", "Hospital Address", "Google Maps URL"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "1" || rows[1][1] != "City Hospital" {
		t.Errorf("first data row wrong: %v", rows[1])
	}
	if rows[2][0] != "2" {
		t.Errorf("index column must be sequential, got %q", rows[2][0])
	}
}

func TestCSVWriterEmptyListingsWritesNothing(t *testing.T) {
	base := t.TempDir()
	w, err := NewCSVWriter(base, "Nowhere")
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := w.WriteListings(nil); err != nil {
		t.Fatalf("WriteListings(nil): %v", err)
	}

	entries, err := os.ReadDir(w.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files for empty listing set, found %d", len(entries))
	}
}

func TestCSVWriterReviewFile(t *testing.T) {
	base := t.TempDir()
	w, err := NewCSVWriter(base, "Istanbul, Turkey")
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	reviews := []*models.Review{
		{Hospital: "Acıbadem Hospital (Kadıköy)", Reviewer: "Jane", Rating: "5 stars", Text: "Great staff!"},
	}
	if err := w.WriteReviews("Acıbadem Hospital (Kadıköy)", reviews); err != nil {
		t.Fatalf("WriteReviews: %v", err)
	}

	entries, err := os.ReadDir(w.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one review file, found %d", len(entries))
	}

	name := entries[0].Name()
	if !strings.HasSuffix(name, "_reviews.csv") {
		t.Errorf("filename = %q, want *_reviews.csv", name)
	}
	for _, c := range name {
		if c != '_' && c != '.' && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			t.Errorf("filename %q contains unsafe character %q", name, c)
		}
	}
}

func TestCSVWriterEmptyReviewsWritesNothing(t *testing.T) {
	base := t.TempDir()
	w, err := NewCSVWriter(base, "Istanbul")
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := w.WriteReviews("Some Hospital", nil); err != nil {
		t.Fatalf("WriteReviews(nil): %v", err)
	}

	entries, _ := os.ReadDir(w.Dir())
	if len(entries) != 0 {
		t.Errorf("expected no review file for zero reviews, found %d", len(entries))
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Istanbul, Turkey", "Istanbul_Turkey"},
		{"St. Mary's Hospital", "St_Mary_s_Hospital"},
		{"already_safe", "already_safe"},
		{"  spaces  ", "spaces"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
