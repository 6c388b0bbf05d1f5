package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"hospital-scraper/models"
)

func TestJSONWriterDocumentShape(t *testing.T) {
	base := t.TempDir()
	w, err := NewJSONWriter(base, "Istanbul, Turkey")
	if err != nil {
		t.Fatalf("NewJSONWriter: %v", err)
	}

	reviews := []*models.Review{
		{Hospital: "City Hospital", Reviewer: "Jane", Rating: "5 stars", Text: "Great staff!", Posted: "2 months ago"},
		{Hospital: "City Hospital", Reviewer: "Bob", Rating: "3 stars", Text: "Average visit overall", Posted: "a week ago"},
	}
	if err := w.WriteReviews("City Hospital", reviews); err != nil {
		t.Fatalf("WriteReviews: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	path := filepath.Join(w.dir, "reviews_Istanbul_Turkey.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected JSON file at %s: %v", path, err)
	}

	var docs []models.HospitalReviews
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].HospitalName != "City Hospital" {
		t.Errorf("hospital_name = %q", docs[0].HospitalName)
	}
	if len(docs[0].Reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(docs[0].Reviews))
	}
	first := docs[0].Reviews[0]
	if first.Author != "Jane" || first.Rating != "5 stars" || first.Date != "2 months ago" {
		t.Errorf("review fields wrong: %+v", first)
	}
}

func TestJSONWriterEmptyRunWritesNothing(t *testing.T) {
	base := t.TempDir()
	w, err := NewJSONWriter(base, "Nowhere")
	if err != nil {
		t.Fatalf("NewJSONWriter: %v", err)
	}

	if err := w.WriteReviews("Hospital", nil); err != nil {
		t.Fatalf("WriteReviews(nil): %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	entries, _ := os.ReadDir(w.dir)
	if len(entries) != 0 {
		t.Errorf("expected no JSON file for an empty run, found %d", len(entries))
	}
}
