package maps

import (
	"testing"
)

const feedFixture = `
<div role="feed">
  <div class="Nv2PK">
    <a class="hfpxzc" href="https://www.google.com/maps/place/city-hospital" aria-label="City Hospital"></a>
    <div class="qBF1Pd">City Hospital</div>
    <div class="W4Efsd">
      <div class="W4Efsd">General hospital · Open 24 hours</div>
      <div class="W4Efsd">12 Harbour Road, Istanbul</div>
    </div>
  </div>
  <div class="Nv2PK">
    <a class="hfpxzc" href="https://www.google.com/maps/place/central-clinic" aria-label="Central Clinic"></a>
    <div class="qBF1Pd">Central Clinic</div>
    <div class="W4Efsd">
      <div class="W4Efsd">Private hospital · Acibadem Street 5</div>
    </div>
  </div>
  <div class="Nv2PK">
    <div class="qBF1Pd">No Link Hospital</div>
  </div>
  <div class="Nv2PK">
    <a class="hfpxzc" href="https://www.google.com/maps/place/third" aria-label="Third Hospital"></a>
    <div class="qBF1Pd">Third Hospital</div>
  </div>
</div>`

func TestParseListingsExtractsFields(t *testing.T) {
	hospitals := parseListings(feedFixture, 10)

	if len(hospitals) != 3 {
		t.Fatalf("got %d listings, want 3 (entry without link must be skipped)", len(hospitals))
	}

	first := hospitals[0]
	if first.Name != "City Hospital" {
		t.Errorf("Name = %q, want %q", first.Name, "City Hospital")
	}
	if first.Link != "https://www.google.com/maps/place/city-hospital" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.Address != "12 Harbour Road, Istanbul" {
		t.Errorf("Address = %q, want second info line", first.Address)
	}
}

func TestParseListingsSingleLineAddressStripsCategory(t *testing.T) {
	hospitals := parseListings(feedFixture, 10)

	second := hospitals[1]
	if second.Address != "Acibadem Street 5" {
		t.Errorf("Address = %q, want category prefix stripped", second.Address)
	}
}

func TestParseListingsMissingAddressIsEmpty(t *testing.T) {
	hospitals := parseListings(feedFixture, 10)

	third := hospitals[2]
	if third.Name != "Third Hospital" {
		t.Fatalf("unexpected third listing: %+v", third)
	}
	if third.Address != "" {
		t.Errorf("Address = %q, want empty for a card with no info block", third.Address)
	}
}

func TestParseListingsHonorsMaxCount(t *testing.T) {
	hospitals := parseListings(feedFixture, 2)
	if len(hospitals) != 2 {
		t.Errorf("got %d listings, want cap of 2", len(hospitals))
	}
}

func TestParseListingsEmptyDocument(t *testing.T) {
	if got := parseListings("<html><body></body></html>", 10); len(got) != 0 {
		t.Errorf("got %d listings from empty document, want 0", len(got))
	}
}

func TestParseListingsAnchorFallback(t *testing.T) {
	// No Nv2PK cards at all: the chain falls back to bare place anchors,
	// taking name from the aria-label.
	html := `<div role="feed">
		<a class="hfpxzc" href="https://www.google.com/maps/place/solo" aria-label="Solo Hospital"></a>
	</div>`

	hospitals := parseListings(html, 10)
	if len(hospitals) != 1 {
		t.Fatalf("got %d listings, want 1", len(hospitals))
	}
	if hospitals[0].Name != "Solo Hospital" {
		t.Errorf("Name = %q, want aria-label fallback", hospitals[0].Name)
	}
	if hospitals[0].Link != "https://www.google.com/maps/place/solo" {
		t.Errorf("Link = %q", hospitals[0].Link)
	}
}

func TestStripCategoryPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"General hospital · Acibadem Street 5", "Acibadem Street 5"},
		{"Private hospital Main St 1", "Main St 1"},
		{"University hospital · Campus Road", "Campus Road"},
		{"12 Plain Street", "12 Plain Street"},
		{"Hospital · Somewhere", "Somewhere"},
	}

	for _, tt := range tests {
		if got := stripCategoryPrefix(tt.in); got != tt.want {
			t.Errorf("stripCategoryPrefix(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
