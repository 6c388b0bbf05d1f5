package services

import (
	"sync"
	"time"

	"hospital-scraper/models"
	"hospital-scraper/utils"
)

// RejectReason explains why the validator refused a raw review.
type RejectReason int

const (
	Accepted RejectReason = iota
	RejectMissingField
	RejectTooShort
	RejectDuplicate
)

func (r RejectReason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectMissingField:
		return "missing field"
	case RejectTooShort:
		return "too short"
	case RejectDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// minTextLen is the shortest normalized review text worth keeping.
const minTextLen = 5

// Validator checks raw reviews for completeness and suppresses repeats via
// a content fingerprint. The seen-set lives for one run; create a fresh
// Validator per run so runs (and tests) do not leak state into each other.
type Validator struct {
	logger *utils.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewValidator creates a Validator with an empty fingerprint set.
func NewValidator(logger *utils.Logger) *Validator {
	return &Validator{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Validate checks the raw review and returns the accepted record, or nil
// with the reason it was rejected. On acceptance the fingerprint is recorded
// before returning, so an identical record scraped twice in one run (for
// example from overlapping scroll reads) is accepted exactly once.
func (v *Validator) Validate(raw models.RawReview) (*models.Review, RejectReason) {
	if raw.Hospital == "" || raw.Reviewer == "" || raw.Rating == "" || raw.Text == "" {
		v.logger.Warn("[validator] rejecting review with missing field (hospital=%q reviewer=%q)",
			raw.Hospital, raw.Reviewer)
		return nil, RejectMissingField
	}

	if len([]rune(raw.Text)) < minTextLen {
		v.logger.Debug("[validator] review too short: %q", raw.Text)
		return nil, RejectTooShort
	}

	fp := raw.Hospital + ":" + raw.Reviewer + ":" + raw.Text

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, dup := v.seen[fp]; dup {
		v.logger.Debug("[validator] duplicate review from %s at %s", raw.Reviewer, raw.Hospital)
		return nil, RejectDuplicate
	}
	v.seen[fp] = struct{}{}

	return &models.Review{
		Hospital:  raw.Hospital,
		Reviewer:  raw.Reviewer,
		Rating:    raw.Rating,
		Text:      raw.Text,
		Posted:    raw.Posted,
		ScrapedAt: time.Now(),
	}, Accepted
}

// SeenCount returns the number of distinct fingerprints recorded so far.
func (v *Validator) SeenCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
