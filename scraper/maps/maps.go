package maps

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"hospital-scraper/config"
	"hospital-scraper/models"
	"hospital-scraper/services"
	"hospital-scraper/storage"
	"hospital-scraper/utils"
)

// Scraper drives a single browser page through the whole run: search,
// listing collection, then per-hospital review collection. All navigation
// is strictly sequential on that one page.
type Scraper struct {
	cfg       *config.Config
	logger    *utils.Logger
	limiter   *utils.RateLimiter
	validator *services.Validator
	retry     *utils.RetryConfig

	rejected map[services.RejectReason]int
}

// RunResult aggregates everything a completed run produced.
type RunResult struct {
	Hospitals []*models.HospitalListing
	Reviews   []*models.Review
	Rejected  map[services.RejectReason]int
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, validator *services.Validator) *Scraper {
	return &Scraper{
		cfg:       cfg,
		logger:    logger,
		validator: validator,
		limiter: utils.NewRateLimiter(
			time.Duration(cfg.MinDelayMs)*time.Millisecond,
			time.Duration(cfg.MaxDelayMs)*time.Millisecond,
		),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		rejected: make(map[services.RejectReason]int),
	}
}

// Run executes the full scrape: launch browser, search, collect and persist
// listings, then for each listing collect and persist its reviews. Browser
// bootstrap and initial-search failures are fatal; a failure inside one
// listing's cycle is logged and the loop moves on. The browser is torn down
// on every exit path.
func (s *Scraper) Run(listingWriters []storage.ListingWriter, reviewWriters []storage.ReviewWriter) (*RunResult, error) {
	s.logger.Info("[maps] Starting scrape — location: %s, max hospitals: %d, max reviews: %d",
		s.cfg.Location, s.cfg.MaxHospitals, s.cfg.MaxReviews)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), buildAllocatorOptions(s.cfg)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// Force the browser process up front so a broken Chrome install fails
	// the run here instead of midway through the search.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("browser bootstrap: %w", err)
	}
	s.logger.Info("[maps] Browser ready")

	if err := s.search(browserCtx); err != nil {
		return nil, fmt.Errorf("initial search: %w", err)
	}
	s.logger.Info("[maps] Search results loaded")

	result := &RunResult{Rejected: s.rejected}

	hospitals := s.collectListings(browserCtx)
	result.Hospitals = hospitals
	if len(hospitals) == 0 {
		s.logger.Warn("[maps] No hospitals found in %s", s.cfg.Location)
		return result, nil
	}
	s.logger.Info("[maps] Collected %d hospital listings", len(hospitals))

	for _, w := range listingWriters {
		if err := w.WriteListings(hospitals); err != nil {
			s.logger.Error("[maps] Persisting hospital list failed: %v", err)
		}
	}

	for i, h := range hospitals {
		s.logger.Info("[maps] [%d/%d] Processing %s", i+1, len(hospitals), h.Name)

		reviews, err := s.processListing(browserCtx, h)
		if err != nil {
			s.logger.Error("[maps] Failed to process hospital %s: %v — continuing with next", h.Name, err)
			continue
		}

		if len(reviews) == 0 {
			s.logger.Warn("[maps] No valid reviews to save for %s", h.Name)
		} else {
			for _, w := range reviewWriters {
				if err := w.WriteReviews(h.Name, reviews); err != nil {
					s.logger.Error("[maps] Persisting reviews for %s failed: %v", h.Name, err)
				}
			}
			result.Reviews = append(result.Reviews, reviews...)
		}

		// Pause between hospitals so navigation patterns stay human-paced.
		s.limiter.Wait()
	}

	s.logger.Info("[maps] Scrape complete — %d hospitals, %d reviews", len(hospitals), len(result.Reviews))
	return result, nil
}

// search opens Google Maps, issues the hospital query and waits for the
// results feed. A timeout here is fatal for the run: without results there
// is nothing to collect.
func (s *Scraper) search(ctx context.Context) error {
	query := "top hospitals in " + s.cfg.Location

	return s.retry.Do(ctx, "search-maps", func() error {
		s.limiter.Wait()
		s.logger.Info("[maps] Searching for: %s", query)

		tctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.SearchTimeoutS)*time.Second)
		defer cancel()

		return chromedp.Run(tctx,
			chromedp.Navigate(mapsURL),
			chromedp.Evaluate(stealthScript, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(consentScript, nil),
			chromedp.WaitVisible(searchBoxSelector, chromedp.ByQuery),
			chromedp.SendKeys(searchBoxSelector, query+kb.Enter, chromedp.ByQuery),
			chromedp.WaitVisible(resultsFeedSelector, chromedp.ByQuery),
		)
	})
}

// processListing runs one hospital's cycle: navigate to its place page and
// collect reviews. A navigation timeout aborts only this listing.
func (s *Scraper) processListing(ctx context.Context, h *models.HospitalListing) ([]*models.Review, error) {
	err := s.retry.Do(ctx, "open-listing", func() error {
		s.limiter.Wait()

		tctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.NavTimeoutS)*time.Second)
		defer cancel()

		return chromedp.Run(tctx,
			chromedp.Navigate(h.Link),
			chromedp.Sleep(3*time.Second),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", h.Link, err)
	}

	return s.collectReviews(ctx, h.Name), nil
}
