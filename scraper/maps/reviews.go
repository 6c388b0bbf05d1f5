package maps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"hospital-scraper/models"
	"hospital-scraper/services"
)

// collectReviews activates the reviews view for the currently open listing,
// scrolls until stable, captures the markup and returns the validated
// reviews. All element-level failures are logged and skipped; this method
// never fails the listing.
func (s *Scraper) collectReviews(ctx context.Context, hospital string) []*models.Review {
	s.logger.Info("[maps] Opening reviews for: %s", hospital)

	if !s.activateReviewsTab(ctx) {
		s.logger.Warn("[maps] Could not find the reviews section for %s, continuing with rendered content", hospital)
	}

	probe := func(ctx context.Context) (int, int, error) {
		var r probeResult
		err := chromedp.Run(ctx, chromedp.Evaluate(probeScript(reviewItemSelectors), &r))
		return r.Items, r.Extent, err
	}
	scroll := func(ctx context.Context) error {
		s.limiter.Wait()
		return chromedp.Run(ctx, chromedp.Evaluate(reviewScrollScript, nil))
	}

	found := scrollUntilStable(ctx, scroll, probe, scrollOptions{
		MaxAttempts: s.cfg.ScrollMaxAttempt,
		Delay:       time.Duration(s.cfg.ScrollWaitMs) * time.Millisecond,
		Jitter:      time.Second,
		TargetItems: s.cfg.MaxReviews,
	}, s.logger)
	s.logger.Debug("[maps] Review region stable with %d elements", found)

	// Expand truncated review text before capturing. Best effort: a listing
	// without "more" controls simply reports zero clicks.
	if err := chromedp.Run(ctx, chromedp.Evaluate(expandReviewsScript, nil)); err != nil {
		s.logger.Debug("[maps] Expanding review text failed: %v", err)
	} else {
		chromedp.Run(ctx, chromedp.Sleep(time.Second))
	}

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		s.logger.Error("[maps] Could not capture review markup for %s: %v", hospital, err)
		return nil
	}

	raws := parseRawReviews(html, hospital, s.cfg.MaxReviews)

	reviews := make([]*models.Review, 0, len(raws))
	for _, raw := range raws {
		raw.Reviewer = services.Normalize(raw.Reviewer)
		raw.Text = services.Normalize(raw.Text)
		raw.Rating = strings.TrimSpace(raw.Rating)
		raw.Posted = services.Normalize(raw.Posted)

		review, reason := s.validator.Validate(raw)
		if reason != services.Accepted {
			s.rejected[reason]++
			continue
		}
		reviews = append(reviews, review)
	}

	s.logger.Info("[maps] Extracted %d valid reviews for %s (%d raw)", len(reviews), hospital, len(raws))
	return reviews
}

// activateReviewsTab tries each trigger candidate in order, then a
// text-match fallback that clicks anything labelled "Reviews". Returns
// false when nothing activated; the caller proceeds best-effort.
func (s *Scraper) activateReviewsTab(ctx context.Context) bool {
	for _, sel := range reviewTabSelectors {
		s.limiter.Wait()

		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := chromedp.Run(cctx, chromedp.Click(sel, chromedp.ByQuery))
		cancel()
		if err == nil {
			s.logger.Debug("[maps] Reviews view activated via %q", sel)
			chromedp.Run(ctx, chromedp.Sleep(2*time.Second))
			return true
		}
	}

	s.limiter.Wait()
	var clicked bool
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := chromedp.Run(cctx, chromedp.Evaluate(reviewTabFallbackScript, &clicked))
	cancel()
	if err == nil && clicked {
		s.logger.Debug("[maps] Reviews view activated via text-match fallback")
		chromedp.Run(ctx, chromedp.Sleep(2*time.Second))
		return true
	}

	return false
}

// parseRawReviews extracts up to maxCount raw reviews from serialized page
// markup. Missing fields fall back to placeholders so the validator, not
// the parser, decides what survives.
func parseRawReviews(html, hospital string, maxCount int) []models.RawReview {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	items, _, ok := resolveFirst(doc.Selection, reviewItemSelectors)
	if !ok {
		return nil
	}

	reviews := make([]models.RawReview, 0, maxCount)
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		if len(reviews) >= maxCount {
			return false
		}

		reviewer := resolveText(item, reviewerNameSelectors)
		if reviewer == "" {
			reviewer = fmt.Sprintf("Anonymous Reviewer %d", i+1)
		}

		rating := resolveLabel(item, reviewRatingSelectors)
		if rating == "" {
			rating = "No rating"
		}

		text := resolveText(item, reviewTextSelectors)
		if text == "" {
			// Last resort: the item's whole text.
			text = item.Text()
		}

		reviews = append(reviews, models.RawReview{
			Hospital: hospital,
			Reviewer: reviewer,
			Rating:   rating,
			Text:     text,
			Posted:   resolveText(item, reviewPostedSelectors),
		})
		return true
	})

	return reviews
}

// resolveLabel is resolveText with the preference inverted: the aria-label
// wins over element text, because star ratings render as icon glyphs whose
// label carries the actual value.
func resolveLabel(scope *goquery.Selection, candidates []string) string {
	found, _, ok := resolveFirst(scope, candidates)
	if !ok {
		return ""
	}
	first := found.First()
	if label, exists := first.Attr("aria-label"); exists && strings.TrimSpace(label) != "" {
		return strings.TrimSpace(label)
	}
	return strings.TrimSpace(first.Text())
}
