package maps

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"hospital-scraper/models"
	"hospital-scraper/services"
)

// probeResult carries the measurements of one scroll probe.
type probeResult struct {
	Items  int `json:"items"`
	Extent int `json:"extent"`
}

// collectListings scrolls the results feed until it stops growing, captures
// its markup and extracts up to MaxHospitals listings. Returns an empty
// slice when nothing resolves; the caller decides whether that is fatal.
func (s *Scraper) collectListings(ctx context.Context) []*models.HospitalListing {
	s.logger.Info("[maps] Scrolling to load hospital results...")

	probe := func(ctx context.Context) (int, int, error) {
		var r probeResult
		err := chromedp.Run(ctx, chromedp.Evaluate(probeScript(listingCardSelectors), &r))
		return r.Items, r.Extent, err
	}
	scroll := func(ctx context.Context) error {
		s.limiter.Wait()
		return chromedp.Run(ctx, chromedp.Evaluate(feedScrollScript, nil))
	}

	found := scrollUntilStable(ctx, scroll, probe, scrollOptions{
		MaxAttempts: s.cfg.ScrollMaxAttempt,
		Delay:       time.Duration(s.cfg.ScrollWaitMs) * time.Millisecond,
		Jitter:      time.Second,
		TargetItems: s.cfg.MaxHospitals,
	}, s.logger)
	s.logger.Info("[maps] Feed stable with %d listing elements", found)

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML(resultsFeedSelector, &html, chromedp.ByQuery)); err != nil {
		// Feed container gone or renamed, fall back to the whole document.
		if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
			s.logger.Error("[maps] Could not capture results markup: %v", err)
			return nil
		}
	}

	hospitals := parseListings(html, s.cfg.MaxHospitals)
	for _, h := range hospitals {
		s.logger.Info("[maps] Added hospital: %s", h.Name)
	}
	return hospitals
}

// parseListings extracts hospital listings from serialized feed markup.
// Entries missing a name or link are skipped without failing the batch.
func parseListings(html string, maxCount int) []*models.HospitalListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	cards, _, ok := resolveFirst(doc.Selection, listingCardSelectors)
	if !ok {
		return nil
	}

	hospitals := make([]*models.HospitalListing, 0, maxCount)
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(hospitals) >= maxCount {
			return false
		}

		name := services.Normalize(resolveText(card, listingNameSelectors))
		link := resolveAttr(card, listingLinkSelectors, "href")

		// The most generic card fallback matches the place anchor itself.
		if goquery.NodeName(card) == "a" {
			if link == "" {
				link, _ = card.Attr("href")
			}
			if name == "" {
				label, _ := card.Attr("aria-label")
				name = services.Normalize(label)
			}
		}

		if name == "" || link == "" {
			return true
		}

		hospitals = append(hospitals, &models.HospitalListing{
			Name:    name,
			Address: extractAddress(card),
			Link:    link,
		})
		return true
	})

	return hospitals
}

// extractAddress applies the address heuristic: the first info line is
// typically a category label, so with multiple lines the second one is the
// address; a single line gets known category prefixes stripped instead.
func extractAddress(card *goquery.Selection) string {
	lines := addressLines(card)
	switch {
	case len(lines) >= 2:
		return lines[1]
	case len(lines) == 1:
		return stripCategoryPrefix(lines[0])
	default:
		return ""
	}
}

// addressLines resolves the info block chain and returns one normalized
// line per matched element, empties dropped.
func addressLines(card *goquery.Selection) []string {
	found, _, ok := resolveFirst(card, listingAddressSelectors)
	if !ok {
		return nil
	}

	var lines []string
	found.Each(func(_ int, block *goquery.Selection) {
		if text := services.Normalize(block.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return lines
}

// stripCategoryPrefix removes a leading category label and any separator
// residue from a single-line address.
func stripCategoryPrefix(line string) string {
	lower := strings.ToLower(line)
	for _, prefix := range categoryPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			line = strings.TrimSpace(line[len(prefix):])
			break
		}
	}
	return strings.TrimSpace(strings.TrimLeft(line, "·•"))
}
