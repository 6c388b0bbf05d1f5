package maps

import (
	"os"
	"os/exec"

	"github.com/chromedp/chromedp"

	"hospital-scraper/config"
)

const mapsURL = "https://www.google.com/maps"

// buildAllocatorOptions assembles the Chrome launch flags, including the
// fingerprint-masking flags Maps is known to probe for.
func buildAllocatorOptions(cfg *config.Config) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1280, 800),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if bin := findChromeBinary(cfg.ChromeBin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	return opts
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// stealthScript masks the most common automation fingerprints.
const stealthScript = `
	Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
	Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
	Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
`

// consentScript dismisses the cookie-consent interstitial that Maps shows
// on first contact in some regions.
const consentScript = `(function () {
	const selectors = [
		'button[aria-label="Accept all"]',
		'button[aria-label="I agree"]',
		'form[action*="consent"] button',
		'button.VfPpkd-LgbsSe-OWXEXe-k8QpJ'
	];
	for (const sel of selectors) {
		const btn = document.querySelector(sel);
		if (btn) {
			btn.click();
			return true;
		}
	}
	return false;
})();`

// feedScrollScript scrolls the results feed (or the page, when no feed
// container resolves) to its maximum extent.
const feedScrollScript = `(function () {
	const containers = Array.from(document.querySelectorAll(
		'div[role="feed"], div[jsaction*="scroll"]'
	));
	if (containers.length > 0) {
		containers.forEach(c => { c.scrollTop = c.scrollHeight; });
	} else {
		window.scrollTo(0, document.body.scrollHeight);
	}
})();`

// reviewScrollScript scrolls the review region, falling back through
// increasingly generic containment patterns before giving up and scrolling
// the page.
const reviewScrollScript = `(function () {
	const containers = Array.from(document.querySelectorAll(
		'div[role="main"] div.m6QErb.DxyBCb, div[role="feed"], div[jsaction*="scroll"], div[class*="scroll"]'
	));
	if (containers.length > 0) {
		containers.forEach(c => { c.scrollTop = c.scrollHeight; });
	} else {
		window.scrollTo(0, document.body.scrollHeight);
	}
})();`

// expandReviewsScript clicks every visible "more" control so truncated
// review text is fully rendered before extraction.
const expandReviewsScript = `(function () {
	const buttons = Array.from(document.querySelectorAll(
		'button.w8nwRe, button[aria-label="See more"], button[jsaction*="expandReview"]'
	));
	let clicked = 0;
	for (const btn of buttons) {
		if (btn.offsetParent !== null) {
			btn.click();
			clicked++;
		}
	}
	return clicked;
})();`

// reviewTabFallbackScript locates a tab or button whose label mentions
// reviews and clicks it. Used when none of the CSS trigger candidates
// resolve.
const reviewTabFallbackScript = `(function () {
	const candidates = Array.from(document.querySelectorAll(
		'button[role="tab"], button, a, div[role="button"]'
	));
	for (const el of candidates) {
		const text = (el.textContent || '') + ' ' + (el.getAttribute('aria-label') || '');
		if (/reviews/i.test(text)) {
			el.click();
			return true;
		}
	}
	return false;
})();`

// probeScript builds a JS expression that reports how many elements match
// any of the candidate selectors (the first selector with matches wins,
// mirroring the Go-side resolver) together with the scrollable extent of
// the likeliest container.
func probeScript(candidates []string) string {
	list := "["
	for i, sel := range candidates {
		if i > 0 {
			list += ","
		}
		list += "`" + sel + "`"
	}
	list += "]"

	return `(function () {
	const selectors = ` + list + `;
	let count = 0;
	for (const sel of selectors) {
		let found = [];
		try { found = document.querySelectorAll(sel); } catch (e) { continue; }
		if (found.length > 0) {
			count = found.length;
			break;
		}
	}
	const container = document.querySelector('div[role="feed"], div[role="main"] div.m6QErb.DxyBCb');
	const extent = container ? container.scrollHeight : document.body.scrollHeight;
	return {items: count, extent: extent};
})();`
}
