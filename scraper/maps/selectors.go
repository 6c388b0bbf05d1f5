package maps

// Selector fallback chains used across the scraper, ordered most specific
// first. Google Maps ships no stable markup contract, so every logical
// field is located through a chain of structurally different patterns; new
// fallbacks are appended here, never hardcoded at call sites.

// searchBoxSelector is the Maps search input.
const searchBoxSelector = `input#searchboxinput`

// resultsFeedSelector is the scrollable results panel that must appear
// before any listing can be collected.
const resultsFeedSelector = `div[role="feed"]`

// listingCardSelectors locate one hospital entry in the results feed.
var listingCardSelectors = []string{
	`div.Nv2PK`,
	`div[role="feed"] > div > div[jsaction]`,
	`a.hfpxzc`,
}

// listingNameSelectors locate the hospital name inside a card.
var listingNameSelectors = []string{
	`div.qBF1Pd`,
	`div.fontHeadlineSmall`,
	`a.hfpxzc[aria-label]`,
}

// listingLinkSelectors locate the navigable place link inside a card.
var listingLinkSelectors = []string{
	`a.hfpxzc`,
	`a[href*="/maps/place/"]`,
}

// listingAddressSelectors locate the info block(s) holding category and
// address text. Each match is treated as one line for the second-line
// address heuristic.
var listingAddressSelectors = []string{
	`div.W4Efsd > div.W4Efsd`,
	`div.W4Efsd`,
	`div.fontBodyMedium`,
}

// categoryPrefixes are label prefixes stripped from a single-line address.
var categoryPrefixes = []string{
	"General hospital",
	"Private hospital",
	"University hospital",
	"State hospital",
	"Hospital",
	"Medical center",
}

// reviewTabSelectors locate the control that switches to the reviews view.
var reviewTabSelectors = []string{
	`button[role="tab"][aria-label*="Reviews"]`,
	`button[aria-label^="Reviews for"]`,
	`button[jsaction*="moreReviews"]`,
	`button[data-tab-index="1"]`,
}

// reviewItemSelectors locate one review entry.
var reviewItemSelectors = []string{
	`div.jJc9Ad`,
	`div[data-review-id]`,
	`div[class*="review"]`,
	`div[class*="rating"]`,
}

// reviewerNameSelectors locate the reviewer display name inside a review.
var reviewerNameSelectors = []string{
	`div.d4r55`,
	`div[class*="author"]`,
	`span[class*="name"]`,
	`div[class*="profile"]`,
}

// reviewRatingSelectors locate the star rating inside a review. The
// aria-label is preferred over text because Maps renders stars as icons.
var reviewRatingSelectors = []string{
	`span[aria-label*="star"]`,
	`span.kvMYJc[aria-label]`,
	`span[class*="rating"]`,
	`div[class*="star"]`,
}

// reviewTextSelectors locate the review body inside a review.
var reviewTextSelectors = []string{
	`span.wiI7pd`,
	`div.MyEned span`,
	`div[class*="review-text"]`,
	`div[class*="content"]`,
}

// reviewPostedSelectors locate the relative posting date inside a review.
var reviewPostedSelectors = []string{
	`span.rsqaWe`,
	`span[class*="date"]`,
}
