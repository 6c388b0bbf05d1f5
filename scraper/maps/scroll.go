package maps

import (
	"context"
	"math/rand"
	"time"

	"hospital-scraper/utils"
)

// scrollOptions bounds the scroll-until-stable loop.
type scrollOptions struct {
	MaxAttempts int
	Delay       time.Duration
	Jitter      time.Duration
	// TargetItems stops the loop early once the probe reports at least this
	// many items. Zero means no target.
	TargetItems int
}

// scrollFunc commands the container (or page) to scroll to its maximum
// extent.
type scrollFunc func(ctx context.Context) error

// probeFunc reports the current item count and scrollable extent.
type probeFunc func(ctx context.Context) (items int, extent int, err error)

// scrollUntilStable repeatedly scrolls and waits until no growth is
// observed between two consecutive attempts, the attempt bound is reached,
// or the item target is met. A failing scroll or probe (a navigation may
// have invalidated the container) is treated as an immediate stable state,
// not an error: this is a best-effort convergence heuristic and callers
// must tolerate fewer items than requested. Returns the last observed item
// count.
func scrollUntilStable(ctx context.Context, scroll scrollFunc, probe probeFunc,
	opts scrollOptions, logger *utils.Logger) int {

	lastItems, lastExtent, err := probe(ctx)
	if err != nil {
		logger.Debug("[scroll] initial probe failed, treating as stable: %v", err)
		return 0
	}

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if opts.TargetItems > 0 && lastItems >= opts.TargetItems {
			logger.Debug("[scroll] target of %d items reached, stopping", opts.TargetItems)
			return lastItems
		}

		if err := scroll(ctx); err != nil {
			logger.Debug("[scroll] scroll failed on attempt %d, treating as stable: %v", attempt, err)
			return lastItems
		}

		wait := opts.Delay
		if opts.Jitter > 0 {
			wait += time.Duration(rand.Int63n(int64(opts.Jitter)))
		}
		select {
		case <-ctx.Done():
			return lastItems
		case <-time.After(wait):
		}

		items, extent, err := probe(ctx)
		if err != nil {
			logger.Debug("[scroll] probe failed on attempt %d, treating as stable: %v", attempt, err)
			return lastItems
		}

		logger.Debug("[scroll] attempt %d/%d — items %d → %d, extent %d → %d",
			attempt, opts.MaxAttempts, lastItems, items, lastExtent, extent)

		if items <= lastItems && extent <= lastExtent {
			return items
		}
		lastItems, lastExtent = items, extent
	}

	return lastItems
}
