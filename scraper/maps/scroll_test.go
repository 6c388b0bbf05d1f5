package maps

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-scraper/utils"
)

func fastOpts(maxAttempts, target int) scrollOptions {
	return scrollOptions{
		MaxAttempts: maxAttempts,
		Delay:       time.Millisecond,
		TargetItems: target,
	}
}

func TestScrollStopsAtMaxAttemptsWhileGrowing(t *testing.T) {
	items := 0
	scrolls := 0

	scroll := func(context.Context) error { scrolls++; return nil }
	probe := func(context.Context) (int, int, error) {
		items += 5
		return items, items * 100, nil
	}

	got := scrollUntilStable(context.Background(), scroll, probe, fastOpts(4, 0), utils.NewLogger())

	if scrolls != 4 {
		t.Errorf("scroll attempts = %d, want exactly MaxAttempts (4)", scrolls)
	}
	if got == 0 {
		t.Error("expected a nonzero final item count")
	}
}

func TestScrollStopsWhenStable(t *testing.T) {
	scrolls := 0
	scroll := func(context.Context) error { scrolls++; return nil }
	probe := func(context.Context) (int, int, error) { return 7, 700, nil }

	got := scrollUntilStable(context.Background(), scroll, probe, fastOpts(10, 0), utils.NewLogger())

	if got != 7 {
		t.Errorf("final count = %d, want 7", got)
	}
	if scrolls != 1 {
		t.Errorf("scroll attempts = %d, want 1 (no growth after first scroll)", scrolls)
	}
}

func TestScrollStopsAtTarget(t *testing.T) {
	items := 0
	scrolls := 0
	scroll := func(context.Context) error { scrolls++; return nil }
	probe := func(context.Context) (int, int, error) {
		items += 10
		return items, items * 10, nil
	}

	got := scrollUntilStable(context.Background(), scroll, probe, fastOpts(100, 25), utils.NewLogger())

	if got < 25 {
		t.Errorf("final count = %d, want at least the target 25", got)
	}
	if scrolls >= 100 {
		t.Error("target should stop the loop well before MaxAttempts")
	}
}

func TestScrollTreatsProbeErrorAsStable(t *testing.T) {
	calls := 0
	scroll := func(context.Context) error { return nil }
	probe := func(context.Context) (int, int, error) {
		calls++
		if calls == 1 {
			return 3, 300, nil
		}
		return 0, 0, errors.New("node detached")
	}

	got := scrollUntilStable(context.Background(), scroll, probe, fastOpts(10, 0), utils.NewLogger())
	if got != 3 {
		t.Errorf("final count = %d, want last good measurement 3", got)
	}
}

func TestScrollTreatsScrollErrorAsStable(t *testing.T) {
	scroll := func(context.Context) error { return errors.New("container invalidated") }
	probe := func(context.Context) (int, int, error) { return 2, 200, nil }

	got := scrollUntilStable(context.Background(), scroll, probe, fastOpts(10, 0), utils.NewLogger())
	if got != 2 {
		t.Errorf("final count = %d, want 2", got)
	}
}

func TestScrollInitialProbeFailure(t *testing.T) {
	scroll := func(context.Context) error { return nil }
	probe := func(context.Context) (int, int, error) { return 0, 0, errors.New("no container") }

	got := scrollUntilStable(context.Background(), scroll, probe, fastOpts(10, 0), utils.NewLogger())
	if got != 0 {
		t.Errorf("final count = %d, want 0", got)
	}
}
