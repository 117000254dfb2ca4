// Package loader opens the feed page and scrolls it until lazy loading stops adding content
package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postwatch/pkg/browser"
	"github.com/umputun/postwatch/pkg/domain"
	"github.com/umputun/postwatch/pkg/locator"
)

// DefaultContainers are css selectors of the scrollable posts container, most specific first
var DefaultContainers = []string{
	`div.flex-grow.overflow-scroll.sm\:mb-0`,
	`div[class*="flex-grow"][class*="overflow-scroll"]`,
	`div.overflow-scroll`,
	`[class*="overflow-scroll"]`,
}

// Params of the feed loading
type Params struct {
	DashboardURL         string
	ReadyTimeout         time.Duration // max wait for the page body
	SettleDelay          time.Duration // wait for client-side rendering after navigation
	Containers           []string
	ContainerDelay       time.Duration
	ContainerMaxAttempts int
	PageDelay            time.Duration
	PageMaxAttempts      int
	TopDelay             time.Duration // pause after scrolling back to the top
}

// Loader loads the feed page and captures a snapshot of it
type Loader struct {
	Params
	containers locator.Chain
}

// New makes a loader, zero params replaced by defaults
func New(params Params) *Loader {
	if params.ReadyTimeout == 0 {
		params.ReadyTimeout = 15 * time.Second
	}
	if params.SettleDelay == 0 {
		params.SettleDelay = 5 * time.Second
	}
	if len(params.Containers) == 0 {
		params.Containers = DefaultContainers
	}
	if params.ContainerDelay == 0 {
		params.ContainerDelay = 2 * time.Second
	}
	if params.ContainerMaxAttempts == 0 {
		params.ContainerMaxAttempts = 15
	}
	if params.PageDelay == 0 {
		params.PageDelay = 3 * time.Second
	}
	if params.PageMaxAttempts == 0 {
		params.PageMaxAttempts = 10
	}
	if params.TopDelay == 0 {
		params.TopDelay = time.Second
	}
	return &Loader{Params: params, containers: locator.CSSChain(params.Containers...)}
}

// LoadFeed navigates to the dashboard if needed, waits for the page, scrolls it to load all posts
// and returns the rendered page
func (l *Loader) LoadFeed(ctx context.Context, drv browser.Driver) (domain.Snapshot, error) {
	loc, err := drv.Location(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("get location: %w", err)
	}
	if !strings.Contains(loc, l.DashboardURL) {
		lgr.Printf("[INFO] navigating to dashboard %s", l.DashboardURL)
		if err = drv.Navigate(ctx, l.DashboardURL); err != nil {
			return domain.Snapshot{}, fmt.Errorf("open dashboard: %w", err)
		}
	}

	if err = drv.WaitPresent(ctx, locator.ByCSS("body"), l.ReadyTimeout); err != nil {
		return domain.Snapshot{}, fmt.Errorf("wait for page: %w", err)
	}
	if err = sleep(ctx, l.SettleDelay); err != nil {
		return domain.Snapshot{}, err
	}

	l.scrollAll(ctx, drv)

	html, err := drv.HTML(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("capture page: %w", err)
	}
	if loc, err = drv.Location(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("get location: %w", err)
	}
	lgr.Printf("[DEBUG] captured %d bytes from %s", len(html), loc)
	return domain.Snapshot{HTML: html, URL: loc, CapturedAt: time.Now()}, nil
}

// scrollAll scrolls the posts container, or the whole page if there is no container.
// Scrolling is best effort, errors are logged and the page is captured as is.
func (l *Loader) scrollAll(ctx context.Context, drv browser.Driver) {
	container, err := l.containers.First(func(loc locator.Locator) error {
		ok, err := drv.Exists(ctx, loc)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s not found", loc)
		}
		return nil
	})
	if err == nil {
		lgr.Printf("[DEBUG] scroll container %s", container)
		attempts, err := l.Scroll(ctx, drv, container.Value, l.ContainerDelay, l.ContainerMaxAttempts)
		if err == nil {
			lgr.Printf("[INFO] container scrolling completed after %d attempts", attempts)
			return
		}
		lgr.Printf("[WARN] container scrolling failed, falling back to page scroll: %v", err)
	} else {
		lgr.Printf("[WARN] scroll container not found, falling back to page scroll")
	}

	attempts, err := l.Scroll(ctx, drv, "", l.PageDelay, l.PageMaxAttempts)
	if err != nil {
		lgr.Printf("[WARN] page scrolling failed: %v", err)
		return
	}
	lgr.Printf("[INFO] page scrolling completed after %d attempts", attempts)
}

// Scroll repeatedly scrolls the container (page if empty) to the bottom until its height stops
// changing or maxAttempts is reached, then scrolls back to the top. Returns number of scroll attempts.
func (l *Loader) Scroll(ctx context.Context, drv browser.Driver, container string, delay time.Duration, maxAttempts int) (int, error) {
	last, err := drv.ScrollHeight(ctx, container)
	if err != nil {
		return 0, err
	}
	lgr.Printf("[DEBUG] initial scroll height %d", last)

	attempts := 0
	for attempts < maxAttempts {
		if err = drv.ScrollToBottom(ctx, container); err != nil {
			return attempts, err
		}
		attempts++
		if err = sleep(ctx, delay); err != nil {
			return attempts, err
		}
		height, err := drv.ScrollHeight(ctx, container)
		if err != nil {
			return attempts, err
		}
		if height == last {
			break
		}
		lgr.Printf("[DEBUG] scroll attempt %d, height %d", attempts, height)
		last = height
	}

	if err = drv.ScrollToTop(ctx, container); err != nil {
		return attempts, err
	}
	return attempts, sleep(ctx, l.TopDelay)
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
