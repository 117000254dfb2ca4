package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/postwatch/pkg/locator"
)

// hides navigator.webdriver from the page scripts
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Chrome is a Driver backed by a chromedp browser context
type Chrome struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Launch starts a new chrome process and opens a tab in it.
// Caller must call Close to release the browser.
func Launch(ctx context.Context, opts Options) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], //nolint:gocritic // copy of defaults is intended
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		lgr.Printf("[DEBUG] chrome: "+format, args...)
	}))

	c := &Chrome{ctx: browserCtx, cancel: func() { browserCancel(); allocCancel() }}

	// the first Run starts the browser, it must not be bound to a short-lived context
	err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	}))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	lgr.Printf("[DEBUG] chrome started, headless=%v", opts.Headless)
	return c, nil
}

// Close shuts down the browser
func (c *Chrome) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// run executes actions in the browser tab, bound to the caller's ctx as well
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(c.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads the url
func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := c.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Location returns the current tab url
func (c *Chrome) Location(ctx context.Context) (string, error) {
	var loc string
	if err := c.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// WaitPresent waits for the element to appear in the DOM
func (c *Chrome) WaitPresent(ctx context.Context, l locator.Locator, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := c.run(ctx, chromedp.WaitReady(l.Value, queryOpt(l))); err != nil {
		return fmt.Errorf("wait for %s: %w", l, err)
	}
	return nil
}

// Exists checks if at least one element matches, without waiting
func (c *Chrome) Exists(ctx context.Context, l locator.Locator) (bool, error) {
	var nodes []*cdp.Node
	if err := c.run(ctx, chromedp.Nodes(l.Value, &nodes, queryOpt(l), chromedp.AtLeast(0))); err != nil {
		return false, fmt.Errorf("query %s: %w", l, err)
	}
	return len(nodes) > 0, nil
}

// Fill clears the input and types the value into it
func (c *Chrome) Fill(ctx context.Context, l locator.Locator, value string) error {
	if err := c.run(ctx, chromedp.Clear(l.Value, queryOpt(l)), chromedp.SendKeys(l.Value, value, queryOpt(l))); err != nil {
		return fmt.Errorf("fill %s: %w", l, err)
	}
	return nil
}

// Click clicks the first matching element
func (c *Chrome) Click(ctx context.Context, l locator.Locator) error {
	if err := c.run(ctx, chromedp.Click(l.Value, queryOpt(l))); err != nil {
		return fmt.Errorf("click %s: %w", l, err)
	}
	return nil
}

// PressEnter sends the return key to the element
func (c *Chrome) PressEnter(ctx context.Context, l locator.Locator) error {
	if err := c.run(ctx, chromedp.SendKeys(l.Value, kb.Enter, queryOpt(l))); err != nil {
		return fmt.Errorf("press enter in %s: %w", l, err)
	}
	return nil
}

// ScrollHeight returns the scroll height of the container or of the page
func (c *Chrome) ScrollHeight(ctx context.Context, container string) (int, error) {
	var h int
	if err := c.run(ctx, chromedp.Evaluate(scrollTarget(container)+".scrollHeight", &h)); err != nil {
		return 0, fmt.Errorf("get scroll height: %w", err)
	}
	return h, nil
}

// ScrollToBottom scrolls the container or the page to its current bottom
func (c *Chrome) ScrollToBottom(ctx context.Context, container string) error {
	js := fmt.Sprintf("(() => { const el = %s; el.scrollTop = el.scrollHeight; return true })()", scrollTarget(container))
	if container == "" {
		js = "(() => { window.scrollTo(0, document.body.scrollHeight); return true })()"
	}
	var ok bool
	if err := c.run(ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return fmt.Errorf("scroll to bottom: %w", err)
	}
	return nil
}

// ScrollToTop scrolls the container or the page back to the top
func (c *Chrome) ScrollToTop(ctx context.Context, container string) error {
	js := fmt.Sprintf("(() => { %s.scrollTop = 0; return true })()", scrollTarget(container))
	if container == "" {
		js = "(() => { window.scrollTo(0, 0); return true })()"
	}
	var ok bool
	if err := c.run(ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return fmt.Errorf("scroll to top: %w", err)
	}
	return nil
}

// HTML returns outer html of the document element
func (c *Chrome) HTML(ctx context.Context) (string, error) {
	var html string
	if err := c.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("get page html: %w", err)
	}
	return html, nil
}

// queryOpt maps locator kind to chromedp query option
func queryOpt(l locator.Locator) chromedp.QueryOption {
	if l.Kind == locator.XPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// scrollTarget returns js expression of the element to scroll
func scrollTarget(container string) string {
	if container == "" {
		return "document.body"
	}
	sel, _ := json.Marshal(container) //nolint:errchkjson // string always marshals
	return fmt.Sprintf("document.querySelector(%s)", sel)
}
