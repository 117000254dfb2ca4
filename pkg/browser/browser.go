// Package browser drives a real browser for the login and feed loading steps.
// Driver is the narrow set of operations the rest of the code needs; Chrome implements it
// with chromedp over the DevTools protocol.
package browser

import (
	"context"
	"time"

	"github.com/umputun/postwatch/pkg/locator"
)

//go:generate moq -out mocks/session.go -pkg mocks -skip-ensure -fmt goimports . Session

// Driver is a single browser tab
type Driver interface {
	Navigate(ctx context.Context, url string) error
	Location(ctx context.Context) (string, error)
	// WaitPresent blocks until the element is in the DOM or the timeout expires
	WaitPresent(ctx context.Context, l locator.Locator, timeout time.Duration) error
	// Exists checks element presence without waiting
	Exists(ctx context.Context, l locator.Locator) (bool, error)
	Fill(ctx context.Context, l locator.Locator, value string) error
	Click(ctx context.Context, l locator.Locator) error
	PressEnter(ctx context.Context, l locator.Locator) error
	// ScrollHeight returns scrollHeight of the element matched by css selector, or of the page if selector is empty
	ScrollHeight(ctx context.Context, container string) (int, error)
	ScrollToBottom(ctx context.Context, container string) error
	ScrollToTop(ctx context.Context, container string) error
	// HTML returns the rendered outer HTML of the whole document
	HTML(ctx context.Context) (string, error)
}

// Options for the browser launch
type Options struct {
	Headless  bool
	UserAgent string
}

// Session is a Driver which owns the browser process and must be closed
type Session interface {
	Driver
	Close()
}
