// Package session authenticates a browser tab against the dashboard login form
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/postwatch/pkg/browser"
	"github.com/umputun/postwatch/pkg/locator"
)

// login form candidates, tried in order
var (
	usernameFields = locator.Chain{
		locator.ByName("email"),
		locator.ByName("username"),
		locator.ByID("email"),
		locator.ByID("username"),
		locator.ByXPath("//input[@type='email']"),
		locator.ByXPath("//input[contains(@placeholder, 'email') or contains(@placeholder, 'Email')]"),
	}
	passwordFields = locator.Chain{
		locator.ByName("password"),
		locator.ByID("password"),
		locator.ByXPath("//input[@type='password']"),
	}
	submitButtons = locator.Chain{
		locator.ByCSS("button[type='submit']"),
		locator.ByXPath("//button[contains(text(), 'Log') or contains(text(), 'Sign')]"),
	}
)

var errNotOnDashboard = errors.New("not on dashboard yet")

// Credentials for the login form
type Credentials struct {
	Username string
	Password string
}

// Params of the login flow
type Params struct {
	LoginURL     string
	DashboardURL string
	FieldTimeout time.Duration // per-candidate wait for the username field, also limits each form action
	LoginTimeout time.Duration // wait for redirect to the dashboard
	SettleDelay  time.Duration // wait after the explicit dashboard navigation
	PollInterval time.Duration // location polling interval while waiting for redirect
}

// AuthError is returned when login failed
type AuthError struct {
	Stage string
	Err   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *AuthError) Unwrap() error { return e.Err }

// Manager logs the browser into the dashboard
type Manager struct {
	Params
	creds Credentials
}

// NewManager makes a login manager, zero durations replaced by defaults
func NewManager(params Params, creds Credentials) *Manager {
	if params.FieldTimeout == 0 {
		params.FieldTimeout = 5 * time.Second
	}
	if params.LoginTimeout == 0 {
		params.LoginTimeout = 15 * time.Second
	}
	if params.SettleDelay == 0 {
		params.SettleDelay = 5 * time.Second
	}
	if params.PollInterval == 0 {
		params.PollInterval = 500 * time.Millisecond
	}
	return &Manager{Params: params, creds: creds}
}

// Login fills and submits the login form and verifies the dashboard is reachable.
// There is no retry here, a failed login is reported as *AuthError.
func (m *Manager) Login(ctx context.Context, drv browser.Driver) error {
	lgr.Printf("[INFO] attempting login to %s", m.LoginURL)
	if err := drv.Navigate(ctx, m.LoginURL); err != nil {
		return &AuthError{Stage: "open login page", Err: err}
	}

	userField, err := usernameFields.First(func(l locator.Locator) error {
		return drv.WaitPresent(ctx, l, m.FieldTimeout)
	})
	if err != nil {
		return &AuthError{Stage: "find username field", Err: err}
	}
	lgr.Printf("[DEBUG] username field %s", userField)

	passField, err := passwordFields.First(func(l locator.Locator) error { return present(ctx, drv, l) })
	if err != nil {
		return &AuthError{Stage: "find password field", Err: err}
	}

	if err := m.act(ctx, func(ctx context.Context) error { return drv.Fill(ctx, userField, m.creds.Username) }); err != nil {
		return &AuthError{Stage: "enter username", Err: err}
	}
	if err := m.act(ctx, func(ctx context.Context) error { return drv.Fill(ctx, passField, m.creds.Password) }); err != nil {
		return &AuthError{Stage: "enter password", Err: err}
	}

	if err := m.submit(ctx, drv, passField); err != nil {
		return &AuthError{Stage: "submit form", Err: err}
	}

	loc, err := m.waitForDashboard(ctx, drv)
	if err == nil {
		lgr.Printf("[INFO] logged in and redirected to %s", loc)
		return nil
	}
	if ctx.Err() != nil {
		return &AuthError{Stage: "wait for dashboard", Err: ctx.Err()}
	}

	// no automatic redirect, try to open the dashboard directly once
	lgr.Printf("[WARN] auto-redirect failed, current url %s, navigating to dashboard", loc)
	if err := drv.Navigate(ctx, m.DashboardURL); err != nil {
		return &AuthError{Stage: "open dashboard", Err: err}
	}
	if err := sleep(ctx, m.SettleDelay); err != nil {
		return &AuthError{Stage: "open dashboard", Err: err}
	}
	loc, err = drv.Location(ctx)
	if err != nil {
		return &AuthError{Stage: "verify dashboard", Err: err}
	}
	if !strings.Contains(loc, m.DashboardURL) {
		return &AuthError{Stage: "verify dashboard", Err: fmt.Errorf("unexpected location %s", loc)}
	}
	lgr.Printf("[INFO] logged in, dashboard at %s", loc)
	return nil
}

// submit clicks the submit button or, if there is none, presses enter in the password field.
// A button which can't be clicked in FieldTimeout, e.g. hidden one, moves on to the next candidate.
func (m *Manager) submit(ctx context.Context, drv browser.Driver, passField locator.Locator) error {
	_, err := submitButtons.First(func(l locator.Locator) error {
		if err := present(ctx, drv, l); err != nil {
			return err
		}
		return m.act(ctx, func(ctx context.Context) error { return drv.Click(ctx, l) })
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	lgr.Printf("[DEBUG] no clickable submit button, pressing enter: %v", err)
	return m.act(ctx, func(ctx context.Context) error { return drv.PressEnter(ctx, passField) })
}

// act runs a single form action limited by FieldTimeout. Browser actions wait for the element
// to become visible and would block until the parent ctx is done otherwise.
func (m *Manager) act(ctx context.Context, fn func(ctx context.Context) error) error {
	actCtx, cancel := context.WithTimeout(ctx, m.FieldTimeout)
	defer cancel()
	return fn(actCtx)
}

// waitForDashboard polls the location until it looks like the dashboard or LoginTimeout expires.
// Returns the last seen location.
func (m *Manager) waitForDashboard(ctx context.Context, drv browser.Driver) (string, error) {
	attempts := int(m.LoginTimeout/m.PollInterval) + 1
	retrier := repeater.NewBackoff(attempts, m.PollInterval, repeater.WithMaxDelay(m.PollInterval))

	var loc string
	err := retrier.Do(ctx, func() error {
		current, err := drv.Location(ctx)
		if err != nil {
			return err
		}
		loc = current
		if !m.onDashboard(current) {
			return errNotOnDashboard
		}
		return nil
	})
	if err != nil {
		return loc, fmt.Errorf("wait for dashboard redirect: %w", err)
	}
	return loc, nil
}

func (m *Manager) onDashboard(loc string) bool {
	return (m.DashboardURL != "" && strings.Contains(loc, m.DashboardURL)) ||
		strings.Contains(strings.ToLower(loc), "dashboard")
}

func present(ctx context.Context, drv browser.Driver, l locator.Locator) error {
	ok, err := drv.Exists(ctx, l)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s not found", l)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
