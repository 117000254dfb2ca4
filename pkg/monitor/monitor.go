// Package monitor runs check cycles: login, load the feed, extract posts, find new ones,
// notify about them and persist the known set
package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postwatch/pkg/browser"
	"github.com/umputun/postwatch/pkg/diff"
	"github.com/umputun/postwatch/pkg/domain"
	"github.com/umputun/postwatch/pkg/extract"
	"github.com/umputun/postwatch/pkg/session"
	"github.com/umputun/postwatch/pkg/stats"
	"github.com/umputun/postwatch/pkg/store"
)

//go:generate moq -out mocks/authenticator.go -pkg mocks -skip-ensure -fmt goimports . Authenticator
//go:generate moq -out mocks/feed_loader.go -pkg mocks -skip-ensure -fmt goimports . FeedLoader
//go:generate moq -out mocks/post_extractor.go -pkg mocks -skip-ensure -fmt goimports . PostExtractor
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// Launcher starts a browser session for a single cycle
type Launcher func(ctx context.Context) (browser.Session, error)

// Authenticator logs the browser in
type Authenticator interface {
	Login(ctx context.Context, drv browser.Driver) error
}

// FeedLoader loads the fully scrolled feed page
type FeedLoader interface {
	LoadFeed(ctx context.Context, drv browser.Driver) (domain.Snapshot, error)
}

// PostExtractor makes posts from the page
type PostExtractor interface {
	Extract(snap domain.Snapshot) ([]domain.Post, extract.Report, error)
}

// Notifier reports new posts
type Notifier interface {
	Notify(posts []domain.Post)
}

// Deps are collaborators of the monitor, all required
type Deps struct {
	Launch    Launcher
	Auth      Authenticator
	Loader    FeedLoader
	Extractor PostExtractor
	Notifier  Notifier
	Store     store.Store
}

// Config of the monitor
type Config struct {
	CheckInterval     time.Duration // pause between cycles
	RetryDelay        time.Duration // pause after a failed cycle
	CycleTimeout      time.Duration // deadline of a single cycle, browser steps included
	DebugSnapshotPath string        // page is dumped here if no posts found, empty disables
	RecentCount       int           // number of recent posts in stats
}

// Status describes the monitor state
type Status struct {
	StartedAt    time.Time `json:"started_at"`
	LastCheck    time.Time `json:"last_check,omitempty"`
	LastSuccess  time.Time `json:"last_success,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	LastNew      int       `json:"last_new"`
	LastStrategy string    `json:"last_strategy,omitempty"`
	Cycles       int       `json:"cycles"`
	Failures     int       `json:"failures"`
	Known        int       `json:"known"`
}

// Monitor owns the known set and runs check cycles. Cycles are sequential,
// the known set may be read concurrently.
type Monitor struct {
	Deps
	Config

	mu     sync.RWMutex
	known  domain.KnownSet
	status Status
	now    func() time.Time
}

// New makes a monitor and loads the known set from the store
func New(ctx context.Context, deps Deps, cfg Config) (*Monitor, error) {
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = 5 * time.Minute
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Minute
	}
	if cfg.RecentCount == 0 {
		cfg.RecentCount = 3
	}
	if cfg.CycleTimeout == 0 {
		cfg.CycleTimeout = 5 * time.Minute
	}

	known, err := deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load known posts: %w", err)
	}
	if known == nil {
		known = domain.KnownSet{}
	}

	m := &Monitor{Deps: deps, Config: cfg, known: known, now: time.Now}
	m.status = Status{StartedAt: m.now(), Known: len(known)}
	return m, nil
}

// Run checks for new posts until ctx is canceled. A failed login waits the normal interval,
// other failures wait RetryDelay. Nothing inside the loop stops it.
func (m *Monitor) Run(ctx context.Context) error {
	lgr.Printf("[INFO] monitoring started, checking every %v", m.CheckInterval)
	for {
		posts, err := m.RunOnce(ctx)
		if ctx.Err() != nil {
			lgr.Printf("[INFO] monitoring stopped")
			return nil
		}

		wait := m.CheckInterval
		var authErr *session.AuthError
		switch {
		case errors.As(err, &authErr):
			lgr.Printf("[WARN] %v", err)
		case err != nil:
			lgr.Printf("[ERROR] check failed: %v, retrying in %v", err, m.RetryDelay)
			wait = m.RetryDelay
		case len(posts) > 0:
			lgr.Printf("[INFO] found %d new posts, %d known", len(posts), m.knownCount())
		default:
			lgr.Printf("[INFO] no new posts, %d known", m.knownCount())
		}

		lgr.Printf("[DEBUG] next check in %v", wait)
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] monitoring stopped")
			return nil
		case <-time.After(wait):
		}
	}
}

// RunOnce runs a single check cycle and returns new posts. The cycle is limited by CycleTimeout,
// the browser session is closed before return regardless of the outcome.
func (m *Monitor) RunOnce(ctx context.Context) (posts []domain.Post, err error) {
	started := m.now()
	defer func() { m.recordCycle(started, len(posts), err) }()

	ctx, cancel := context.WithTimeout(ctx, m.CycleTimeout)
	defer cancel()

	sess, err := m.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer sess.Close()

	if err = m.Auth.Login(ctx, sess); err != nil {
		return nil, err
	}

	snap, err := m.Loader.LoadFeed(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	current, report, err := m.Extractor.Extract(snap)
	if err != nil {
		return nil, fmt.Errorf("extract posts: %w", err)
	}
	m.setStrategy(report.Strategy)
	for _, e := range report.Skipped {
		lgr.Printf("[WARN] %v", e)
	}
	if len(current) == 0 {
		lgr.Printf("[WARN] no posts found on the page")
		m.dumpSnapshot(snap)
		return nil, nil
	}
	lgr.Printf("[INFO] found %d posts on the page", len(current))

	m.mu.Lock()
	posts = diff.ComputeNew(current, m.known, m.now())
	known := m.known.Clone()
	m.mu.Unlock()

	if len(posts) == 0 {
		return nil, nil
	}

	m.Notifier.Notify(posts)
	if err := m.Store.Save(ctx, known); err != nil {
		// known set stays in memory and will be saved with the next new post
		lgr.Printf("[ERROR] failed to save known posts: %v", err)
	}
	return posts, nil
}

// Known returns a copy of the known set
func (m *Monitor) Known() domain.KnownSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.known.Clone()
}

// Stats returns statistics of the known set
func (m *Monitor) Stats() stats.Stats {
	return stats.Collect(m.Known(), m.RecentCount)
}

// Status returns the monitor state
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := m.status
	res.Known = len(m.known)
	return res
}

func (m *Monitor) knownCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.known)
}

func (m *Monitor) setStrategy(strategy string) {
	m.mu.Lock()
	m.status.LastStrategy = strategy
	m.mu.Unlock()
}

func (m *Monitor) recordCycle(started time.Time, found int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.Cycles++
	m.status.LastCheck = started
	m.status.LastNew = found
	if err != nil {
		m.status.Failures++
		m.status.LastError = err.Error()
		return
	}
	m.status.LastError = ""
	m.status.LastSuccess = started
}

// dumpSnapshot saves the page for troubleshooting of selectors
func (m *Monitor) dumpSnapshot(snap domain.Snapshot) {
	if m.DebugSnapshotPath == "" {
		return
	}
	if err := os.WriteFile(m.DebugSnapshotPath, []byte(snap.HTML), 0o600); err != nil {
		lgr.Printf("[WARN] can't save page source to %s: %v", m.DebugSnapshotPath, err)
		return
	}
	lgr.Printf("[INFO] page source saved to %s for debugging", m.DebugSnapshotPath)
}
