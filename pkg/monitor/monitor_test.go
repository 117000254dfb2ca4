package monitor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postwatch/pkg/browser"
	bmocks "github.com/umputun/postwatch/pkg/browser/mocks"
	"github.com/umputun/postwatch/pkg/domain"
	"github.com/umputun/postwatch/pkg/extract"
	"github.com/umputun/postwatch/pkg/monitor/mocks"
	"github.com/umputun/postwatch/pkg/session"
	smocks "github.com/umputun/postwatch/pkg/store/mocks"
)

type testEnv struct {
	sess      *bmocks.SessionMock
	auth      *mocks.AuthenticatorMock
	loader    *mocks.FeedLoaderMock
	extractor *mocks.PostExtractorMock
	notifier  *mocks.NotifierMock
	store     *smocks.StoreMock
}

// newTestEnv makes collaborators for the happy path, the page always has the given posts
func newTestEnv(posts ...domain.Post) *testEnv {
	env := &testEnv{
		sess: &bmocks.SessionMock{CloseFunc: func() {}},
		auth: &mocks.AuthenticatorMock{LoginFunc: func(ctx context.Context, drv browser.Driver) error { return nil }},
		loader: &mocks.FeedLoaderMock{LoadFeedFunc: func(ctx context.Context, drv browser.Driver) (domain.Snapshot, error) {
			return domain.Snapshot{HTML: "<html><body>feed</body></html>", URL: "https://app.example.com/dashboard"}, nil
		}},
		extractor: &mocks.PostExtractorMock{ExtractFunc: func(snap domain.Snapshot) ([]domain.Post, extract.Report, error) {
			return posts, extract.Report{Strategy: extract.StrategyHeaders, Headers: len(posts)}, nil
		}},
		notifier: &mocks.NotifierMock{NotifyFunc: func(posts []domain.Post) {}},
		store: &smocks.StoreMock{
			LoadFunc:  func(ctx context.Context) (domain.KnownSet, error) { return domain.KnownSet{}, nil },
			SaveFunc:  func(ctx context.Context, known domain.KnownSet) error { return nil },
			CloseFunc: func() error { return nil },
		},
	}
	return env
}

func (env *testEnv) deps() Deps {
	return Deps{
		Launch:    func(ctx context.Context) (browser.Session, error) { return env.sess, nil },
		Auth:      env.auth,
		Loader:    env.loader,
		Extractor: env.extractor,
		Notifier:  env.notifier,
		Store:     env.store,
	}
}

func TestMonitor_RunOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(domain.Post{Title: "Exam Notice A", Author: "Jane"}, domain.Post{Title: "  Holiday \n Notice "})

	m, err := New(ctx, env.deps(), Config{})
	require.NoError(t, err)
	assert.Len(t, env.store.LoadCalls(), 1)

	posts, err := m.RunOnce(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Holiday Notice", posts[1].Title)

	require.Len(t, env.notifier.NotifyCalls(), 1)
	assert.Equal(t, posts, env.notifier.NotifyCalls()[0].Posts)
	require.Len(t, env.store.SaveCalls(), 1)
	saved := env.store.SaveCalls()[0].Known
	assert.Len(t, saved, 2)
	assert.Contains(t, saved, "Holiday Notice")
	assert.Len(t, env.sess.CloseCalls(), 1, "browser closed")

	// same page again, nothing new, nothing saved
	posts, err = m.RunOnce(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Len(t, env.notifier.NotifyCalls(), 1)
	assert.Len(t, env.store.SaveCalls(), 1)
	assert.Len(t, env.sess.CloseCalls(), 2)

	st := m.Status()
	assert.Equal(t, 2, st.Cycles)
	assert.Equal(t, 0, st.Failures)
	assert.Equal(t, 2, st.Known)
	assert.Equal(t, extract.StrategyHeaders, st.LastStrategy)
	assert.Empty(t, st.LastError)
}

func TestMonitor_RunOnceKnownFromStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(domain.Post{Title: "Exam Notice A"}, domain.Post{Title: "Exam Notice B"})
	firstSeen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	env.store.LoadFunc = func(ctx context.Context) (domain.KnownSet, error) {
		return domain.KnownSet{"Exam Notice A": {Title: "Exam Notice A", Author: "old", FirstSeen: firstSeen}}, nil
	}

	m, err := New(ctx, env.deps(), Config{})
	require.NoError(t, err)
	posts, err := m.RunOnce(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Exam Notice B", posts[0].Title)

	known := m.Known()
	assert.Equal(t, "old", known["Exam Notice A"].Author, "existing entry not touched")
	assert.Equal(t, firstSeen, known["Exam Notice A"].FirstSeen)
}

func TestMonitor_RunOnceLoginFailed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(domain.Post{Title: "Exam Notice A"})
	env.auth.LoginFunc = func(ctx context.Context, drv browser.Driver) error {
		return &session.AuthError{Stage: "find username field", Err: errors.New("not found")}
	}

	m, err := New(ctx, env.deps(), Config{})
	require.NoError(t, err)
	posts, err := m.RunOnce(ctx)
	require.Error(t, err)
	var authErr *session.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Empty(t, posts)
	assert.Empty(t, env.loader.LoadFeedCalls())
	assert.Len(t, env.sess.CloseCalls(), 1, "browser closed on failure")

	st := m.Status()
	assert.Equal(t, 1, st.Failures)
	assert.Contains(t, st.LastError, "find username field")
}

func TestMonitor_RunOnceLaunchFailed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	deps := env.deps()
	deps.Launch = func(ctx context.Context) (browser.Session, error) { return nil, errors.New("no chrome") }

	m, err := New(ctx, deps, Config{})
	require.NoError(t, err)
	_, err = m.RunOnce(ctx)
	assert.EqualError(t, err, "launch browser: no chrome")
	assert.Empty(t, env.auth.LoginCalls())
}

func TestMonitor_RunOnceLoadFailed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.loader.LoadFeedFunc = func(ctx context.Context, drv browser.Driver) (domain.Snapshot, error) {
		return domain.Snapshot{}, errors.New("timeout")
	}
	m, err := New(ctx, env.deps(), Config{})
	require.NoError(t, err)
	_, err = m.RunOnce(ctx)
	assert.EqualError(t, err, "load feed: timeout")
	assert.Len(t, env.sess.CloseCalls(), 1)
}

func TestMonitor_RunOnceCycleTimeout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	// browser step which never completes on its own
	env.auth.LoginFunc = func(ctx context.Context, drv browser.Driver) error {
		<-ctx.Done()
		return ctx.Err()
	}
	m, err := New(ctx, env.deps(), Config{CycleTimeout: 20 * time.Millisecond})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := m.RunOnce(ctx)
		done <- err
	}()

	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cycle not limited by timeout")
	}
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, env.sess.CloseCalls(), 1)
	assert.Empty(t, env.loader.LoadFeedCalls())
	assert.Equal(t, 1, m.Status().Failures)
}

func TestMonitor_RunOnceNoPostsDumpsPage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	dump := filepath.Join(t.TempDir(), "page_source_debug.html")

	m, err := New(ctx, env.deps(), Config{DebugSnapshotPath: dump})
	require.NoError(t, err)
	posts, err := m.RunOnce(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, env.notifier.NotifyCalls())
	assert.Empty(t, env.store.SaveCalls())

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>feed</body></html>", string(data))
}

func TestMonitor_RunOnceSaveFailed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(domain.Post{Title: "Exam Notice A"})
	env.store.SaveFunc = func(ctx context.Context, known domain.KnownSet) error { return errors.New("disk full") }

	m, err := New(ctx, env.deps(), Config{})
	require.NoError(t, err)
	posts, err := m.RunOnce(ctx)
	require.NoError(t, err, "save failure does not fail the cycle")
	assert.Len(t, posts, 1)
	assert.Len(t, env.notifier.NotifyCalls(), 1)
	assert.True(t, m.Known().Contains("Exam Notice A"), "kept in memory")
}

func TestMonitor_NewLoadFailed(t *testing.T) {
	env := newTestEnv()
	env.store.LoadFunc = func(ctx context.Context) (domain.KnownSet, error) { return nil, errors.New("bad db") }
	_, err := New(context.Background(), env.deps(), Config{})
	assert.EqualError(t, err, "load known posts: bad db")
}

func TestMonitor_Run(t *testing.T) {
	t.Run("loops until canceled", func(t *testing.T) {
		env := newTestEnv(domain.Post{Title: "Exam Notice A"})
		m, err := New(context.Background(), env.deps(), Config{CheckInterval: 10 * time.Millisecond})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- m.Run(ctx) }()

		require.Eventually(t, func() bool { return len(env.loader.LoadFeedCalls()) >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("run not stopped")
		}
		assert.Len(t, env.notifier.NotifyCalls(), 1, "post reported once")
		assert.Len(t, env.store.SaveCalls(), 1)
	})

	t.Run("failed cycle waits retry delay", func(t *testing.T) {
		env := newTestEnv()
		env.loader.LoadFeedFunc = func(ctx context.Context, drv browser.Driver) (domain.Snapshot, error) {
			return domain.Snapshot{}, errors.New("boom")
		}
		m, err := New(context.Background(), env.deps(), Config{CheckInterval: time.Millisecond, RetryDelay: time.Hour})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- m.Run(ctx) }()

		require.Eventually(t, func() bool { return m.Status().Failures == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Len(t, env.loader.LoadFeedCalls(), 1, "no second attempt before retry delay")
		cancel()
		assert.NoError(t, <-done)
	})

	t.Run("failed login waits check interval", func(t *testing.T) {
		env := newTestEnv()
		env.auth.LoginFunc = func(ctx context.Context, drv browser.Driver) error {
			return &session.AuthError{Stage: "submit form", Err: errors.New("no button")}
		}
		m, err := New(context.Background(), env.deps(), Config{CheckInterval: time.Millisecond, RetryDelay: time.Hour})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- m.Run(ctx) }()

		require.Eventually(t, func() bool { return len(env.auth.LoginCalls()) >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		assert.NoError(t, <-done)
	})
}

func TestMonitor_Stats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(
		domain.Post{Title: "A", PostedTime: "1 day ago", Details: "text"},
		domain.Post{Title: "B", PostedTime: "5 minutes ago", Links: []domain.Link{{URL: "u"}}},
	)
	m, err := New(ctx, env.deps(), Config{RecentCount: 1})
	require.NoError(t, err)
	_, err = m.RunOnce(ctx)
	require.NoError(t, err)

	st := m.Stats()
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.WithDetails)
	assert.Equal(t, 1, st.TotalLinks)
	require.Len(t, st.Recent, 1)
	assert.Equal(t, "B", st.Recent[0].Title)
}

func TestMonitor_KnownIsCopy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(domain.Post{Title: "A"})
	m, err := New(ctx, env.deps(), Config{})
	require.NoError(t, err)
	_, err = m.RunOnce(ctx)
	require.NoError(t, err)

	known := m.Known()
	delete(known, "A")
	assert.True(t, m.Known().Contains("A"))
}
