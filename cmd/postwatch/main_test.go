package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postwatch/pkg/config"
	"github.com/umputun/postwatch/pkg/extract"
	"github.com/umputun/postwatch/pkg/store"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "invalid: yaml: content: ["},
		{name: "unknown storage", content: "storage:\n  type: mongo\n"},
		{name: "short interval", content: "monitor:\n  check_interval: 10ms\n"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "config"+string(rune('a'+i))+".yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			err := run(ctx, Opts{Config: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to load config")
		})
	}
}

func TestRun_Stats(t *testing.T) {
	color.NoColor = true
	tmpDir := t.TempDir()

	knownPath := filepath.Join(tmpDir, "known.json")
	known := `{
  "Exam Schedule": {
    "title": "Exam Schedule",
    "author": "Registrar",
    "posted_time": "2 hours ago",
    "details": "Finals start on Monday",
    "links": [{"url": "https://example.com/exams", "text": "schedule"}],
    "main_link": "https://example.com/exams",
    "first_seen": "2026-01-10T10:00:00Z"
  },
  "Library Hours": {
    "title": "Library Hours",
    "author": "",
    "posted_time": "3 days ago",
    "details": "",
    "links": [],
    "main_link": "",
    "first_seen": "2026-01-09T10:00:00Z"
  }
}`
	require.NoError(t, os.WriteFile(knownPath, []byte(known), 0o600))

	cfgPath := filepath.Join(tmpDir, "config.yml")
	cfgData := "storage:\n  type: json\n  path: " + knownPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0o600))

	var buf bytes.Buffer
	oldOut := statsOut
	statsOut = &buf
	defer func() { statsOut = oldOut }()

	err := run(context.Background(), Opts{Config: cfgPath, Stats: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Post Statistics:")
	assert.Contains(t, out, "Total known posts: 2")
	assert.Contains(t, out, "Posts with links: 1")
	assert.Contains(t, out, "1. Exam Schedule")
	assert.Contains(t, out, "2. Library Hours")
	assert.Contains(t, out, "By: Registrar • 2 hours ago")
}

func TestRun_StatsSQLite(t *testing.T) {
	color.NoColor = true
	tmpDir := t.TempDir()

	cfgPath := filepath.Join(tmpDir, "config.yml")
	cfgData := "storage:\n  type: sqlite\n  path: " + filepath.Join(tmpDir, "known.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0o600))

	var buf bytes.Buffer
	oldOut := statsOut
	statsOut = &buf
	defer func() { statsOut = oldOut }()

	err := run(context.Background(), Opts{Config: cfgPath, Stats: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Total known posts: 0")
	assert.FileExists(t, filepath.Join(tmpDir, "known.db"))
}

func TestParseOpts(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := parseOpts([]string{"--env-file="})
		require.NoError(t, err)
		assert.False(t, opts.Once)
		assert.False(t, opts.Stats)
		assert.Empty(t, opts.EnvFile)
	})

	t.Run("flags", func(t *testing.T) {
		opts, err := parseOpts([]string{"--once", "--debug", "-c", "cfg.yml", "--listen", ":8080", "--env-file="})
		require.NoError(t, err)
		assert.True(t, opts.Once)
		assert.True(t, opts.Debug)
		assert.Equal(t, "cfg.yml", opts.Config)
		assert.Equal(t, ":8080", opts.Listen)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("SUPERSET_USERNAME", "student@example.com")
		t.Setenv("CHECK_INTERVAL", "120")
		opts, err := parseOpts([]string{"--env-file="})
		require.NoError(t, err)
		assert.Equal(t, "student@example.com", opts.Username)
		assert.Equal(t, 120, opts.CheckInterval)
	})

	t.Run("invalid check interval", func(t *testing.T) {
		t.Setenv("CHECK_INTERVAL", "often")
		_, err := parseOpts([]string{"--env-file="})
		require.Error(t, err)
	})

	t.Run("env file", func(t *testing.T) {
		require.NoError(t, os.Unsetenv("LOGIN_URL"))
		t.Cleanup(func() { _ = os.Unsetenv("LOGIN_URL") })

		envFile := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(envFile, []byte("LOGIN_URL=https://example.com/login\n"), 0o600))

		opts, err := parseOpts([]string{"--env-file", envFile})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/login", opts.LoginURL)
	})

	t.Run("missing env file ignored", func(t *testing.T) {
		opts, err := parseOpts([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
		require.NoError(t, err)
		assert.Empty(t, opts.LoginURL)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseOpts([]string{"--blah", "--env-file="})
		require.Error(t, err)
	})
}

func TestApplyOpts(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	applyOpts(cfg, Opts{
		Username:      "user",
		Password:      "pass",
		LoginURL:      "https://example.com/login",
		DashboardURL:  "https://example.com/dashboard",
		CheckInterval: 120,
		Listen:        ":8080",
		Debug:         true,
	})

	assert.Equal(t, "user", cfg.Auth.Username)
	assert.Equal(t, "pass", cfg.Auth.Password)
	assert.Equal(t, "https://example.com/login", cfg.Auth.LoginURL)
	assert.Equal(t, "https://example.com/dashboard", cfg.Auth.DashboardURL)
	assert.Equal(t, 2*time.Minute, cfg.Monitor.CheckInterval)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.False(t, cfg.Headless())
	assert.Empty(t, cfg.Warnings())

	// empty options keep config values
	applyOpts(cfg, Opts{})
	assert.Equal(t, "user", cfg.Auth.Username)
	assert.Equal(t, 2*time.Minute, cfg.Monitor.CheckInterval)
}

func TestSelectors(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sel := selectors(config.ExtractConfig{})
		assert.Equal(t, extract.DefaultSelectors.Header, sel.Header)
		assert.Equal(t, extract.DefaultSelectors.Fallback, sel.Fallback)
	})

	t.Run("overrides", func(t *testing.T) {
		sel := selectors(config.ExtractConfig{
			Header:   "div.item-header",
			Title:    "h3",
			Fallback: []string{"article"},
			Details:  []string{"div.body"},
		})
		assert.Equal(t, "div.item-header", sel.Header)
		assert.Equal(t, "h3", sel.Title)
		assert.Equal(t, extract.DefaultSelectors.Meta, sel.Meta)
		assert.Equal(t, []string{"article"}, sel.Fallback)
		assert.Len(t, sel.Details, 1)
	})
}

func TestMakeMonitor(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	desktop := false
	cfg.Notify.Desktop = &desktop

	ctx := context.Background()
	st, err := store.New(ctx, store.TypeJSON, filepath.Join(t.TempDir(), "known.json"))
	require.NoError(t, err)
	defer st.Close()

	mon, err := makeMonitor(ctx, cfg, st)
	require.NoError(t, err)
	assert.Empty(t, mon.Known())
	assert.Equal(t, 0, mon.Stats().Total)
}

func TestRun_ConfigPasswordIsSecret(t *testing.T) {
	color.NoColor = true
	tmpDir := t.TempDir()

	cfgPath := filepath.Join(tmpDir, "config.yml")
	cfgData := "auth:\n  username: user\n  password: yaml-secret-123\n" +
		"storage:\n  type: json\n  path: " + filepath.Join(tmpDir, "known.json") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0o600))

	var logBuf, statsBuf bytes.Buffer
	oldLog, oldStats := logOut, statsOut
	logOut, statsOut = &logBuf, &statsBuf
	defer func() {
		logOut, statsOut = oldLog, oldStats
		setupLog(false)
	}()
	setupLog(false) // no secrets known before the config is loaded

	require.NoError(t, run(context.Background(), Opts{Config: cfgPath, Stats: true}))

	lgr.Printf("[INFO] login with yaml-secret-123")
	assert.Contains(t, logBuf.String(), "login with ******")
	assert.NotContains(t, logBuf.String(), "yaml-secret-123")
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "", "secret2")
	})
}
