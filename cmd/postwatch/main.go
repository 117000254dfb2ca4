package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/postwatch/pkg/browser"
	"github.com/umputun/postwatch/pkg/config"
	"github.com/umputun/postwatch/pkg/extract"
	"github.com/umputun/postwatch/pkg/loader"
	"github.com/umputun/postwatch/pkg/locator"
	"github.com/umputun/postwatch/pkg/monitor"
	"github.com/umputun/postwatch/pkg/notify"
	"github.com/umputun/postwatch/pkg/session"
	"github.com/umputun/postwatch/pkg/stats"
	"github.com/umputun/postwatch/pkg/store"
	"github.com/umputun/postwatch/server"
)

// Opts with all CLI options
type Opts struct {
	Username      string `long:"username" env:"SUPERSET_USERNAME" description:"login user name or email"`
	Password      string `long:"password" env:"SUPERSET_PASSWORD" description:"login password"`
	LoginURL      string `long:"login-url" env:"LOGIN_URL" description:"login page url"`
	DashboardURL  string `long:"dashboard-url" env:"DASHBOARD_URL" description:"dashboard page url"`
	CheckInterval int    `long:"check-interval" env:"CHECK_INTERVAL" description:"interval between checks in seconds (default 300)"`

	Config  string `short:"c" long:"config" env:"CONFIG" description:"path to YAML config file"`
	EnvFile string `long:"env-file" default:".env" description:"file with environment variables, ignored if missing"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"status server listen address, disabled if empty"`

	Once  bool `long:"once" description:"run a single check and exit"`
	Stats bool `long:"stats" description:"show statistics of known posts and exit"`

	// Common options
	Debug   bool `long:"debug" env:"DEBUG" description:"debug mode, shows the browser window"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// statsOut receives statistics reports
var statsOut io.Writer = os.Stdout

// logOut receives log output
var logOut io.Writer = os.Stdout

func main() {
	opts, err := parseOpts(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, opts.Password)

	log.Printf("[INFO] starting postwatch version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// parseOpts parses command line and environment. Variables from the env file don't override
// the existing environment, they are applied by parsing again after the file is loaded.
func parseOpts(args []string) (Opts, error) {
	var opts Opts
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		return opts, err
	}
	if opts.EnvFile == "" {
		return opts, nil
	}
	if err := godotenv.Load(opts.EnvFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] can't load env file %s: %v", opts.EnvFile, err)
		}
		return opts, nil
	}

	opts = Opts{}
	_, err := flags.NewParser(&opts, flags.Default).ParseArgs(args)
	return opts, err
}

// run loads configuration and runs a single check, statistics or the monitoring loop
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOpts(cfg, opts)
	// password may come from the config file, not only from flags or env
	setupLog(opts.Debug, cfg.Auth.Password)
	for _, w := range cfg.Warnings() {
		log.Printf("[WARN] %s", w)
	}

	st, err := store.New(ctx, store.Type(cfg.Storage.Type), cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close storage: %v", err)
		}
	}()

	if opts.Stats {
		known, err := st.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load known posts: %w", err)
		}
		stats.Render(statsOut, stats.Collect(known, cfg.Monitor.RecentPosts))
		return nil
	}

	mon, err := makeMonitor(ctx, cfg, st)
	if err != nil {
		return fmt.Errorf("failed to make monitor: %w", err)
	}

	if opts.Once {
		posts, err := mon.RunOnce(ctx)
		switch {
		case err != nil:
			log.Printf("[ERROR] check failed: %v", err)
		case len(posts) > 0:
			log.Printf("[INFO] %d new posts found", len(posts))
		default:
			log.Printf("[INFO] no new posts found")
		}
		stats.Render(statsOut, mon.Stats())
		return nil
	}

	stats.Render(statsOut, mon.Stats())
	log.Printf("[INFO] checking every %v, press Ctrl+C to stop", cfg.Monitor.CheckInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mon.Run(gctx) })
	if cfg.Server.Listen != "" {
		srv := server.New(server.Config{
			Listen:    cfg.Server.Listen,
			BaseURL:   cfg.Server.BaseURL,
			FeedTitle: cfg.Server.FeedTitle,
			Timeout:   cfg.Server.Timeout,
		}, mon, revision, opts.Debug)
		g.Go(func() error { return srv.Run(gctx) })
	}
	return g.Wait()
}

// applyOpts overrides config values with command line and environment
func applyOpts(cfg *config.Config, opts Opts) {
	if opts.Username != "" {
		cfg.Auth.Username = opts.Username
	}
	if opts.Password != "" {
		cfg.Auth.Password = opts.Password
	}
	if opts.LoginURL != "" {
		cfg.Auth.LoginURL = opts.LoginURL
	}
	if opts.DashboardURL != "" {
		cfg.Auth.DashboardURL = opts.DashboardURL
	}
	if opts.CheckInterval > 0 {
		cfg.Monitor.CheckInterval = time.Duration(opts.CheckInterval) * time.Second
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Debug {
		headless := false
		cfg.Browser.Headless = &headless
	}
}

// makeMonitor wires the check cycle components
func makeMonitor(ctx context.Context, cfg *config.Config, st store.Store) (*monitor.Monitor, error) {
	browserOpts := browser.Options{Headless: cfg.Headless(), UserAgent: cfg.Browser.UserAgent}
	launch := func(ctx context.Context) (browser.Session, error) {
		chrome, err := browser.Launch(ctx, browserOpts)
		if err != nil {
			return nil, err
		}
		return chrome, nil
	}

	auth := session.NewManager(session.Params{
		LoginURL:     cfg.Auth.LoginURL,
		DashboardURL: cfg.Auth.DashboardURL,
		FieldTimeout: cfg.Browser.FieldTimeout,
		LoginTimeout: cfg.Browser.LoginTimeout,
		SettleDelay:  cfg.Browser.SettleDelay,
	}, session.Credentials{Username: cfg.Auth.Username, Password: cfg.Auth.Password})

	feedLoader := loader.New(loader.Params{
		DashboardURL:         cfg.Auth.DashboardURL,
		ReadyTimeout:         cfg.Browser.ReadyTimeout,
		SettleDelay:          cfg.Browser.SettleDelay,
		Containers:           cfg.Scroll.Containers,
		ContainerDelay:       cfg.Scroll.ContainerDelay,
		ContainerMaxAttempts: cfg.Scroll.ContainerMaxAttempts,
		PageDelay:            cfg.Scroll.PageDelay,
		PageMaxAttempts:      cfg.Scroll.PageMaxAttempts,
	})

	extractor := extract.New(extract.Params{
		Selectors:      selectors(cfg.Extract),
		MinTextLength:  cfg.Extract.MinTextLength,
		TitleMaxLength: cfg.Extract.TitleMaxLength,
	})

	var alerter notify.Alerter
	if cfg.DesktopAlerts() {
		alerter = notify.Desktop{AppIcon: cfg.Notify.AppIcon}
	}

	return monitor.New(ctx, monitor.Deps{
		Launch:    launch,
		Auth:      auth,
		Loader:    feedLoader,
		Extractor: extractor,
		Notifier:  notify.New(alerter, cfg.Files.NewPostsLog),
		Store:     st,
	}, monitor.Config{
		CheckInterval:     cfg.Monitor.CheckInterval,
		RetryDelay:        cfg.Monitor.RetryDelay,
		CycleTimeout:      cfg.Monitor.CycleTimeout,
		DebugSnapshotPath: cfg.Files.DebugSnapshot,
		RecentCount:       cfg.Monitor.RecentPosts,
	})
}

// selectors returns built-in selectors with configured overrides
func selectors(c config.ExtractConfig) extract.Selectors {
	res := extract.DefaultSelectors
	if c.Header != "" {
		res.Header = c.Header
	}
	if c.Title != "" {
		res.Title = c.Title
	}
	if c.Meta != "" {
		res.Meta = c.Meta
	}
	if c.MetaSpans != "" {
		res.MetaSpans = c.MetaSpans
	}
	if len(c.Details) > 0 {
		res.Details = locator.CSSChain(c.Details...)
	}
	if len(c.Fallback) > 0 {
		res.Fallback = c.Fallback
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.Out(logOut)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError, lgr.Out(logOut)}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
