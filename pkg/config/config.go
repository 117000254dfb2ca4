package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Auth struct {
		Username     string `yaml:"username" json:"username" jsonschema:"description=Login user name or email (env SUPERSET_USERNAME)"`
		Password     string `yaml:"password" json:"password" jsonschema:"description=Login password (env SUPERSET_PASSWORD)"`
		LoginURL     string `yaml:"login_url" json:"login_url" jsonschema:"description=Login page URL (env LOGIN_URL)"`
		DashboardURL string `yaml:"dashboard_url" json:"dashboard_url" jsonschema:"description=Dashboard page with the feed (env DASHBOARD_URL)"`
	} `yaml:"auth" json:"auth" jsonschema:"description=Dashboard credentials and addresses"`

	Monitor struct {
		CheckInterval time.Duration `yaml:"check_interval" json:"check_interval" jsonschema:"default=5m,description=Interval between checks"`
		RetryDelay    time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1m,description=Delay after a failed check"`
		CycleTimeout  time.Duration `yaml:"cycle_timeout" json:"cycle_timeout" jsonschema:"default=5m,description=Deadline of a single check"`
		RecentPosts   int           `yaml:"recent_posts" json:"recent_posts" jsonschema:"default=3,minimum=1,description=Number of recent posts in statistics"`
	} `yaml:"monitor" json:"monitor" jsonschema:"description=Check loop configuration"`

	Browser BrowserConfig `yaml:"browser" json:"browser" jsonschema:"description=Browser configuration"`

	Scroll ScrollConfig `yaml:"scroll" json:"scroll" jsonschema:"description=Feed scrolling configuration"`

	Extract ExtractConfig `yaml:"extract" json:"extract" jsonschema:"description=Post extraction configuration"`

	Files struct {
		NewPostsLog   string `yaml:"new_posts_log" json:"new_posts_log" jsonschema:"default=new_posts.log,description=Append-only log of new posts"`
		DebugSnapshot string `yaml:"debug_snapshot" json:"debug_snapshot" jsonschema:"default=page_source_debug.html,description=Page dump written when no posts found"`
	} `yaml:"files" json:"files" jsonschema:"description=Output files"`

	Storage struct {
		Type string `yaml:"type" json:"type" jsonschema:"default=json,enum=json,enum=sqlite,description=Known posts storage backend"`
		Path string `yaml:"path" json:"path" jsonschema:"description=Storage file, known_posts.json or known_posts.db by default"`
	} `yaml:"storage" json:"storage" jsonschema:"description=Known posts storage"`

	Notify struct {
		Desktop *bool  `yaml:"desktop" json:"desktop" jsonschema:"default=true,description=Show desktop notifications"`
		AppIcon string `yaml:"app_icon" json:"app_icon" jsonschema:"description=Icon for desktop notifications"`
	} `yaml:"notify" json:"notify" jsonschema:"description=Notification configuration"`

	Server struct {
		Listen    string        `yaml:"listen" json:"listen" jsonschema:"description=Status server listen address, disabled if empty"`
		BaseURL   string        `yaml:"base_url" json:"base_url" jsonschema:"description=Base URL for RSS links, derived from listen if empty"`
		FeedTitle string        `yaml:"feed_title" json:"feed_title" jsonschema:"default=Postwatch,description=RSS feed title"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// BrowserConfig holds browser settings and page timeouts
type BrowserConfig struct {
	Headless     *bool         `yaml:"headless" json:"headless" jsonschema:"default=true,description=Run browser without a window"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=Override browser user agent"`
	FieldTimeout time.Duration `yaml:"field_timeout" json:"field_timeout" jsonschema:"default=5s,description=Wait for each login field candidate"`
	LoginTimeout time.Duration `yaml:"login_timeout" json:"login_timeout" jsonschema:"default=15s,description=Wait for redirect after login"`
	ReadyTimeout time.Duration `yaml:"ready_timeout" json:"ready_timeout" jsonschema:"default=15s,description=Wait for the page body"`
	SettleDelay  time.Duration `yaml:"settle_delay" json:"settle_delay" jsonschema:"default=5s,description=Wait for client-side rendering"`
}

// ScrollConfig holds lazy loading scroll settings
type ScrollConfig struct {
	Containers           []string      `yaml:"containers" json:"containers" jsonschema:"description=CSS selectors of the scrollable posts container, most specific first"`
	ContainerDelay       time.Duration `yaml:"container_delay" json:"container_delay" jsonschema:"default=2s,description=Wait after each container scroll"`
	ContainerMaxAttempts int           `yaml:"container_max_attempts" json:"container_max_attempts" jsonschema:"default=15,minimum=1,description=Maximum container scrolls"`
	PageDelay            time.Duration `yaml:"page_delay" json:"page_delay" jsonschema:"default=3s,description=Wait after each page scroll"`
	PageMaxAttempts      int           `yaml:"page_max_attempts" json:"page_max_attempts" jsonschema:"default=10,minimum=1,description=Maximum page scrolls"`
}

// ExtractConfig holds post extraction settings. Empty selectors keep built-in ones.
type ExtractConfig struct {
	MinTextLength  int      `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=10,minimum=0,description=Minimum text length of a generic container"`
	TitleMaxLength int      `yaml:"title_max_length" json:"title_max_length" jsonschema:"default=100,minimum=1,description=Maximum length of a synthesized title"`
	Header         string   `yaml:"header" json:"header" jsonschema:"description=Feed item header selector"`
	Title          string   `yaml:"title" json:"title" jsonschema:"description=Title selector inside the header"`
	Meta           string   `yaml:"meta" json:"meta" jsonschema:"description=Metadata row selector inside the header"`
	MetaSpans      string   `yaml:"meta_spans" json:"meta_spans" jsonschema:"description=Author and time spans selector inside the metadata row"`
	Details        []string `yaml:"details" json:"details" jsonschema:"description=Details selectors, first match wins"`
	Fallback       []string `yaml:"fallback" json:"fallback" jsonschema:"description=Generic container selectors, first productive wins"`
}

// Load reads configuration from a YAML file. Empty path gives the default configuration.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against the schema constraints
	if err := Verify(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// monitor
	if c.Monitor.CheckInterval == 0 {
		c.Monitor.CheckInterval = 300 * time.Second
	}
	if c.Monitor.RetryDelay == 0 {
		c.Monitor.RetryDelay = 60 * time.Second
	}
	if c.Monitor.CycleTimeout == 0 {
		c.Monitor.CycleTimeout = 5 * time.Minute
	}
	if c.Monitor.RecentPosts == 0 {
		c.Monitor.RecentPosts = 3
	}

	// browser
	if c.Browser.Headless == nil {
		c.Browser.Headless = boolPtr(true)
	}
	if c.Browser.FieldTimeout == 0 {
		c.Browser.FieldTimeout = 5 * time.Second
	}
	if c.Browser.LoginTimeout == 0 {
		c.Browser.LoginTimeout = 15 * time.Second
	}
	if c.Browser.ReadyTimeout == 0 {
		c.Browser.ReadyTimeout = 15 * time.Second
	}
	if c.Browser.SettleDelay == 0 {
		c.Browser.SettleDelay = 5 * time.Second
	}

	// scroll
	if c.Scroll.ContainerDelay == 0 {
		c.Scroll.ContainerDelay = 2 * time.Second
	}
	if c.Scroll.ContainerMaxAttempts == 0 {
		c.Scroll.ContainerMaxAttempts = 15
	}
	if c.Scroll.PageDelay == 0 {
		c.Scroll.PageDelay = 3 * time.Second
	}
	if c.Scroll.PageMaxAttempts == 0 {
		c.Scroll.PageMaxAttempts = 10
	}

	// extract
	if c.Extract.MinTextLength == 0 {
		c.Extract.MinTextLength = 10
	}
	if c.Extract.TitleMaxLength == 0 {
		c.Extract.TitleMaxLength = 100
	}

	// files and storage
	if c.Files.NewPostsLog == "" {
		c.Files.NewPostsLog = "new_posts.log"
	}
	if c.Files.DebugSnapshot == "" {
		c.Files.DebugSnapshot = "page_source_debug.html"
	}
	c.Storage.Type = strings.ToLower(c.Storage.Type)
	if c.Storage.Type == "" {
		c.Storage.Type = "json"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "known_posts.json"
		if c.Storage.Type == "sqlite" {
			c.Storage.Path = "known_posts.db"
		}
	}

	// notify and server
	if c.Notify.Desktop == nil {
		c.Notify.Desktop = boolPtr(true)
	}
	if c.Server.FeedTitle == "" {
		c.Server.FeedTitle = "Postwatch"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Monitor.CheckInterval < time.Second {
		return fmt.Errorf("monitor.check_interval must be at least 1 second")
	}
	if cfg.Monitor.RetryDelay < time.Second {
		return fmt.Errorf("monitor.retry_delay must be at least 1 second")
	}
	if cfg.Monitor.CycleTimeout < time.Second {
		return fmt.Errorf("monitor.cycle_timeout must be at least 1 second")
	}
	if cfg.Browser.FieldTimeout < 0 || cfg.Browser.LoginTimeout < 0 || cfg.Browser.ReadyTimeout < 0 || cfg.Browser.SettleDelay < 0 {
		return fmt.Errorf("browser timeouts must be non-negative")
	}
	if cfg.Scroll.ContainerDelay < 0 || cfg.Scroll.PageDelay < 0 {
		return fmt.Errorf("scroll delays must be non-negative")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	return nil
}

// Warnings returns non-fatal problems, like missing credentials
func (c *Config) Warnings() []string {
	var res []string
	if c.Auth.Username == "" || c.Auth.Password == "" {
		res = append(res, "credentials not set, define SUPERSET_USERNAME and SUPERSET_PASSWORD")
	}
	if c.Auth.LoginURL == "" {
		res = append(res, "login url not set, define LOGIN_URL")
	}
	if c.Auth.DashboardURL == "" {
		res = append(res, "dashboard url not set, define DASHBOARD_URL")
	}
	return res
}

// Headless returns true if the browser should run without a window
func (c *Config) Headless() bool {
	return c.Browser.Headless == nil || *c.Browser.Headless
}

// DesktopAlerts returns true if desktop notifications are enabled
func (c *Config) DesktopAlerts() bool {
	return c.Notify.Desktop == nil || *c.Notify.Desktop
}

func boolPtr(b bool) *bool { return &b }
