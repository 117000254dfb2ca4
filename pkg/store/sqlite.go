package store

import (
	"context"
	"database/sql/driver"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/postwatch/pkg/domain"
)

//go:embed schema.sql
var schema string

// SQLiteConfig represents database configuration
type SQLiteConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLite keeps known posts in a sqlite table. Rows are only inserted, never updated.
type SQLite struct {
	db  *sqlx.DB
	dsn string
}

// knownPostSQL is a row of known_posts table
type knownPostSQL struct {
	Title       string    `db:"title"`
	Author      string    `db:"author"`
	PostedTime  string    `db:"posted_time"`
	Details     string    `db:"details"`
	DetailsHTML string    `db:"details_html"`
	Links       linksSQL  `db:"links"`
	MainLink    string    `db:"main_link"`
	FirstSeen   time.Time `db:"first_seen"`
}

// linksSQL is a JSON array of links for SQL operations
type linksSQL []domain.Link

// Value implements driver.Valuer for database storage
func (l linksSQL) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal links: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (l *linksSQL) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*l = linksSQL{}
		return nil
	}
	res := linksSQL{}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal links: %w", err)
	}
	*l = res
	return nil
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

var errCritical = errors.New("critical error")

func (e *criticalError) Error() string { return e.err.Error() }

func (e *criticalError) Unwrap() error { return e.err }

// Is makes any criticalError match errCritical, repeater stops on it
func (e *criticalError) Is(target error) bool { return target == errCritical }

// NewSQLite opens the database and creates the schema
func NewSQLite(ctx context.Context, cfg SQLiteConfig) (*SQLite, error) {
	dsn := cfg.DSN
	switch {
	case dsn == "":
		dsn = "file:known_posts.db?cache=shared&mode=rwc&_txlock=immediate"
	case dsn != ":memory:" && !strings.HasPrefix(dsn, "file:"):
		dsn = "file:" + dsn + "?mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: dsn, Err: err}
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1) // each connection of in-memory db is a separate database
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db, dsn: dsn}, nil
}

// Load reads all known posts
func (s *SQLite) Load(ctx context.Context) (domain.KnownSet, error) {
	var rows []knownPostSQL
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM known_posts"); err != nil {
		return nil, &PersistenceError{Op: "select", Path: s.dsn, Err: err}
	}
	known := make(domain.KnownSet, len(rows))
	for _, r := range rows {
		addKnown(known, r.Title, r.toDomain())
	}
	lgr.Printf("[INFO] loaded %d known posts from sqlite", len(known))
	return known, nil
}

// Save inserts posts not yet stored. Existing rows are left as is.
func (s *SQLite) Save(ctx context.Context, known domain.KnownSet) error {
	query := `
		INSERT OR IGNORE INTO known_posts (
			title, author, posted_time, details, details_html, links, main_link, first_seen
		) VALUES (
			:title, :author, :posted_time, :details, :details_html, :links, :main_link, :first_seen
		)
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := s.inTransaction(ctx, func(tx *sqlx.Tx) error {
			stmt, err := tx.PrepareNamedContext(ctx, query)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			for title, kp := range known {
				row := fromDomain(title, kp)
				if _, err := stmt.ExecContext(ctx, row); err != nil {
					return fmt.Errorf("insert %q: %w", title, err)
				}
			}
			return nil
		})
		if err != nil && !isLockError(err) {
			return &criticalError{err: err}
		}
		return err // nil or retry
	}, errCritical)
	if err != nil {
		var ce *criticalError
		if errors.As(err, &ce) {
			err = ce.err
		}
		return &PersistenceError{Op: "save", Path: s.dsn, Err: err}
	}
	return nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// inTransaction executes a function within a database transaction
func (s *SQLite) inTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback also failed: %s)", err, rbErr.Error())
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// fromDomain makes a row keyed by the set key, the normalized title
func fromDomain(title string, kp domain.KnownPost) knownPostSQL {
	return knownPostSQL{
		Title:       title,
		Author:      kp.Author,
		PostedTime:  kp.PostedTime,
		Details:     kp.Details,
		DetailsHTML: kp.DetailsHTML,
		Links:       linksSQL(kp.Links),
		MainLink:    kp.MainLink,
		FirstSeen:   kp.FirstSeen.UTC(),
	}
}

func (r knownPostSQL) toDomain() domain.KnownPost {
	links := []domain.Link(r.Links)
	if links == nil {
		links = []domain.Link{}
	}
	return domain.KnownPost{
		Title:       r.Title,
		Author:      r.Author,
		PostedTime:  r.PostedTime,
		Details:     r.Details,
		DetailsHTML: r.DetailsHTML,
		Links:       links,
		MainLink:    r.MainLink,
		FirstSeen:   r.FirstSeen,
	}
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
