// Package store persists the set of known posts between runs
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/postwatch/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store loads and saves known posts
type Store interface {
	Load(ctx context.Context) (domain.KnownSet, error)
	Save(ctx context.Context, known domain.KnownSet) error
	Close() error
}

// Type of the storage backend
type Type string

// enum of storage backends
const (
	TypeJSON   Type = "json"
	TypeSQLite Type = "sqlite"
)

// PersistenceError is returned when the known posts can't be read or written
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error { return e.Err }

// New makes a store of the given type. Path is a file name for json and a file name or DSN for sqlite.
func New(ctx context.Context, typ Type, path string) (Store, error) {
	switch Type(strings.ToLower(string(typ))) {
	case TypeJSON, "":
		return NewJSONFile(path), nil
	case TypeSQLite:
		return NewSQLite(ctx, SQLiteConfig{DSN: path})
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// addKnown puts the post under its normalized title. If the title is already there,
// the entry seen first is kept.
func addKnown(known domain.KnownSet, key string, kp domain.KnownPost) {
	title := domain.NormalizeTitle(key)
	if title == "" {
		title = domain.NormalizeTitle(kp.Title)
	}
	if title == "" {
		return
	}
	kp.Title = title
	if prev, ok := known[title]; ok && !seenEarlier(kp.FirstSeen, prev.FirstSeen) {
		return
	}
	known[title] = kp
}

// seenEarlier reports if a is before b, zero time is unknown and never earlier
func seenEarlier(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	return b.IsZero() || a.Before(b)
}
