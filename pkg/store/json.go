package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postwatch/pkg/domain"
)

// JSONFile keeps known posts in a single json object keyed by title
type JSONFile struct {
	path string
}

// NewJSONFile makes a json store for the given file
func NewJSONFile(path string) *JSONFile {
	if path == "" {
		path = "known_posts.json"
	}
	return &JSONFile{path: path}
}

// Load reads known posts. Missing or broken file is not an error, it gives an empty set.
func (s *JSONFile) Load(_ context.Context) (domain.KnownSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			lgr.Printf("[INFO] no known posts file %s, starting fresh", s.path)
		} else {
			lgr.Printf("[WARN] %v, starting fresh", &PersistenceError{Op: "read", Path: s.path, Err: err})
		}
		return domain.KnownSet{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		if err == nil {
			err = errors.New("not a json object")
		}
		lgr.Printf("[WARN] %v, starting fresh", &PersistenceError{Op: "decode", Path: s.path, Err: err})
		return domain.KnownSet{}, nil
	}

	// sorted keys make merging of titles differing only in whitespace stable
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	known := make(domain.KnownSet, len(raw))
	for _, key := range keys {
		var jp jsonPost
		if err := json.Unmarshal(raw[key], &jp); err != nil {
			lgr.Printf("[WARN] skip known post %q in %s: %v", key, s.path, err)
			continue
		}
		kp, err := jp.toDomain()
		if err != nil {
			lgr.Printf("[WARN] known post %q in %s: %v", key, s.path, err)
		}
		addKnown(known, key, kp)
	}
	lgr.Printf("[INFO] loaded %d known posts from %s", len(known), s.path)
	return known, nil
}

// Save overwrites the file with all known posts
func (s *JSONFile) Save(_ context.Context, known domain.KnownSet) error {
	if known == nil {
		known = domain.KnownSet{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(known); err != nil {
		return &PersistenceError{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	lgr.Printf("[DEBUG] saved %d known posts to %s", len(known), s.path)
	return nil
}

// Close does nothing, the file is opened per call
func (s *JSONFile) Close() error { return nil }

// jsonPost is a stored entry. It also accepts files of older versions with "time" instead
// of "posted_time" and first_seen timestamps without a zone.
type jsonPost struct {
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	PostedTime  string        `json:"posted_time"`
	Time        string        `json:"time"`
	Details     string        `json:"details"`
	DetailsHTML string        `json:"details_html"`
	Links       []domain.Link `json:"links"`
	MainLink    string        `json:"main_link"`
	FirstSeen   string        `json:"first_seen"`
}

// firstSeenLayouts are tried in order, zone-less values are local time
var firstSeenLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"}

// toDomain converts the entry, unparsable first_seen is reported and left zero
func (jp jsonPost) toDomain() (domain.KnownPost, error) {
	kp := domain.KnownPost{
		Title:       jp.Title,
		Author:      jp.Author,
		PostedTime:  jp.PostedTime,
		Details:     jp.Details,
		DetailsHTML: jp.DetailsHTML,
		Links:       jp.Links,
		MainLink:    jp.MainLink,
	}
	if kp.PostedTime == "" {
		kp.PostedTime = jp.Time
	}
	if kp.Links == nil {
		kp.Links = []domain.Link{}
	}
	if jp.FirstSeen == "" {
		return kp, nil
	}
	for _, layout := range firstSeenLayouts {
		if ts, err := time.ParseInLocation(layout, jp.FirstSeen, time.Local); err == nil {
			kp.FirstSeen = ts
			return kp, nil
		}
	}
	return kp, fmt.Errorf("unknown first_seen format %q", jp.FirstSeen)
}
