package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postwatch/pkg/diff"
	"github.com/umputun/postwatch/pkg/domain"
)

func sampleSet() domain.KnownSet {
	ts := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	return domain.KnownSet{
		"Exam Notice A": {
			Title:      "Exam Notice A",
			Author:     "Jane Doe",
			PostedTime: "2 hours ago",
			Details:    "Exams start Monday <b>sharp</b>, привет",
			Links:      []domain.Link{{URL: "https://example.com/a?x=1&y=2", Text: "schedule"}},
			MainLink:   "https://app.example.com/posts/1",
			FirstSeen:  ts,
		},
		"Holiday": {Title: "Holiday", Links: []domain.Link{}, FirstSeen: ts.Add(time.Hour)},
	}
}

func TestJSONFile_Load(t *testing.T) {
	ctx := context.Background()

	tbl := []struct {
		name    string
		content string
		write   bool
		want    int
	}{
		{name: "missing file", write: false, want: 0},
		{name: "empty file", content: "", write: true, want: 0},
		{name: "broken json", content: "{not json", write: true, want: 0},
		{name: "json array", content: `[{"title":"a"}]`, write: true, want: 0},
		{name: "json null", content: "null", write: true, want: 0},
		{name: "empty object", content: "{}", write: true, want: 0},
		{name: "valid", content: `{"Post A":{"title":"Post A","links":null,"first_seen":"2025-05-01T09:30:00Z"},
			"Post B":{"author":"Bob"}}`, write: true, want: 2},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "known_posts.json")
			if tt.write {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}
			known, err := NewJSONFile(path).Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, known)
			assert.Len(t, known, tt.want)
		})
	}

	t.Run("fills missing title and links", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "known_posts.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Post B":{"author":"Bob"}}`), 0o600))
		known, err := NewJSONFile(path).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Post B", known["Post B"].Title)
		assert.Equal(t, []domain.Link{}, known["Post B"].Links)
	})
}

func TestJSONFile_LoadNormalizesTitles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_posts.json")
	content := `{
  "Exam  Notice A": {"title": "Exam  Notice A", "author": "late", "first_seen": "2025-05-02T09:00:00Z"},
  " Exam Notice A\n": {"title": " Exam Notice A", "author": "early", "first_seen": "2025-05-01T09:00:00Z"},
  "Holiday": {"title": "Holiday"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	known, err := NewJSONFile(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, known, 2)
	require.Contains(t, known, "Exam Notice A")
	assert.Equal(t, "Exam Notice A", known["Exam Notice A"].Title)
	assert.Equal(t, "early", known["Exam Notice A"].Author, "first seen entry wins")

	// the same title scraped with extra whitespace is not new
	posts := []domain.Post{{Title: "Exam  Notice A"}, {Title: "Holiday "}}
	newPosts := diff.ComputeNew(posts, known, time.Now())
	assert.Empty(t, newPosts)
	assert.Len(t, known, 2)
}

func TestJSONFile_LoadLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_posts.json")
	content := `{
  "Exam Notice A": {
    "title": "Exam Notice A",
    "author": "Jane Doe",
    "time": "2 hours ago",
    "details": "Exams start Monday",
    "links": [{"url": "https://example.com/a", "text": "schedule"}],
    "main_link": "https://example.com/a",
    "first_seen": "2024-01-01T12:00:00.123456"
  },
  "Broken time": {"title": "Broken time", "first_seen": "yesterday"},
  "Not an object": "oops"
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	known, err := NewJSONFile(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, known, 2, "bad entry skipped, others kept")

	kp := known["Exam Notice A"]
	assert.Equal(t, "2 hours ago", kp.PostedTime)
	assert.Equal(t, "Jane Doe", kp.Author)
	assert.Equal(t, []domain.Link{{URL: "https://example.com/a", Text: "schedule"}}, kp.Links)
	want := time.Date(2024, 1, 1, 12, 0, 0, 123456000, time.Local)
	assert.True(t, want.Equal(kp.FirstSeen), "got %v", kp.FirstSeen)

	assert.True(t, known["Broken time"].FirstSeen.IsZero(), "unparsable first_seen kept as unknown")
}

func TestAddKnown(t *testing.T) {
	ts := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	known := domain.KnownSet{}

	addKnown(known, " Post  A ", domain.KnownPost{Author: "zero"})
	addKnown(known, "Post A", domain.KnownPost{Author: "later", FirstSeen: ts.Add(time.Hour)})
	addKnown(known, "Post\tA", domain.KnownPost{Author: "earliest", FirstSeen: ts})
	addKnown(known, "Post A", domain.KnownPost{Author: "latest", FirstSeen: ts.Add(2 * time.Hour)})
	addKnown(known, "  ", domain.KnownPost{Title: "  "})

	require.Len(t, known, 1)
	assert.Equal(t, "earliest", known["Post A"].Author)
	assert.Equal(t, "Post A", known["Post A"].Title)
}

func TestJSONFile_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "known_posts.json")
	s := NewJSONFile(path)

	require.NoError(t, s.Save(ctx, sampleSet()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.HasPrefix(body, "{\n  \"Exam Notice A\": {\n    \"title\""), "2-space indent, sorted keys")
	assert.Contains(t, body, "привет", "non-ascii kept verbatim")
	assert.Contains(t, body, "<b>sharp</b>", "html not escaped")
	assert.Contains(t, body, "?x=1&y=2")
	assert.Contains(t, body, `"posted_time": "2 hours ago"`)
	assert.Contains(t, body, `"links": []`)

	known, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSet(), known)

	// save overwrites, not appends
	require.NoError(t, s.Save(ctx, domain.KnownSet{}))
	known, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, known)
	assert.NoError(t, s.Close())
}

func TestJSONFile_SaveError(t *testing.T) {
	s := NewJSONFile(filepath.Join(t.TempDir(), "no", "such", "dir", "known_posts.json"))
	err := s.Save(context.Background(), sampleSet())
	require.Error(t, err)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "write", pe.Op)
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(ctx, TypeJSON, filepath.Join(dir, "known.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, s)

	s, err = New(ctx, "", filepath.Join(dir, "known.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, s)

	s, err = New(ctx, "SQLite", filepath.Join(dir, "known.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	assert.NoError(t, s.Close())

	_, err = New(ctx, "redis", "")
	assert.EqualError(t, err, `unsupported storage type "redis"`)
}
