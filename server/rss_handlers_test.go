package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_rssHandler(t *testing.T) {
	srv := New(Config{Listen: ":8080", FeedTitle: "Board posts"}, testMonitor(), "1.0.0", false)

	req := httptest.NewRequest("GET", "/rss", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))

	parsed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "Board posts", parsed.Title)
	require.Len(t, parsed.Items, 3)
	assert.Equal(t, "Holiday", parsed.Items[0].Title)
	assert.Equal(t, "https://app.example.com/posts/1", parsed.Items[2].Link)
}
