package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/umputun/postwatch/pkg/domain"
)

const defaultPostsLimit = 100

// statusHandler returns server and monitor status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"monitor": s.monitor.Status(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// statsHandler returns statistics of known posts
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.monitor.Stats())
}

// postsHandler returns known posts, most recently discovered first.
// Optional "limit" query param, default 100, 0 means all.
func (s *Server) postsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultPostsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			RenderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = l
	}
	RenderJSON(w, r, http.StatusOK, s.recentPosts(limit))
}

// recentPosts returns known posts sorted by first seen time, newest first, ties by title
func (s *Server) recentPosts(limit int) []domain.KnownPost {
	known := s.monitor.Known()
	res := make([]domain.KnownPost, 0, len(known))
	for title, kp := range known {
		if kp.Title == "" {
			kp.Title = title
		}
		res = append(res, kp)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].FirstSeen.Equal(res[j].FirstSeen) {
			return res[i].FirstSeen.After(res[j].FirstSeen)
		}
		return res[i].Title < res[j].Title
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}
