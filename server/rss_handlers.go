package server

import (
	"log"
	"net/http"

	"github.com/umputun/postwatch/pkg/feed"
)

const defaultRSSLimit = 100

// rssHandler serves RSS feed of the most recently discovered posts
func (s *Server) rssHandler(w http.ResponseWriter, _ *http.Request) {
	generator := feed.NewGenerator(s.BaseURL, s.FeedTitle)

	rss, err := generator.GenerateRSS(s.recentPosts(defaultRSSLimit))
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
