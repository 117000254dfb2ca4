package domain

import (
	"strings"
	"time"
)

// Post represents a single feed item scraped from the dashboard
type Post struct {
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	PostedTime   string    `json:"posted_time"` // free-text relative time, e.g. "3 hours ago"
	Details      string    `json:"details"`
	DetailsHTML  string    `json:"details_html,omitempty"`
	Links        []Link    `json:"links"`
	MainLink     string    `json:"main_link"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Link represents a hyperlink found inside post details
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// KnownPost is a persisted post, created on first sighting and never changed afterwards
type KnownPost struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	PostedTime  string    `json:"posted_time"`
	Details     string    `json:"details"`
	DetailsHTML string    `json:"details_html,omitempty"`
	Links       []Link    `json:"links"`
	MainLink    string    `json:"main_link"`
	FirstSeen   time.Time `json:"first_seen"`
}

// KnownSet maps normalized post title to the known post
type KnownSet map[string]KnownPost

// NewKnownPost makes a known post from the scraped one
func NewKnownPost(p Post, firstSeen time.Time) KnownPost {
	links := p.Links
	if links == nil {
		links = []Link{}
	}
	return KnownPost{
		Title:       NormalizeTitle(p.Title),
		Author:      p.Author,
		PostedTime:  p.PostedTime,
		Details:     p.Details,
		DetailsHTML: p.DetailsHTML,
		Links:       links,
		MainLink:    p.MainLink,
		FirstSeen:   firstSeen,
	}
}

// NormalizeTitle trims the title and collapses inner whitespace runs to a single space.
// The result is the identity key of a post.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}

// Contains checks if the set has a post with the same normalized title
func (ks KnownSet) Contains(title string) bool {
	_, ok := ks[NormalizeTitle(title)]
	return ok
}

// Clone returns a shallow copy of the set
func (ks KnownSet) Clone() KnownSet {
	res := make(KnownSet, len(ks))
	for k, v := range ks {
		res[k] = v
	}
	return res
}

// Snapshot is the rendered feed page captured after lazy loading completed
type Snapshot struct {
	HTML       string
	URL        string
	CapturedAt time.Time
}
