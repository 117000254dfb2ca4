// Package feed renders known posts as an RSS feed
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/postwatch/pkg/domain"
)

// Generator creates RSS feeds from known posts
type Generator struct {
	baseURL string
	title   string
}

// NewGenerator creates a new feed generator. The title defaults to "Postwatch".
func NewGenerator(baseURL, title string) *Generator {
	if title == "" {
		title = "Postwatch"
	}
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), title: title}
}

// GenerateRSS creates an RSS 2.0 feed, items are kept in the given order
func (g *Generator) GenerateRSS(posts []domain.KnownPost) (string, error) {
	items := make([]*RSSItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, g.convertToRSSItem(p))
	}

	lastBuild := time.Now()
	if len(posts) > 0 && !posts[0].FirstSeen.IsZero() {
		lastBuild = posts[0].FirstSeen
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         g.title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("%s - posts discovered on the dashboard", g.title),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: lastBuild.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem makes an RSS item. The guid is the normalized title, the identity of a post;
// main link may be shared by many posts as it falls back to the dashboard url.
func (g *Generator) convertToRSSItem(p domain.KnownPost) *RSSItem {
	guid := RSSGUID{Value: "postwatch:" + domain.NormalizeTitle(p.Title), IsPermaLink: "false"}

	desc := p.Details
	if p.DetailsHTML != "" {
		desc = p.DetailsHTML
	}
	if len(p.Links) > 0 {
		var sb strings.Builder
		sb.WriteString(desc)
		sb.WriteString("\n\nLinks:")
		for _, l := range p.Links {
			fmt.Fprintf(&sb, "\n%s: %s", l.Text, l.URL)
		}
		desc = sb.String()
	}

	link := p.MainLink
	if link == "" {
		link = g.baseURL + "/"
	}

	item := &RSSItem{
		Title:       p.Title,
		Link:        link,
		GUID:        guid,
		Description: strings.TrimSpace(desc),
		Author:      p.Author,
	}
	if !p.FirstSeen.IsZero() {
		item.PubDate = p.FirstSeen.Format(time.RFC1123Z)
	}
	return item
}
