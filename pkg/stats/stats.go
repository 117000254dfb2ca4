// Package stats summarizes known posts
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/umputun/postwatch/pkg/domain"
)

// Unknown is the sort key of a posted time which can't be parsed, it goes after everything else
const Unknown = math.MaxInt

// Stats of known posts
type Stats struct {
	Total       int          `json:"total"`
	WithDetails int          `json:"with_details"`
	WithLinks   int          `json:"with_links"`
	TotalLinks  int          `json:"total_links"`
	Recent      []RecentPost `json:"recent"`
}

// RecentPost is a short description of a recently posted item
type RecentPost struct {
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PostedTime    string    `json:"posted_time"`
	FirstSeen     time.Time `json:"first_seen"`
	DetailsLength int       `json:"details_length"`
	LinksCount    int       `json:"links_count"`
}

// Collect counts known posts and picks up to recent most recently posted ones
func Collect(known domain.KnownSet, recent int) Stats {
	res := Stats{Total: len(known), Recent: []RecentPost{}}
	all := make([]domain.KnownPost, 0, len(known))
	for title, kp := range known {
		if kp.Details != "" {
			res.WithDetails++
		}
		if len(kp.Links) > 0 {
			res.WithLinks++
		}
		res.TotalLinks += len(kp.Links)
		if kp.Title == "" {
			kp.Title = title
		}
		all = append(all, kp)
	}

	// posted time is relative to the moment of scraping, ties broken by discovery time
	sort.SliceStable(all, func(i, j int) bool {
		ai, aj := ParseTimeAgo(all[i].PostedTime), ParseTimeAgo(all[j].PostedTime)
		if ai != aj {
			return ai < aj
		}
		if !all[i].FirstSeen.Equal(all[j].FirstSeen) {
			return all[i].FirstSeen.After(all[j].FirstSeen)
		}
		return all[i].Title < all[j].Title
	})

	for i := 0; i < len(all) && i < recent; i++ {
		kp := all[i]
		res.Recent = append(res.Recent, RecentPost{
			Title:         kp.Title,
			Author:        kp.Author,
			PostedTime:    kp.PostedTime,
			FirstSeen:     kp.FirstSeen,
			DetailsLength: len([]rune(kp.Details)),
			LinksCount:    len(kp.Links),
		})
	}
	return res
}

// ParseTimeAgo converts "2 hours ago", "3 days ago" and similar to minutes.
// Returns Unknown for anything else.
func ParseTimeAgo(s string) int {
	parts := strings.Fields(strings.ToLower(s))
	if len(parts) < 2 {
		return Unknown
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return Unknown
	}
	unit := parts[1]
	switch {
	case strings.Contains(unit, "minute"):
		return n
	case strings.Contains(unit, "hour"):
		return n * 60
	case strings.Contains(unit, "day"):
		return n * 60 * 24
	case strings.Contains(unit, "week"):
		return n * 60 * 24 * 7
	case strings.Contains(unit, "month"):
		return n * 60 * 24 * 30
	default:
		return Unknown
	}
}

// Render writes human-readable stats
func Render(w io.Writer, st Stats) {
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)

	_, _ = heading.Fprintln(w, "\nPost Statistics:")
	fmt.Fprintf(w, "   %s %d\n", label.Sprint("Total known posts:"), st.Total)
	if st.Total == 0 {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "   %s %d\n", label.Sprint("Posts with details:"), st.WithDetails)
	fmt.Fprintf(w, "   %s %d\n", label.Sprint("Posts with links:"), st.WithLinks)
	fmt.Fprintf(w, "   %s %d\n", label.Sprint("Total links found:"), st.TotalLinks)

	fmt.Fprintf(w, "   %s\n", label.Sprint("Most recent posts:"))
	for i, p := range st.Recent {
		title := p.Title
		if r := []rune(title); len(r) > 50 {
			title = string(r[:50]) + "..."
		}
		fmt.Fprintf(w, "     %d. %s\n", i+1, title)
		fmt.Fprintf(w, "        By: %s • %s\n", orUnknown(p.Author), orUnknown(p.PostedTime))
		firstSeen := "Unknown"
		if !p.FirstSeen.IsZero() {
			firstSeen = p.FirstSeen.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "        First seen: %s\n", firstSeen)
		if p.DetailsLength > 0 {
			fmt.Fprintf(w, "        Details: %d characters\n", p.DetailsLength)
		}
		if p.LinksCount > 0 {
			fmt.Fprintf(w, "        Links: %d found\n", p.LinksCount)
		}
	}
	fmt.Fprintln(w)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
