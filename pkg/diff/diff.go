// Package diff detects posts not seen before
package diff

import (
	"time"

	"github.com/umputun/postwatch/pkg/domain"
)

// ComputeNew returns posts whose normalized title is not in known, in the order of current.
// Every new post is added to known right away, so a title repeated within current is new only once
// and a second call with the same input returns nothing. Posts with empty titles are ignored.
// Existing entries are never touched.
func ComputeNew(current []domain.Post, known domain.KnownSet, now time.Time) []domain.Post {
	var res []domain.Post
	for _, p := range current {
		title := domain.NormalizeTitle(p.Title)
		if title == "" {
			continue
		}
		if _, ok := known[title]; ok {
			continue
		}
		p.Title = title
		known[title] = domain.NewKnownPost(p, now)
		res = append(res, p)
	}
	return res
}
