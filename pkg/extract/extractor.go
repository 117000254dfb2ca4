// Package extract parses a rendered feed page into posts.
// The primary strategy walks feed headers; when it finds nothing, a generic strategy picks
// any sizable content container. A broken item is skipped and never stops the batch.
package extract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/postwatch/pkg/domain"
	"github.com/umputun/postwatch/pkg/locator"
)

// strategy names reported in Report
const (
	StrategyHeaders  = "headers"
	StrategyFallback = "fallback"
	StrategyNone     = "none"
)

// ExtractionError describes a feed item which could not be parsed
type ExtractionError struct {
	Index int
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error { return e.Err }

// Report summarizes a single extraction
type Report struct {
	Strategy string  // strategy which produced the posts
	Headers  int     // feed headers found
	Skipped  []error // per-item failures, each is *ExtractionError
}

// Params of the extractor
type Params struct {
	Selectors      Selectors
	MinTextLength  int // generic strategy ignores containers with shorter text
	TitleMaxLength int // generic strategy cuts synthesized titles to this many runes
}

// Extractor makes posts from a page snapshot
type Extractor struct {
	Params
	policy *bluemonday.Policy
	now    func() time.Time
}

// New makes an extractor, zero params replaced by defaults
func New(params Params) *Extractor {
	if params.Selectors.Header == "" {
		params.Selectors = DefaultSelectors
	}
	if params.MinTextLength == 0 {
		params.MinTextLength = 10
	}
	if params.TitleMaxLength == 0 {
		params.TitleMaxLength = 100
	}
	return &Extractor{Params: params, policy: bluemonday.UGCPolicy(), now: time.Now}
}

// Extract parses the snapshot into posts. An empty result is not an error.
func (e *Extractor) Extract(snap domain.Snapshot) ([]domain.Post, Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, Report{Strategy: StrategyNone}, fmt.Errorf("parse snapshot: %w", err)
	}
	base, _ := url.Parse(snap.URL) // nil base keeps hrefs as is
	ts := e.now()

	posts, report := e.byHeaders(doc, snap.URL, base, ts)
	if len(posts) > 0 {
		lgr.Printf("[INFO] extracted %d posts from %d feed headers", len(posts), report.Headers)
		return posts, report, nil
	}

	lgr.Printf("[WARN] no posts from feed headers, trying generic containers")
	if posts = e.byContainers(doc, snap.URL, base, ts); len(posts) > 0 {
		report.Strategy = StrategyFallback
		lgr.Printf("[INFO] extracted %d posts from generic containers", len(posts))
		return posts, report, nil
	}

	report.Strategy = StrategyNone
	return nil, report, nil
}

// byHeaders extracts one post per feed header
func (e *Extractor) byHeaders(doc *goquery.Document, pageURL string, base *url.URL, ts time.Time) ([]domain.Post, Report) {
	report := Report{Strategy: StrategyHeaders}
	headers := doc.Find(e.Selectors.Header)
	report.Headers = headers.Length()
	lgr.Printf("[DEBUG] found %d feed headers", report.Headers)

	posts := make([]domain.Post, 0, report.Headers)
	headers.Each(func(i int, header *goquery.Selection) {
		post, err := e.fromHeader(header, pageURL, base)
		if err != nil {
			report.Skipped = append(report.Skipped, &ExtractionError{Index: i, Err: err})
			lgr.Printf("[WARN] skip feed header %d: %v", i, err)
			return
		}
		post.DiscoveredAt = ts
		posts = append(posts, post)
		lgr.Printf("[DEBUG] parsed post %d: %q, %d chars of details", i, truncate(post.Title, 50), len(post.Details))
	})
	return posts, report
}

// fromHeader builds a post from a single header element
func (e *Extractor) fromHeader(header *goquery.Selection, pageURL string, base *url.URL) (domain.Post, error) {
	titleEl := header.Find(e.Selectors.Title).First()
	if titleEl.Length() == 0 {
		return domain.Post{}, errors.New("no title element")
	}
	post := domain.Post{Title: strings.TrimSpace(renderText(titleEl)), Links: []domain.Link{}, MainLink: pageURL}
	if post.Title == "" {
		return domain.Post{}, errors.New("empty title")
	}

	meta := header.Find(e.Selectors.Meta).First()
	if meta.Length() == 0 {
		return domain.Post{}, errors.New("no metadata row")
	}
	spans := meta.Find(e.Selectors.MetaSpans)
	switch {
	case spans.Length() >= 2:
		post.Author = renderText(spans.Eq(0))
		post.PostedTime = renderText(spans.Eq(1))
	case spans.Length() == 1:
		// author is missing sometimes, a single span is the time
		post.PostedTime = renderText(spans.Eq(0))
	}

	// the body is a sibling of the header somewhere in the post container two levels up
	container := header.Parent().Parent()
	if body, ok := e.details(container); ok {
		post.Details = renderText(body)
		if raw, err := body.Html(); err == nil {
			post.DetailsHTML = strings.TrimSpace(e.policy.Sanitize(raw))
		}
		body.Find(e.Selectors.Links).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if href = resolve(base, href); href == "" {
				return
			}
			post.Links = append(post.Links, domain.Link{URL: href, Text: renderText(a)})
		})
	}

	if a := header.Parent().Find(e.Selectors.MainLink).First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		if href = resolve(base, href); href != "" {
			post.MainLink = href
		}
	}
	return post, nil
}

// details finds the post body in the container using the selector chain
func (e *Extractor) details(container *goquery.Selection) (*goquery.Selection, bool) {
	var found *goquery.Selection
	_, err := e.Selectors.Details.First(func(l locator.Locator) error {
		sel := container.Find(l.Value).First()
		if sel.Length() == 0 {
			return locator.ErrNoMatch
		}
		found = sel
		return nil
	})
	return found, err == nil
}

// byContainers synthesizes minimal posts from generic content containers.
// Selectors are tried in order and the first one producing posts wins.
func (e *Extractor) byContainers(doc *goquery.Document, pageURL string, base *url.URL, ts time.Time) []domain.Post {
	for _, sel := range e.Selectors.Fallback {
		var posts []domain.Post
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := renderText(s)
			if utf8.RuneCountInString(text) < e.MinTextLength {
				return
			}
			title, _, _ := strings.Cut(text, "\n")
			post := domain.Post{
				Title:        truncate(title, e.TitleMaxLength),
				Details:      text,
				Links:        []domain.Link{},
				MainLink:     pageURL,
				DiscoveredAt: ts,
			}
			if a := s.Find("a[href]").First(); a.Length() > 0 {
				href, _ := a.Attr("href")
				if href = resolve(base, href); href != "" {
					post.MainLink = href
				}
			}
			posts = append(posts, post)
		})
		if len(posts) > 0 {
			lgr.Printf("[DEBUG] generic selector %q matched %d posts", sel, len(posts))
			return posts
		}
	}
	return nil
}

// resolve makes href absolute against the page url, the way browsers report it
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}
