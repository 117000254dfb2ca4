package extract

import "github.com/umputun/postwatch/pkg/locator"

// Selectors describe where post parts live in the feed markup.
// Kept together because the dashboard markup changes without notice.
type Selectors struct {
	Header    string        // one element per post, holds title and metadata
	Title     string        // inside header
	Meta      string        // metadata row inside header
	MetaSpans string        // author and time spans inside metadata row
	Details   locator.Chain // post body, searched in the post container
	MainLink  string        // representative link, searched in the header's parent
	Links     string        // links inside post body
	Fallback  []string      // generic content containers, used when no header yields a post
}

// DefaultSelectors match the dashboard feed markup
var DefaultSelectors = Selectors{
	Header:    ".feedHeader",
	Title:     "p.text-base.font-bold.text-dark",
	Meta:      "div.flex.mt-1.flex-wrap",
	MetaSpans: "span.text-gray-500.text-xs",
	Details: locator.CSSChain(
		`div.prose`,
		`div[class*="prose"]`,
		`div p.text-sm.text-gray-600`,
		`div[class*="text-gray-600"]`,
	),
	MainLink: "a[href]",
	Links:    "a[href]",
	Fallback: []string{
		`div[class*='feed']`,
		`div[class*='post']`,
		`div[class*='card']`,
		`article`,
	},
}
