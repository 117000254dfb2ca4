// Package locator describes DOM element lookups as data. A Chain is an ordered list of
// candidate locators, and First resolves it to the first candidate that matches.
package locator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatch is returned when none of the chain candidates matched
var ErrNoMatch = errors.New("no locator matched")

// Kind of locator
type Kind int

// locator kinds
const (
	CSS Kind = iota
	XPath
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case CSS:
		return "css"
	case XPath:
		return "xpath"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Locator is a single element lookup strategy
type Locator struct {
	Kind  Kind
	Value string
}

// String returns a printable form, e.g. css:#email
func (l Locator) String() string {
	return l.Kind.String() + ":" + l.Value
}

// ByCSS makes a css locator
func ByCSS(sel string) Locator { return Locator{Kind: CSS, Value: sel} }

// ByXPath makes an xpath locator
func ByXPath(expr string) Locator { return Locator{Kind: XPath, Value: expr} }

// ByName makes a css locator matching the name attribute
func ByName(name string) Locator { return ByCSS(fmt.Sprintf("[name=%q]", name)) }

// ByID makes a css locator matching the element id
func ByID(id string) Locator { return ByCSS("#" + id) }

// Chain is an ordered list of candidates, the first match wins
type Chain []Locator

// CSSChain makes a chain of css locators
func CSSChain(selectors ...string) Chain {
	res := make(Chain, 0, len(selectors))
	for _, s := range selectors {
		res = append(res, ByCSS(s))
	}
	return res
}

// String joins all candidates
func (c Chain) String() string {
	parts := make([]string, 0, len(c))
	for _, l := range c {
		parts = append(parts, l.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// First calls try for each candidate in order and returns the first one try accepted.
// try reports a miss with any non-nil error. If all candidates miss, the returned error wraps
// ErrNoMatch and the last miss.
func (c Chain) First(try func(Locator) error) (Locator, error) {
	var lastErr error
	for _, l := range c {
		err := try(l)
		if err == nil {
			return l, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return Locator{}, ErrNoMatch
	}
	return Locator{}, fmt.Errorf("%w in %s: %w", ErrNoMatch, c, lastErr)
}
