package scrape

import (
	"errors"
	"fmt"
)

// ErrStoryNotFound is returned when a story page exists but carries the
// site's "Story Not Found" warning banner.
var ErrStoryNotFound = errors.New("story not found")

// FetchError wraps a transport-level failure for a single page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a page whose shape did not match the expected layout,
// which usually means the site changed its markup.
type ParseError struct {
	URL  string
	Want string // the node or attribute that was missing
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: missing %s", e.URL, e.Want)
}
