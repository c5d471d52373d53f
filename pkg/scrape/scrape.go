// Package scrape extracts typed records from the fan-fiction site's four
// page types: story pages, review listings, author profiles, and
// category/fandom story listings.
//
// Field extraction is split into pure helpers that take a parsed document
// (or sub-node) and return one semantic field. The Scraper composes them
// against fetched pages. All helpers leave their input untouched.
package scrape

import (
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
)

const (
	// ReviewsPerPage is the fixed page size of review listings.
	ReviewsPerPage = 15
	// StoriesPerPage is the fixed page size of category/fandom listings.
	StoriesPerPage = 25
)

// Fetcher resolves a URL into a parsed document. The production
// implementation lives in pkg/fetcher and applies the politeness delay.
type Fetcher interface {
	Document(url string) (*goquery.Document, error)
}

// Scraper extracts records from pages fetched off one site.
type Scraper struct {
	fetch Fetcher
	base  string
	log   *slog.Logger
}

// New wires a Scraper against a fetcher and a site base URL such as
// "https://www.fanfiction.net".
func New(fetch Fetcher, baseURL string, log *slog.Logger) *Scraper {
	if log == nil {
		log = slog.Default()
	}
	return &Scraper{fetch: fetch, base: baseURL, log: log}
}

func (s *Scraper) storyURL(sid string) string {
	return fmt.Sprintf("%s/s/%s", s.base, sid)
}

func (s *Scraper) reviewURL(sid string, page int) string {
	// /0/ selects reviews across all chapters.
	return fmt.Sprintf("%s/r/%s/0/%d/", s.base, sid, page)
}

func (s *Scraper) profileURL(uid string) string {
	return fmt.Sprintf("%s/u/%s", s.base, uid)
}
