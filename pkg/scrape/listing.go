package scrape

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// storyIDs collects the story ids linked from one listing page, up to 25,
// in the site's default sort order.
func storyIDs(doc *goquery.Document) []string {
	var sids []string
	doc.Find("a.stitle[href]").Each(func(_ int, a *goquery.Selection) {
		// Each href looks like /s/111/1/Title-Like-This.
		parts := strings.Split(a.AttrOr("href", ""), "/")
		if len(parts) >= 3 && parts[2] != "" {
			sids = append(sids, parts[2])
		}
	})
	return sids
}

// listingPages determines the total page count of a listing from its
// pagination controls: the last link labeled "Last" carries the final page
// number in its p query parameter. A listing with no such control fits on
// one page, reported as 0.
func listingPages(doc *goquery.Document) int {
	pages := 0
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if !strings.HasPrefix(strings.TrimSpace(a.Text()), "Last") {
			return
		}
		href := a.AttrOr("href", "")
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if n, err := strconv.Atoi(u.Query().Get("p")); err == nil {
			pages = n
		}
	})
	return pages
}

// Listing walks every page of a category/fandom listing and returns the
// full set of story ids, concatenated in page order. Duplicates appear only
// if the site itself duplicates a story across pages.
func (s *Scraper) Listing(listURL string) ([]string, error) {
	first, err := s.fetch.Document(fmt.Sprintf("%s?&p=1", listURL))
	if err != nil {
		return nil, &FetchError{URL: listURL, Err: err}
	}

	sids := storyIDs(first)

	pages := listingPages(first)
	for p := 2; p <= pages; p++ {
		pageURL := fmt.Sprintf("%s?&p=%d", listURL, p)
		doc, err := s.fetch.Document(pageURL)
		if err != nil {
			return nil, &FetchError{URL: pageURL, Err: err}
		}
		sids = append(sids, storyIDs(doc)...)
	}

	return sids, nil
}
