package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fanscrape/models"
)

// reviewChapterAndTimestamp parses the compact "chapter <n> . <date>" label
// under a review row. Chapter is whatever sits before the first period with
// whitespace and the word "chapter" trimmed away; the timestamp comes from
// the row's data-xutime marker.
func reviewChapterAndTimestamp(row *goquery.Selection) (string, string, error) {
	small := row.Find("small").First()
	if small.Length() == 0 {
		return "", "", &ParseError{Want: "review small tag"}
	}

	chapter := strings.SplitN(small.Text(), ".", 2)[0]
	chapter = strings.Trim(chapter, "chapter \n\t")

	stamp, ok := small.Find("[data-xutime]").First().Attr("data-xutime")
	if !ok {
		return "", "", &ParseError{Want: "review data-xutime marker"}
	}

	return chapter, stamp, nil
}

// reviewUser scans the row's anchors for a profile link and returns the
// embedded user id. Rows without one are guest reviews.
func reviewUser(row *goquery.Selection) string {
	uid := models.GuestReviewer
	row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if !strings.Contains(href, "/u/") {
			return true
		}
		parts := strings.Split(href, "/")
		for i, p := range parts {
			if p == "u" && i+1 < len(parts) && parts[i+1] != "" {
				uid = parts[i+1]
				return false
			}
		}
		return true
	})
	return uid
}

// reviewText returns the body of a review row.
func reviewText(row *goquery.Selection) string {
	return row.Find("div[style='margin-top:5px']").First().Text()
}

// reviewsInTable yields one Review per row of a review-listing table, in
// document order. Duplicate rows are passed through untouched.
func reviewsInTable(doc *goquery.Document) ([]models.Review, error) {
	var (
		reviews []models.Review
		rowErr  error
	)

	doc.Find("tbody td").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		chapter, stamp, err := reviewChapterAndTimestamp(row)
		if err != nil {
			rowErr = err
			return false
		}
		reviews = append(reviews, models.Review{
			Reviewer:  reviewUser(row),
			Chapter:   chapter,
			Timestamp: stamp,
			Text:      reviewText(row),
		})
		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}
	return reviews, nil
}

// reviewPages computes how many listing pages to fetch for a review count.
// The site stores 15 reviews per page. Counts that are an exact multiple of
// 15 fetch one trailing page that yields zero rows; downstream output does
// not change, so the simple formula stands.
func reviewPages(count int) int {
	return count/ReviewsPerPage + 1
}

// ReviewIter walks a story's review listing one page at a time. Pages are
// fetched lazily, each behind its own politeness delay, so a caller that
// stops early never pays for the remaining pages. An iterator is not
// restartable once a page has been fetched; build a new one instead.
type ReviewIter struct {
	s     *Scraper
	sid   string
	pages int
	page  int
	buf   []models.Review
	err   error
}

// Reviews returns a lazy iterator over the reviews of a story. count is the
// review count reported by the story page's metadata line.
func (s *Scraper) Reviews(sid string, count int) *ReviewIter {
	return &ReviewIter{
		s:     s,
		sid:   sid,
		pages: reviewPages(count),
	}
}

// Next returns the next review in document order. It reports false once the
// listing is exhausted or a page failed; check Err to tell the two apart.
func (it *ReviewIter) Next() (models.Review, bool) {
	for len(it.buf) == 0 {
		if it.err != nil || it.page >= it.pages {
			return models.Review{}, false
		}

		it.page++
		url := it.s.reviewURL(it.sid, it.page)

		doc, err := it.s.fetch.Document(url)
		if err != nil {
			it.err = &FetchError{URL: url, Err: err}
			return models.Review{}, false
		}

		rows, err := reviewsInTable(doc)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.URL = url
			}
			it.err = err
			return models.Review{}, false
		}
		it.buf = rows
	}

	r := it.buf[0]
	it.buf = it.buf[1:]
	return r, true
}

// Err reports the failure that stopped iteration, if any.
func (it *ReviewIter) Err() error { return it.err }
