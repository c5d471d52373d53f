package scrape

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fanscrape/models"
)

// categoryAndFandom reads the first two anchors of the breadcrumb region at
// the top of a story page, e.g. ("Plays/Musicals", "RENT").
func categoryAndFandom(doc *goquery.Document) (string, string, error) {
	links := doc.Find("#pre_story_links a[href]")
	if links.Length() < 2 {
		return "", "", &ParseError{Want: "#pre_story_links anchors"}
	}
	return links.Eq(0).Text(), links.Eq(1).Text(), nil
}

// notEmpty reports whether the page holds an actual story. The site renders
// a gui_warning banner instead of content when a story id does not resolve.
func notEmpty(doc *goquery.Document) bool {
	return doc.Find("span.gui_warning").Length() == 0
}

// title returns the text of the story title node. An empty string is a
// valid title, not an error.
func title(doc *goquery.Document) string {
	return doc.Find("b.xcontrast_txt").First().Text()
}

// timestamps returns (published, updated) from the data-xutime markers in
// the metadata line. With a single marker both values are equal; with two,
// the site lists updated first and published second. That ordering is a
// fixed layout convention, not something inferred from the page.
func timestamps(meta *goquery.Selection) (string, string, error) {
	marks := meta.Find("[data-xutime]")
	switch marks.Length() {
	case 0:
		return "", "", &ParseError{Want: "data-xutime markers"}
	case 1:
		t := marks.Eq(0).AttrOr("data-xutime", "")
		return t, t, nil
	default:
		updated := marks.Eq(0).AttrOr("data-xutime", "")
		published := marks.Eq(1).AttrOr("data-xutime", "")
		return published, updated, nil
	}
}

// metadataFields splits the "Rated: ... - Language - ..." line on its
// hyphen delimiter. "Sci-Fi" is collapsed first so the genre itself cannot
// split the line.
func metadataFields(meta *goquery.Selection) []string {
	text := strings.ReplaceAll(meta.Text(), "Sci-Fi", "SciFi")
	parts := strings.Split(text, "-")
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = strings.TrimSpace(p)
	}
	return fields
}

// reviewCount pulls the count out of a "Reviews: 1,103" field. Decimal
// separators are stripped before parsing.
func reviewCount(field string) (int, error) {
	parts := strings.Fields(field)
	if len(parts) < 2 {
		return 0, &ParseError{Want: "Reviews field value"}
	}
	return strconv.Atoi(strings.ReplaceAll(parts[1], ",", ""))
}

// authorID reads the author's user id from the profile link on a story
// page. The author link is the third xcontrast_txt anchor, another fixed
// layout convention.
func authorID(doc *goquery.Document) (string, error) {
	links := doc.Find("a.xcontrast_txt")
	if links.Length() < 3 {
		return "", &ParseError{Want: "author profile anchor"}
	}
	href := links.Eq(2).AttrOr("href", "")
	parts := strings.Split(href, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", &ParseError{Want: "author id in profile href"}
	}
	return parts[2], nil
}

// Story fetches and extracts one story page. It records the review count
// when present but never fetches the reviews themselves; that decision
// belongs to the caller.
func (s *Scraper) Story(sid string) (*models.Story, error) {
	url := s.storyURL(sid)

	doc, err := s.fetch.Document(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if !notEmpty(doc) {
		return nil, ErrStoryNotFound
	}

	story, err := extractStory(doc, sid)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.URL == "" {
			pe.URL = url
		}
		return nil, err
	}
	return story, nil
}

// extractStory composes the field extractors against a story document.
func extractStory(doc *goquery.Document, sid string) (*models.Story, error) {
	category, fandom, err := categoryAndFandom(doc)
	if err != nil {
		return nil, err
	}

	meta := doc.Find("span.xgray.xcontrast_txt").First()
	if meta.Length() == 0 {
		return nil, &ParseError{Want: "span.xgray metadata line"}
	}

	published, updated, err := timestamps(meta)
	if err != nil {
		return nil, err
	}

	aid, err := authorID(doc)
	if err != nil {
		return nil, err
	}

	fields := metadataFields(meta)
	story := &models.Story{
		SID:       sid,
		AID:       aid,
		Category:  category,
		Fandom:    fandom,
		Title:     title(doc),
		Published: published,
		Updated:   updated,
	}

	// Rating and genre sit at fixed offsets of the metadata split; the
	// Reviews field is located by name because its position floats with
	// the optional Chapters/Words fields.
	if len(fields) > 0 {
		story.Rating = fields[0]
	}
	if len(fields) > 2 {
		story.Genre = fields[2]
	}
	for _, f := range fields {
		if strings.Contains(f, "Reviews") {
			n, err := reviewCount(f)
			if err != nil {
				return nil, err
			}
			story.ReviewCount = &n
			break
		}
	}

	return story, nil
}
