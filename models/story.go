// Package models defines the typed records produced by the scrapers.
package models

// Story holds the metadata extracted from a single story page.
//
// Published and Updated are unix timestamps kept string-encoded, exactly as
// they appear in the page's data-xutime attributes. When the page lists only
// one timestamp the two fields are equal.
type Story struct {
	SID      string `json:"sid"`
	AID      string `json:"aid"`
	Category string `json:"category"`
	Fandom   string `json:"fandom"`
	Title    string `json:"title"`
	Rating   string `json:"rating"`
	Genre    string `json:"genre"`

	Published string `json:"published"`
	Updated   string `json:"updated"`

	// ReviewCount is nil when the metadata line carries no Reviews field.
	ReviewCount *int `json:"review_count,omitempty"`
}

// HasReviews reports whether the story page carried a Reviews field. A
// count of zero still reports true; the single listing page it implies
// simply yields no rows.
func (s *Story) HasReviews() bool {
	return s.ReviewCount != nil
}
