package models

// GuestReviewer marks a review left without an account. Guest reviews still
// carry a timestamp and text but never contribute a user id.
const GuestReviewer = "Guest"

// Review is one row of a review-listing page.
type Review struct {
	Reviewer  string `json:"reviewer"` // numeric user id or GuestReviewer
	Chapter   string `json:"chapter"`
	Timestamp string `json:"timestamp"` // string-encoded unix time
	Text      string `json:"text"`
}

// IsGuest reports whether the review has no resolvable account behind it.
func (r Review) IsGuest() bool {
	return r.Reviewer == GuestReviewer
}
