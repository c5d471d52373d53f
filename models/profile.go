package models

// FavoriteStory is one entry of a profile's "Favorite Stories" list.
type FavoriteStory struct {
	SID    string `json:"sid"`
	Fandom string `json:"fandom"`
}

// Profile holds the favorites extracted from a user's profile page.
//
// FavoritesByFandom is the inverted view of FavoriteStories: fandom to the
// story ids favorited within it, in first-seen document order.
type Profile struct {
	UID               string              `json:"uid"`
	FavoriteStories   []FavoriteStory     `json:"favorite_stories"`
	FavoritesByFandom map[string][]string `json:"favorites_by_fandom"`
	FavoriteAuthors   []string            `json:"favorite_authors"`
}
