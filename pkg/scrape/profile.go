package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fanscrape/models"
)

// favoriteStories reads the favorite-story markers off a profile page, in
// document order, plus the inverted fandom index. Ids within a fandom
// bucket keep first-seen order.
func favoriteStories(doc *goquery.Document) ([]models.FavoriteStory, map[string][]string) {
	var favs []models.FavoriteStory
	inverted := make(map[string][]string)

	doc.Find("div.z-list.favstories").Each(func(_ int, node *goquery.Selection) {
		fav := models.FavoriteStory{
			SID:    node.AttrOr("data-storyid", ""),
			Fandom: node.AttrOr("data-category", ""),
		}
		favs = append(favs, fav)
		inverted[fav.Fandom] = append(inverted[fav.Fandom], fav.SID)
	})

	return favs, inverted
}

// favoriteAuthors returns the user ids behind the profile's favorite-author
// links. A profile without the container, or with an empty one, yields nil.
func favoriteAuthors(doc *goquery.Document) []string {
	container := doc.Find("div#fa")
	if container.Length() == 0 {
		return nil
	}

	var ids []string
	container.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		parts := strings.Split(a.AttrOr("href", ""), "/")
		if len(parts) >= 3 && parts[2] != "" {
			ids = append(ids, parts[2])
		}
	})
	return ids
}

// RelativeLikes estimates how much a user likes a fandom as the share of
// their favorite stories belonging to it. Always within [0, 1]; a user with
// no favorites, or no favorites in the fandom, scores 0.
func RelativeLikes(favs []models.FavoriteStory, inverted map[string][]string, fandom string) float64 {
	if len(favs) == 0 {
		return 0.0
	}
	bucket := inverted[fandom]
	if len(bucket) == 0 {
		return 0.0
	}
	return float64(len(bucket)) / float64(len(favs))
}

// Profile fetches and extracts a user's profile page. Profiles are not
// paginated and carry no not-found banner: a nonexistent user degrades to a
// profile with empty favorites rather than an error.
func (s *Scraper) Profile(uid string) (*models.Profile, error) {
	url := s.profileURL(uid)

	doc, err := s.fetch.Document(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	favs, inverted := favoriteStories(doc)
	return &models.Profile{
		UID:               uid,
		FavoriteStories:   favs,
		FavoritesByFandom: inverted,
		FavoriteAuthors:   favoriteAuthors(doc),
	}, nil
}
