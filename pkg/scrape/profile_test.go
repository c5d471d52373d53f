package scrape

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"fanscrape/models"
)

const profilePageHTML = `<html><body>
<div class='z-list favstories' data-category="Pride and Prejudice" data-storyid="120"></div>
<div class='z-list favstories' data-category="Pride and Prejudice" data-storyid="121"></div>
<div class='z-list favstories' data-category="Twilight" data-storyid="500"></div>
<div class='z-list favstories' data-category="Pride and Prejudice" data-storyid="122"></div>
<div id='fa'>
  <a href='/u/771/writerone'>writerone</a>
  <a href='/u/772/writertwo'>writertwo</a>
</div>
</body></html>`

func TestFavoriteStories(t *testing.T) {
	favs, inverted := favoriteStories(doc(t, profilePageHTML))

	wantFavs := []models.FavoriteStory{
		{SID: "120", Fandom: "Pride and Prejudice"},
		{SID: "121", Fandom: "Pride and Prejudice"},
		{SID: "500", Fandom: "Twilight"},
		{SID: "122", Fandom: "Pride and Prejudice"},
	}
	if diff := cmp.Diff(wantFavs, favs); diff != "" {
		t.Errorf("favorites mismatch (-want +got):\n%s", diff)
	}

	wantInverted := map[string][]string{
		"Pride and Prejudice": {"120", "121", "122"},
		"Twilight":            {"500"},
	}
	if diff := cmp.Diff(wantInverted, inverted); diff != "" {
		t.Errorf("inverted index mismatch (-want +got):\n%s", diff)
	}
}

func TestFavoriteStoriesEmptyProfile(t *testing.T) {
	favs, inverted := favoriteStories(doc(t, `<html><body></body></html>`))
	if len(favs) != 0 {
		t.Errorf("got %d favorites from an empty profile", len(favs))
	}
	if len(inverted) != 0 {
		t.Errorf("got %d fandom buckets from an empty profile", len(inverted))
	}
}

func TestFavoriteAuthors(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "two favorites",
			html: profilePageHTML,
			want: []string{"771", "772"},
		},
		{
			name: "no container",
			html: `<html><body></body></html>`,
			want: nil,
		},
		{
			name: "empty container",
			html: `<div id='fa'></div>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := favoriteAuthors(doc(t, tt.html))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("favoriteAuthors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRelativeLikes(t *testing.T) {
	favs := []models.FavoriteStory{
		{SID: "120", Fandom: "Pride and Prejudice"},
		{SID: "121", Fandom: "Pride and Prejudice"},
		{SID: "500", Fandom: "Twilight"},
		{SID: "122", Fandom: "Pride and Prejudice"},
	}
	inverted := map[string][]string{
		"Pride and Prejudice": {"120", "121", "122"},
		"Twilight":            {"500"},
	}

	tests := []struct {
		name   string
		favs   []models.FavoriteStory
		fandom string
		want   float64
	}{
		{"majority fandom", favs, "Pride and Prejudice", 0.75},
		{"minority fandom", favs, "Twilight", 0.25},
		{"unknown fandom", favs, "Naruto", 0.0},
		{"no favorites at all", nil, "Twilight", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := inverted
			if tt.favs == nil {
				inv = map[string][]string{}
			}
			got := RelativeLikes(tt.favs, inv, tt.fandom)
			if got != tt.want {
				t.Errorf("RelativeLikes = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("RelativeLikes = %v, outside [0, 1]", got)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	fetch := &fakeFetcher{pages: map[string]string{
		"https://example.test/u/42": profilePageHTML,
	}}
	s := New(fetch, "https://example.test", nil)

	profile, err := s.Profile("42")
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}

	if profile.UID != "42" {
		t.Errorf("UID = %q, want 42", profile.UID)
	}
	if len(profile.FavoriteStories) != 4 {
		t.Errorf("got %d favorite stories, want 4", len(profile.FavoriteStories))
	}
	if diff := cmp.Diff([]string{"771", "772"}, profile.FavoriteAuthors); diff != "" {
		t.Errorf("favorite authors mismatch (-want +got):\n%s", diff)
	}
}
