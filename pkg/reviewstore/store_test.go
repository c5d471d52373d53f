package reviewstore

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"fanscrape/models"
	"fanscrape/pkg/nlp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertAndFetchReviews(t *testing.T) {
	store := openTestStore(t)

	reviews := []models.Review{
		{Reviewer: "123", Chapter: "10", Timestamp: "11111", Text: "Most recent."},
		{Reviewer: "123", Chapter: "10", Timestamp: "11110", Text: "Same person."},
		{Reviewer: models.GuestReviewer, Chapter: "2", Timestamp: "22222", Text: "Anonymous third."},
	}
	for _, r := range reviews {
		if _, err := store.InsertReview("15", r); err != nil {
			t.Fatalf("InsertReview: %v", err)
		}
	}
	if _, err := store.InsertReview("16", models.Review{
		Reviewer: "456", Chapter: "1", Timestamp: "33333", Text: "Other story.",
	}); err != nil {
		t.Fatalf("InsertReview: %v", err)
	}

	got, err := store.ReviewsForStory("15")
	if err != nil {
		t.Fatalf("ReviewsForStory: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d reviews for story 15, want 3", len(got))
	}
	// Oldest first, regardless of insertion order.
	if got[0].Review.Timestamp != "11110" || got[2].Review.Timestamp != "22222" {
		t.Errorf("reviews not ordered by left_at: %v, %v, %v",
			got[0].Review.Timestamp, got[1].Review.Timestamp, got[2].Review.Timestamp)
	}
	if got[0].SID != "15" {
		t.Errorf("SID = %q, want 15", got[0].SID)
	}

	all, err := store.AllReviews(0)
	if err != nil {
		t.Fatalf("AllReviews: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("AllReviews(0) returned %d rows, want 4", len(all))
	}

	limited, err := store.AllReviews(2)
	if err != nil {
		t.Fatalf("AllReviews(2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("AllReviews(2) returned %d rows, want 2", len(limited))
	}
}

func TestInsertReviewRejectsBadTimestamp(t *testing.T) {
	store := openTestStore(t)

	_, err := store.InsertReview("15", models.Review{
		Reviewer: "123", Chapter: "1", Timestamp: "yesterday", Text: "Nope.",
	})
	if err == nil {
		t.Fatal("expected error for a non-numeric timestamp")
	}
}

func TestSavePostingsAndSearch(t *testing.T) {
	store := openTestStore(t)

	ix := nlp.NewIndex()
	ix.Add("123/15", [][]string{{"plot", "twist", "plot"}})
	ix.Add("456/15", [][]string{{"twist"}})
	if err := store.SavePostings(ix); err != nil {
		t.Fatalf("SavePostings: %v", err)
	}

	got, err := store.SearchTerm("plot")
	if err != nil {
		t.Fatalf("SearchTerm: %v", err)
	}
	want := []nlp.Posting{{DocKey: "123/15", Hits: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("postings mismatch (-want +got):\n%s", diff)
	}

	missing, err := store.SearchTerm("absent")
	if err != nil {
		t.Fatalf("SearchTerm: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("SearchTerm(absent) returned %d postings, want 0", len(missing))
	}
}

func TestSavePostingsIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	ix := nlp.NewIndex()
	ix.Add("123/15", [][]string{{"plot"}})
	if err := store.SavePostings(ix); err != nil {
		t.Fatalf("SavePostings: %v", err)
	}

	// Re-index the same document with a new count; the row is replaced.
	ix2 := nlp.NewIndex()
	ix2.Add("123/15", [][]string{{"plot", "plot", "plot"}})
	if err := store.SavePostings(ix2); err != nil {
		t.Fatalf("SavePostings rerun: %v", err)
	}

	got, err := store.SearchTerm("plot")
	if err != nil {
		t.Fatalf("SearchTerm: %v", err)
	}
	want := []nlp.Posting{{DocKey: "123/15", Hits: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("postings mismatch after re-index (-want +got):\n%s", diff)
	}
}

func TestTopTerms(t *testing.T) {
	store := openTestStore(t)

	ix := nlp.NewIndex()
	ix.Add("123/15", [][]string{{"plot", "plot", "twist"}})
	ix.Add("456/15", [][]string{{"twist", "ending"}})
	if err := store.SavePostings(ix); err != nil {
		t.Fatalf("SavePostings: %v", err)
	}

	terms, err := store.TopTerms(2)
	if err != nil {
		t.Fatalf("TopTerms: %v", err)
	}
	want := []TermCount{{Term: "plot", Hits: 2}, {Term: "twist", Hits: 2}}
	if diff := cmp.Diff(want, terms); diff != "" {
		t.Errorf("top terms mismatch (-want +got):\n%s", diff)
	}
}
