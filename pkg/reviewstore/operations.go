package reviewstore

import (
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"fanscrape/models"
	"fanscrape/pkg/nlp"
)

// StoredReview is a review row together with its story id.
type StoredReview struct {
	ReviewID int64
	SID      string
	Review   models.Review
}

// InsertReview stores one scraped review, returning its row id.
func (s *Store) InsertReview(sid string, r models.Review) (int64, error) {
	leftAt, err := strconv.ParseInt(r.Timestamp, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse review timestamp %q: %w", r.Timestamp, err)
	}

	result, err := s.Exec(`
		INSERT INTO reviews (sid, reviewer, chapter, left_at, body)
		VALUES (?, ?, ?, ?, ?)
	`, sid, r.Reviewer, r.Chapter, leftAt, r.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get review ID: %w", err)
	}
	return id, nil
}

// ReviewsForStory returns the stored reviews for one story, oldest first.
func (s *Store) ReviewsForStory(sid string) ([]StoredReview, error) {
	return s.queryReviews(sq.Select("review_id", "sid", "reviewer", "chapter", "left_at", "body").
		From("reviews").
		Where(sq.Eq{"sid": sid}).
		OrderBy("left_at ASC"))
}

// AllReviews returns up to limit stored reviews, oldest first. A limit of 0
// means no limit.
func (s *Store) AllReviews(limit uint64) ([]StoredReview, error) {
	builder := sq.Select("review_id", "sid", "reviewer", "chapter", "left_at", "body").
		From("reviews").
		OrderBy("left_at ASC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	return s.queryReviews(builder)
}

func (s *Store) queryReviews(builder sq.SelectBuilder) ([]StoredReview, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build review query: %w", err)
	}

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []StoredReview
	for rows.Next() {
		var (
			rec    StoredReview
			leftAt int64
		)
		if err := rows.Scan(&rec.ReviewID, &rec.SID, &rec.Review.Reviewer,
			&rec.Review.Chapter, &leftAt, &rec.Review.Text); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		rec.Review.Timestamp = strconv.FormatInt(leftAt, 10)
		reviews = append(reviews, rec)
	}
	return reviews, rows.Err()
}

// SavePostings persists every posting list of an in-memory index. Existing
// (term, doc_key) rows are replaced, so re-indexing a document is
// idempotent.
func (s *Store) SavePostings(ix *nlp.Index) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, term := range ix.Terms() {
		for _, p := range ix.Postings(term) {
			if _, err := tx.Exec(`
				INSERT INTO postings (term, doc_key, hits)
				VALUES (?, ?, ?)
				ON CONFLICT(term, doc_key) DO UPDATE SET hits = excluded.hits
			`, term, p.DocKey, p.Hits); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to insert posting for %q: %w", term, err)
			}
		}
	}

	return tx.Commit()
}

// SearchTerm returns the stored posting list for one term, most hits first.
func (s *Store) SearchTerm(term string) ([]nlp.Posting, error) {
	query, args, err := sq.Select("doc_key", "hits").
		From("postings").
		Where(sq.Eq{"term": term}).
		OrderBy("hits DESC", "doc_key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build posting query: %w", err)
	}

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings: %w", err)
	}
	defer rows.Close()

	var postings []nlp.Posting
	for rows.Next() {
		var p nlp.Posting
		if err := rows.Scan(&p.DocKey, &p.Hits); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// TermCount is one term with its total hits across all documents.
type TermCount struct {
	Term string
	Hits int
}

// TopTerms returns up to limit terms ordered by total hits.
func (s *Store) TopTerms(limit uint64) ([]TermCount, error) {
	builder := sq.Select("term", "SUM(hits) AS total").
		From("postings").
		GroupBy("term").
		OrderBy("total DESC", "term ASC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build term query: %w", err)
	}

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	var terms []TermCount
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Hits); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		terms = append(terms, tc)
	}
	return terms, rows.Err()
}
