// Package db implements the commands for browsing the review store.
package db

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"fanscrape/internal/common"
	"fanscrape/pkg/reviewstore"
)

// clampLimit converts the --limit flag value to a row limit. Negative
// values would wrap around in the unsigned conversion, so they mean no
// limit, same as zero.
func clampLimit(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// ReviewsAction lists stored reviews, optionally restricted to one story.
func ReviewsAction(c *cli.Context) error {
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	store, err := reviewstore.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}
	defer store.Close()

	var reviews []reviewstore.StoredReview
	if sid := c.String("sid"); sid != "" {
		reviews, err = store.ReviewsForStory(sid)
	} else {
		reviews, err = store.AllReviews(clampLimit(c.Int("limit")))
	}
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		fmt.Println("No reviews found")
		return nil
	}

	fmt.Printf("%-6s %-10s %-12s %-8s %-12s %s\n",
		"ID", "Story", "Reviewer", "Chapter", "Left At", "Text")
	fmt.Println(strings.Repeat("-", 100))

	for _, rec := range reviews {
		text := rec.Review.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		fmt.Printf("%-6d %-10s %-12s %-8s %-12s %s\n",
			rec.ReviewID,
			rec.SID,
			rec.Review.Reviewer,
			rec.Review.Chapter,
			rec.Review.Timestamp,
			text,
		)
	}

	fmt.Printf("\nTotal: %d reviews\n", len(reviews))
	return nil
}

// TermsAction lists the most frequent indexed terms.
func TermsAction(c *cli.Context) error {
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	store, err := reviewstore.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}
	defer store.Close()

	terms, err := store.TopTerms(clampLimit(c.Int("limit")))
	if err != nil {
		return err
	}

	if len(terms) == 0 {
		fmt.Println("No indexed terms found; run 'fanscrape index build' first")
		return nil
	}

	fmt.Printf("%-30s %-8s\n", "Term", "Hits")
	fmt.Println(strings.Repeat("-", 40))
	for _, tc := range terms {
		fmt.Printf("%-30s %-8d\n", tc.Term, tc.Hits)
	}

	fmt.Printf("\nTotal: %d terms\n", len(terms))
	return nil
}
