// Package index implements the inverted-index commands over stored review
// text and story chapters.
package index

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/urfave/cli/v2"

	"fanscrape/internal/common"
	"fanscrape/pkg/fetcher"
	"fanscrape/pkg/nlp"
	"fanscrape/pkg/reviewstore"
)

// BuildAction normalizes every stored review and persists the resulting
// posting lists.
func BuildAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	store, err := reviewstore.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}
	defer store.Close()

	reviews, err := store.AllReviews(0)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No stored reviews to index")
		return nil
	}

	normalizer := nlp.NewNormalizer()
	ix := nlp.NewIndex()
	for _, rec := range reviews {
		ix.Add(rec.Review.Reviewer+"/"+rec.SID, normalizer.Normalize(rec.Review.Text))
	}

	if err := store.SavePostings(ix); err != nil {
		return err
	}

	logger.Info("index built", "reviews", len(reviews), "terms", ix.Len())
	fmt.Printf("Indexed %d reviews (%d distinct terms)\n", len(reviews), ix.Len())
	return nil
}

// StoryAction fetches a story page, distills the chapter text out of the
// surrounding chrome, and indexes it under story/<sid>.
func StoryAction(c *cli.Context) error {
	sid := c.String("sid")
	if sid == "" {
		return cli.Exit("Error: --sid is required", 1)
	}

	logger := common.NewLogger(c.Bool("quiet"))
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	pageURL := fmt.Sprintf("%s/s/%s", cfg.BaseURL, sid)
	body, err := fetcher.New(cfg.RateLimit()).GetBytes(pageURL)
	if err != nil {
		return fmt.Errorf("failed to fetch story page: %w", err)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("failed to parse story URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return fmt.Errorf("failed to extract story text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return fmt.Errorf("story %s produced no readable text", sid)
	}

	store, err := reviewstore.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}
	defer store.Close()

	normalizer := nlp.NewNormalizer()
	ix := nlp.NewIndex()
	ix.Add("story/"+sid, normalizer.Normalize(text))

	if err := store.SavePostings(ix); err != nil {
		return err
	}

	logger.Info("story indexed", "sid", sid, "terms", ix.Len())
	fmt.Printf("Indexed story %s (%d distinct terms)\n", sid, ix.Len())
	return nil
}

// SearchAction looks a normalized term up in the stored postings.
func SearchAction(c *cli.Context) error {
	term := c.String("term")
	if term == "" {
		return cli.Exit("Error: --term is required", 1)
	}

	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	store, err := reviewstore.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}
	defer store.Close()

	// Search with the same normalization the index was built with.
	normalizer := nlp.NewNormalizer()
	if tokens := normalizer.Tokens(term); len(tokens) > 0 {
		term = tokens[0]
	}

	postings, err := store.SearchTerm(term)
	if err != nil {
		return err
	}
	if len(postings) == 0 {
		fmt.Printf("No documents contain %q\n", term)
		return nil
	}

	fmt.Printf("%-30s %-8s\n", "Document", "Hits")
	fmt.Println(strings.Repeat("-", 40))
	for _, p := range postings {
		fmt.Printf("%-30s %-8d\n", p.DocKey, p.Hits)
	}
	fmt.Printf("\nTotal: %d documents\n", len(postings))
	return nil
}
