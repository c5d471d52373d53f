// Package scrapecmd implements the scraping commands: single story, full
// three-phase run, listing walk, and profile inspection.
package scrapecmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"fanscrape/internal/common"
	"fanscrape/pkg/facts"
	"fanscrape/pkg/fetcher"
	"fanscrape/pkg/pipeline"
	"fanscrape/pkg/reviewstore"
	"fanscrape/pkg/scrape"
)

// StoryAction scrapes one story and prints its predicate facts to stdout.
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

	scraper := scrape.New(fetcher.New(cfg.RateLimit()), cfg.BaseURL, logger)

	story, err := scraper.Story(sid)
	if err != nil {
		return fmt.Errorf("failed to scrape story %s: %w", sid, err)
	}

	fmt.Println(facts.Predicate("author", story.AID, story.SID))
	fmt.Println(facts.Predicate("rating", story.SID, story.Rating))
	fmt.Println(facts.Predicate("genre", story.SID, story.Genre))
	return nil
}

// RunAction executes the full three-phase pipeline over a file of story
// ids.
func RunAction(c *cli.Context) error {
	file := c.String("file")
	if file == "" {
		return cli.Exit("Error: --file is required", 1)
	}

	logger := common.NewLogger(c.Bool("quiet"))
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	sids, err := common.ReadStoryIDs(file)
	if err != nil {
		return err
	}
	if len(sids) == 0 {
		return cli.Exit("Error: story-id file is empty", 1)
	}

	run := &pipeline.Run{
		Scraper: scrape.New(fetcher.New(cfg.RateLimit()), cfg.BaseURL, logger),
		Facts: &facts.Writer{
			FactsPath: cfg.FactsFile,
			EdgesPath: cfg.CytoscapeFile,
		},
		TimestampsPath: cfg.TimestampsFile,
		Log:            logger,
	}

	if !c.Bool("no-db") {
		store, err := reviewstore.Open(cfg.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to open review store: %w", err)
		}
		defer store.Close()
		run.Store = store
	}

	return run.Execute(sids)
}

// ListingAction walks every page of a category/fandom listing and prints
// the story ids, one per line, ready to feed back into run --file.
func ListingAction(c *cli.Context) error {
	url := c.String("url")
	if url == "" {
		return cli.Exit("Error: --url is required", 1)
	}

	logger := common.NewLogger(c.Bool("quiet"))
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	scraper := scrape.New(fetcher.New(cfg.RateLimit()), cfg.BaseURL, logger)

	sids, err := scraper.Listing(url)
	if err != nil {
		return fmt.Errorf("failed to scrape listing: %w", err)
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	for _, sid := range sids {
		fmt.Fprintln(out, sid)
	}
	logger.Info("listing scraped", "stories", len(sids))
	return nil
}

// ProfileAction scrapes a single user profile and prints it as JSON.
func ProfileAction(c *cli.Context) error {
	uid := c.String("uid")
	if uid == "" {
		return cli.Exit("Error: --uid is required", 1)
	}

	logger := common.NewLogger(c.Bool("quiet"))
	cfg, err := common.Configure(c)
	if err != nil {
		return err
	}

	scraper := scrape.New(fetcher.New(cfg.RateLimit()), cfg.BaseURL, logger)

	profile, err := scraper.Profile(uid)
	if err != nil {
		return fmt.Errorf("failed to scrape profile %s: %w", uid, err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
