package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"fanscrape/internal/db"
	"fanscrape/internal/index"
	"fanscrape/internal/scrapecmd"
)

func main() {
	app := &cli.App{
		Name:    "fanscrape",
		Usage:   "scrape fan-fiction metadata into predicate-logic facts and Cytoscape edges",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "fanscrape.yaml",
				Usage: "path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "log errors only",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "site base URL (overrides config)",
			},
			&cli.Float64Flag{
				Name:  "rate-limit",
				Usage: "politeness delay in seconds before each fetch (overrides config)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "predicate facts output file (overrides config)",
			},
			&cli.StringFlag{
				Name:  "cytoscape-out",
				Usage: "cytoscape edge-list output file (overrides config)",
			},
			&cli.StringFlag{
				Name:  "timestamps-out",
				Usage: "timeline output file (overrides config)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "review store database file (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "story",
				Usage: "scrape a single story and print its facts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sid", Usage: "story id", Required: true},
				},
				Action: scrapecmd.StoryAction,
			},
			{
				Name:  "run",
				Usage: "run the full three-phase pipeline over a file of story ids",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "newline-separated story-id file", Required: true},
					&cli.BoolFlag{Name: "no-db", Usage: "skip persisting review text"},
				},
				Action: scrapecmd.RunAction,
			},
			{
				Name:  "listing",
				Usage: "collect every story id of a category/fandom listing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "listing URL", Required: true},
					&cli.StringFlag{Name: "out", Usage: "write ids to a file instead of stdout"},
				},
				Action: scrapecmd.ListingAction,
			},
			{
				Name:  "profile",
				Usage: "scrape a single user profile and print it as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uid", Usage: "user id", Required: true},
				},
				Action: scrapecmd.ProfileAction,
			},
			{
				Name:  "index",
				Usage: "build and query the inverted index over scraped text",
				Subcommands: []*cli.Command{
					{
						Name:   "build",
						Usage:  "index all stored review text",
						Action: index.BuildAction,
					},
					{
						Name:  "story",
						Usage: "fetch one story chapter and index its text",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "sid", Usage: "story id", Required: true},
						},
						Action: index.StoryAction,
					},
					{
						Name:  "search",
						Usage: "look a term up in the index",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "term", Usage: "query term", Required: true},
						},
						Action: index.SearchAction,
					},
				},
			},
			{
				Name:  "db",
				Usage: "browse the review store",
				Subcommands: []*cli.Command{
					{
						Name:  "reviews",
						Usage: "list stored reviews",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "sid", Usage: "restrict to one story"},
							&cli.IntFlag{Name: "limit", Value: 50, Usage: "max rows (0 = all)"},
						},
						Action: db.ReviewsAction,
					},
					{
						Name:  "terms",
						Usage: "list the most frequent indexed terms",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 25, Usage: "max terms (0 = all)"},
						},
						Action: db.TermsAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
