// Package common holds the small helpers shared by every CLI action.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"fanscrape/models"
)

// NewLogger builds the per-invocation JSON logger. Quiet mode keeps only
// errors.
func NewLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Configure loads the config file named by the global --config flag and
// applies any flag overrides.
func Configure(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("base-url") {
		cfg.BaseURL = strings.TrimRight(c.String("base-url"), "/")
	}
	if c.IsSet("rate-limit") {
		cfg.RateLimitSecs = c.Float64("rate-limit")
	}
	if c.IsSet("output") {
		cfg.FactsFile = c.String("output")
	}
	if c.IsSet("cytoscape-out") {
		cfg.CytoscapeFile = c.String("cytoscape-out")
	}
	if c.IsSet("timestamps-out") {
		cfg.TimestampsFile = c.String("timestamps-out")
	}
	if c.IsSet("db") {
		cfg.DatabaseFile = c.String("db")
	}

	return cfg, nil
}

// ReadStoryIDs reads newline-separated story ids from a file, skipping
// blank lines.
func ReadStoryIDs(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story-id file: %w", err)
	}

	var sids []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			sids = append(sids, line)
		}
	}
	return sids, nil
}
