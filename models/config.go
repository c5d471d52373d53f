package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings shared by every command. Values come
// from an optional YAML file; CLI flags override whatever is loaded here.
type Config struct {
	BaseURL       string  `yaml:"base_url"`
	RateLimitSecs float64 `yaml:"rate_limit_seconds"`

	FactsFile      string `yaml:"facts_file"`
	CytoscapeFile  string `yaml:"cytoscape_file"`
	TimestampsFile string `yaml:"timestamps_file"`
	DatabaseFile   string `yaml:"database_file"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://www.fanfiction.net",
		RateLimitSecs:  1,
		FactsFile:      "facts.txt",
		CytoscapeFile:  "cytoscape.txt",
		TimestampsFile: "timestamps.txt",
		DatabaseFile:   "fanscrape.db",
	}
}

// LoadConfig reads a YAML config file on top of the defaults. A missing file
// is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// RateLimit converts the configured politeness delay to a time.Duration.
func (c Config) RateLimit() time.Duration {
	return time.Duration(c.RateLimitSecs * float64(time.Second))
}
