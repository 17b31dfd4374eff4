package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/redsoxbot/soxbot/internal/scraper"
	"github.com/redsoxbot/soxbot/internal/stats"
)

// Team describes the club the bot posts about
type Team struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	City       string `yaml:"city"`
	Abbr       string `yaml:"abbr"`
	FullName   string `yaml:"full_name"`
	Timezone   string `yaml:"timezone"`
	SiteURL    string `yaml:"site_url"`
	SummaryURL string `yaml:"summary_url"`
	// DataPrefix names the team's static data files, e.g. redsox_pitches_2026.json
	DataPrefix string `yaml:"data_prefix"`
}

// DefaultTeam returns the Boston Red Sox
func DefaultTeam() Team {
	return Team{
		ID:         111,
		Name:       "Red Sox",
		City:       "Boston",
		Abbr:       "BOS",
		FullName:   "Boston Red Sox",
		Timezone:   "America/New_York",
		SiteURL:    "https://redsox.bot",
		SummaryURL: stats.DefaultSummaryURL,
		DataPrefix: "redsox",
	}
}

// LoadTeam reads a YAML team file. Fields left out keep their default values.
func LoadTeam(path string) (Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Team{}, fmt.Errorf("reading team file: %w", err)
	}

	team := DefaultTeam()
	if err := yaml.Unmarshal(data, &team); err != nil {
		return Team{}, fmt.Errorf("parsing team file %s: %w", path, err)
	}
	if team.Name == "" {
		return Team{}, fmt.Errorf("team file %s: name is required", path)
	}
	if strings.TrimSpace(team.Timezone) == "" {
		return Team{}, fmt.Errorf("team file %s: timezone is required", path)
	}
	return team, nil
}

// Location loads the team's time zone. An empty name is an error rather
// than UTC.
func (t Team) Location() (*time.Location, error) {
	if strings.TrimSpace(t.Timezone) == "" {
		return nil, fmt.Errorf("team timezone is required")
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading team timezone %q: %w", t.Timezone, err)
	}
	return loc, nil
}

// Slug is the team name as used in MLB.com paths, e.g. "redsox"
func (t Team) Slug() string {
	return strings.ToLower(strings.ReplaceAll(t.Name, " ", ""))
}

// NewsURL returns the team's MLB.com news page
func (t Team) NewsURL() string {
	return scraper.NewsURL(t.Slug())
}
