package post

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redsoxbot/soxbot/internal/roster"
	"github.com/redsoxbot/soxbot/internal/scraper"
	"github.com/redsoxbot/soxbot/internal/stats"
)

// MaxLength is the Bluesky post limit in characters
const MaxLength = 300

const (
	defaultSummary      = "No summary available."
	transactionDateText = "January 02, 2006"
)

var htmlTag = regexp.MustCompile(`<[^<]+?>`)

// Formatter renders post text for one team
type Formatter struct {
	TeamName string
	SiteURL  string
}

// SummaryHTML returns the raw summary markup from the snapshot
func SummaryHTML(snap stats.Snapshot) string {
	return snap.Value("summary", defaultSummary)
}

// StripHTML removes tags and unescapes JSON-escaped slashes
func StripHTML(s string) string {
	return strings.ReplaceAll(htmlTag.ReplaceAllString(s, ""), `\/`, "/")
}

// Summary renders the daily summary post, cut to MaxLength characters
func (f Formatter) Summary(snap stats.Snapshot) string {
	prefix := fmt.Sprintf("⚾️ %s daily summary ⚾️\n\n", f.TeamName)
	return Truncate(prefix, StripHTML(SummaryHTML(snap)), MaxLength)
}

// Batting renders the batting report
func (f Formatter) Batting(snap stats.Snapshot) string {
	return fmt.Sprintf(
		"⚾️ %s batting report ⚾️\n\n"+
			"• BA: %s\n"+
			"• OBP: %s\n"+
			"• Home Runs: %s (%s in MLB)\n"+
			"• Stolen Bases: %s (%s in MLB)\n\n"+
			"More: %s",
		f.TeamName,
		snap.Value("batting_average", stats.Missing),
		snap.Value("on_base_pct", stats.Missing),
		snap.Value("home_runs", stats.Missing), snap.Rank("home_runs", stats.Missing),
		snap.Value("stolen_bases", stats.Missing), snap.Rank("stolen_bases", stats.Missing),
		f.SiteURL,
	)
}

// Pitching renders the pitching report
func (f Formatter) Pitching(snap stats.Snapshot) string {
	return fmt.Sprintf(
		"⚾️ %s pitching report ⚾️\n\n"+
			"• ERA: %s (%s in MLB)\n"+
			"• Strikeouts: %s (%s in MLB)\n"+
			"• Walks: %s (%s in MLB)\n\n"+
			"More: %s",
		f.TeamName,
		snap.Value("era", stats.Missing), snap.Rank("era", stats.Missing),
		snap.Value("strikeouts", stats.Missing), snap.Rank("strikeouts", stats.Missing),
		snap.Value("walks", stats.Missing), snap.Rank("walks", stats.Missing),
		f.SiteURL,
	)
}

// Stats renders one of the daily stat reports
func (f Formatter) Stats(t Type, snap stats.Snapshot) (string, error) {
	switch t {
	case TypeSummary:
		return f.Summary(snap), nil
	case TypeBatting:
		return f.Batting(snap), nil
	case TypePitching:
		return f.Pitching(snap), nil
	default:
		return "", fmt.Errorf("no stats template for type %q", t)
	}
}

// News renders a roundup line for each complete article, cut to MaxLength
// characters. The result is empty when no article has both a title and a URL.
func (f Formatter) News(articles []*scraper.Article) string {
	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		if !a.Complete() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s %s", a.Source, a.Title, a.URL))
	}
	return Truncate("", strings.Join(lines, "\n\n"), MaxLength)
}

// Transaction renders a roster move, truncating the move's text so the post
// never exceeds MaxLength characters
func (f Formatter) Transaction(t roster.Transaction) string {
	date := t.Date
	if parsed, err := time.Parse(DateLayout, t.Date); err == nil {
		date = parsed.Format(transactionDateText)
	}

	prefix := fmt.Sprintf("🏟️ %s transaction (%s):\n\n", f.TeamName, date)
	return Truncate(prefix, t.Text, MaxLength)
}

// Truncate joins prefix and body. When the result is longer than limit
// characters the body is cut and suffixed with "..." so the total is exactly
// limit characters.
func Truncate(prefix, body string, limit int) string {
	text := prefix + body
	if Length(text) <= limit {
		return text
	}

	keep := limit - Length(prefix) - 3
	if keep < 0 {
		keep = 0
	}
	return prefix + string([]rune(body)[:keep]) + "..."
}

// Length counts characters (Unicode code points) in s
func Length(s string) int {
	return len([]rune(s))
}
