package seasonyear

import (
	"fmt"
	"strconv"
)

const (
	// IndexFile is the site landing page
	IndexFile = "index.markdown"
	// DashboardFile holds the chart code
	DashboardFile = "assets/js/dashboard.js"
)

// Replacement swaps every occurrence of Old with New
type Replacement struct {
	Old string
	New string
}

// Step groups the replacements applied to one file
type Step struct {
	Title        string
	File         string
	Note         string
	Replacements []Replacement
}

// Plan returns the season rollover steps for a team whose data files are
// named with prefix (for example "redsox").
func Plan(prefix string, oldYear, newYear int) []Step {
	o := strconv.Itoa(oldYear)
	n := strconv.Itoa(newYear)

	pair := func(format string) Replacement {
		return Replacement{Old: fmt.Sprintf(format, o), New: fmt.Sprintf(format, n)}
	}

	return []Step{
		{
			Title: "Postseason Section Header",
			File:  IndexFile,
			Replacements: []Replacement{
				pair(`<h2 class="stat-group postseason-header">Postseason %s</h2>`),
			},
		},
		{
			Title: "Postseason Data Files",
			File:  DashboardFile,
			Replacements: []Replacement{
				pair("/assets/data/postseason/" + prefix + "_postseason_stats_%s.json"),
				pair(prefix + "/data/postseason/" + prefix + "_postseason_stats_%s.json"),
				pair("/assets/data/postseason/" + prefix + "_postseason_series_%s.json"),
				pair(prefix + "/data/postseason/" + prefix + "_postseason_series_%s.json"),
			},
		},
		{
			Title: "Year-over-Year Comparison Charts",
			File:  DashboardFile,
			Note:  fmt.Sprintf("comparison moves from %d vs %s to %s vs %s", oldYear-1, o, o, n),
			Replacements: []Replacement{
				{
					Old: fmt.Sprintf("const data%s = data.filter(d => d.season === %s);", o, o),
					New: fmt.Sprintf("const data%s = data.filter(d => d.season === %s);", n, n),
				},
				{
					Old: fmt.Sprintf("const data%s_hr = hrData.filter(d => d.season === %s);", o, o),
					New: fmt.Sprintf("const data%s_hr = hrData.filter(d => d.season === %s);", n, n),
				},
				pair("data%s"),
				pair("last%s"),
				pair("line%s"),
				pair("label%s"),
				pair("xPosText%s"),
				pair("yPosLabel%s"),
				pair("yPosStat%s"),
				pair("lastGameEntry%s"),
				pair("lastGameNumber%s"),
				pair(".text('%s')"),
				pair("// %s"),
				pair("with %s"),
			},
		},
		{
			Title: "Jekyll Data Fallback",
			File:  IndexFile,
			Replacements: []Replacement{
				pair("site.data.standings.all_teams_standings_metrics_%s"),
				pair("Fallback to %s data"),
			},
		},
		{
			Title: "Pitch Data Download Links",
			File:  IndexFile,
			Replacements: []Replacement{
				pair(prefix + "_pitches_%s.json"),
			},
		},
	}
}
