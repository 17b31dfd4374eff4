// Package scraper fetches the team's news page from MLB.com and extracts the
// top story.
//
// Only the first item of the article navigation list is used. Headline and
// link are optional in the markup; an Article with either one missing is
// returned as-is and left out of the news post by the formatter.
package scraper
