// Package post defines the kinds of scheduled updates the bot publishes and
// renders their text.
//
// Every update has a Type (summary, batting, pitching, news, transactions).
// The Formatter turns upstream data into the literal post text for each type
// and keeps transaction posts within the platform's 300 character limit.
package post
