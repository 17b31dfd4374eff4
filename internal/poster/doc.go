// Package poster decides whether a scheduled update is due, renders it and
// publishes it at most once per team-local day.
//
// A marker holding the date of the last successful post is read before
// anything is fetched and written only after the platform confirms the post.
// A crash between the two leads to a duplicate post on the next run, never to
// a skipped one. Two runs started at the same moment can both pass the marker
// check; runs are expected at most hourly so this is not guarded against.
//
// Transactions are tracked by ID instead of by date: each transaction posted
// is added to a persisted set right after it is sent.
package poster
