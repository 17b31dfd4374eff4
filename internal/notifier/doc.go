// Package notifier publishes post text to social platforms.
//
// Bluesky is the primary platform; Twitter and a Telegram channel are
// supported for the same posts. Each implementation authenticates from
// explicit credentials and returns the platform's identifier for the new
// post. The dry-run notifier prints the text instead of sending it.
package notifier
