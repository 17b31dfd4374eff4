// Package storage persists the bot's posting markers in an object store.
//
// Three ObjectStore backends are provided: S3 (production, shared between
// scheduled runs), a directory of local files (development, default
// location ~/.local/share/soxbot) and an in-memory map (dry runs and tests).
// Markers layers the marker keys and formats on top of any of them. A key
// that does not exist reads as ErrNotFound, never as a failure.
package storage
