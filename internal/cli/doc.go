// Package cli implements the soxbot command-line interface.
//
// The root command carries the team and output flags; subcommands post the
// daily stat reports (summary), the top news story (news), recent roster
// moves (transactions), and roll the team site to a new season
// (season-year). A posting run that fails at runtime is logged and reported
// but still exits 0, so a scheduler simply tries again on its next tick.
// Only configuration problems produce a non-zero exit.
package cli
