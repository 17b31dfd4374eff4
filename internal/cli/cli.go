package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagTeamFile string
	flagPlatform string
	flagFormat   string
	flagVerbose  bool
)

// now is replaced in tests
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soxbot",
		Short: "Post Red Sox stats, news and transactions to social media",
		Long: `soxbot posts scheduled team updates to Bluesky, Twitter or Telegram.
Every post type is published at most once per day in the team's time zone;
markers recording the last post live in object storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(flagFormat); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagTeamFile, "team-file", "", "YAML file describing the team (default: Boston Red Sox)")
	cmd.PersistentFlags().StringVar(&flagPlatform, "platform", "", "Platform to post to: bluesky, twitter or telegram (env: PLATFORM)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and show post text")

	cmd.AddCommand(
		newSummaryCmd(),
		newNewsCmd(),
		newTransactionsCmd(),
		newSeasonYearCmd(),
	)

	return cmd
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("%w: invalid format: %s (must be 'text' or 'json')", errUsage, s)
	}
	return format, nil
}

var errUsage = errors.New("usage error")

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
