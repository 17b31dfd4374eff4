package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redsoxbot/soxbot/internal/post"
	"github.com/redsoxbot/soxbot/internal/poster"
	"github.com/redsoxbot/soxbot/internal/stats"
)

var (
	flagPostType string
	flagDryRun   bool
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Post the daily summary, batting or pitching report",
		Long: `Post one of the daily stat reports. With --type auto the report is
chosen by the time of day: summary 8-11, batting 11-14, pitching 14-17 and
afterwards the first report not yet posted today.`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}

	cmd.Flags().StringVar(&flagPostType, "type", "auto", "Report to post: auto, summary, batting or pitching")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the post instead of publishing it")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	postType, err := post.ParseType(flagPostType)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	ctx := cmd.Context()
	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	sender, err := rt.sender(!flagDryRun, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	p, err := poster.New(rt.posterConfig(false, flagDryRun), poster.Deps{
		Markers: rt.markers,
		Sender:  sender,
		Stats:   stats.NewClient(rt.cfg.SummaryURL),
	})
	if err != nil {
		return err
	}

	res := p.MaybePost(ctx, postType, now())
	return WriteOutput(cmd.OutOrStdout(), newOutput(rt, now(), res), rt.format, flagVerbose)
}
