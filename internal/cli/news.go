package cli

import (
	"github.com/spf13/cobra"

	"github.com/redsoxbot/soxbot/internal/post"
	"github.com/redsoxbot/soxbot/internal/poster"
	"github.com/redsoxbot/soxbot/internal/scraper"
)

var (
	flagPost  bool
	flagForce bool
)

func newNewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Post the top story from the team news page",
		Long: `Fetch the top story from the team's MLB.com news page. Without --post the
story is only printed. Posting happens between 8:00 and 18:59 team time
unless --force is given; --force never bypasses the once-a-day marker.`,
		Args: cobra.NoArgs,
		RunE: runNews,
	}

	cmd.Flags().BoolVar(&flagPost, "post", false, "Publish the story")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Post outside the news window")

	return cmd
}

func runNews(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	sender, err := rt.sender(flagPost, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	p, err := poster.New(rt.posterConfig(flagForce, !flagPost), poster.Deps{
		Markers: rt.markers,
		Sender:  sender,
		News:    scraper.New(rt.cfg.NewsURL, scraper.MLBBaseURL),
	})
	if err != nil {
		return err
	}

	res := p.MaybePost(ctx, post.TypeNews, now())
	return WriteOutput(cmd.OutOrStdout(), newOutput(rt, now(), res), rt.format, flagVerbose)
}
