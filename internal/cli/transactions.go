package cli

import (
	"github.com/spf13/cobra"

	"github.com/redsoxbot/soxbot/internal/poster"
	"github.com/redsoxbot/soxbot/internal/roster"
)

func newTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Post roster transactions from the last week",
		Long: `Post every transaction from the last seven days that has not been posted
yet, newest first. Without --post they are only printed. Posting happens
between 7:00 and 22:59 team time unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: runTransactions,
	}

	cmd.Flags().BoolVar(&flagPost, "post", false, "Publish the transactions")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Post outside the transactions window")

	return cmd
}

func runTransactions(cmd *cobra.Command, args []string) error {
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
		Markers:      rt.markers,
		Sender:       sender,
		Transactions: roster.NewArchive(rt.store, rt.cfg.Store.TransactionsKey),
		Posted:       rt.markers,
	})
	if err != nil {
		return err
	}

	batch := p.PostNewTransactions(ctx, now())
	return WriteOutput(cmd.OutOrStdout(), newBatchOutput(rt, now(), batch), rt.format, flagVerbose)
}
