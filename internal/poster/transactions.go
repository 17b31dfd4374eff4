package poster

import (
	"context"
	"fmt"
	"time"

	"github.com/redsoxbot/soxbot/internal/logger"
	"github.com/redsoxbot/soxbot/internal/post"
	"github.com/redsoxbot/soxbot/internal/roster"
)

// BatchResult summarizes one transactions run
type BatchResult struct {
	Pending int      `json:"pending"`
	Posted  int      `json:"posted"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results,omitempty"`
	// Reason is set when the batch did not attempt any post
	Reason string `json:"reason,omitempty"`
	Err    error  `json:"-"`
}

// PostNewTransactions posts every recent transaction that has not been posted
// yet, newest first. Each posted ID is persisted right after its send so a
// later failure in the batch cannot cause a repost. A failed send is logged
// and the batch moves on.
func (p *Poster) PostNewTransactions(ctx context.Context, now time.Time) BatchResult {
	local := now.In(p.cfg.Location)

	if p.deps.Transactions == nil || p.deps.Posted == nil {
		return p.finishBatch(BatchResult{Err: fmt.Errorf("%w: no transactions source", ErrConfiguration)})
	}

	if !p.cfg.Force && !TransactionsWindowOpen(local) {
		return p.finishBatch(BatchResult{Reason: ReasonOutsideWindow})
	}

	all, err := p.deps.Transactions.Transactions(ctx)
	if err != nil {
		return p.finishBatch(BatchResult{Err: fmt.Errorf("%w: %w", ErrFetch, err)})
	}

	ids, err := p.deps.Posted.PostedTransactionIDs(ctx)
	if err != nil {
		return p.finishBatch(BatchResult{Err: fmt.Errorf("%w: %w", ErrFetch, err)})
	}
	set := roster.NewPostedSet(ids)

	pending := roster.Pending(all, set, local)
	logger.SetGauge("transactions.pending", float64(len(pending)))
	logger.Info("Loaded transactions", logger.Fields{
		"total":   len(all),
		"posted":  set.Len(),
		"pending": len(pending),
	})

	batch := BatchResult{Pending: len(pending)}
	if len(pending) == 0 {
		batch.Reason = ReasonNothingPending
		return p.finishBatch(batch)
	}

	for i, txn := range pending {
		if err := ctx.Err(); err != nil {
			batch.Err = err
			break
		}

		if set.Has(txn.ID()) {
			continue
		}

		res := p.postTransaction(ctx, txn, set)
		batch.Results = append(batch.Results, res)

		switch res.Status {
		case StatusPosted, StatusDryRun:
			batch.Posted++
		case StatusFailed:
			batch.Failed++
			continue
		}

		if res.Status == StatusPosted && i < len(pending)-1 {
			if err := p.pause(ctx); err != nil {
				batch.Err = err
				break
			}
		}
	}

	return p.finishBatch(batch)
}

func (p *Poster) postTransaction(ctx context.Context, txn roster.Transaction, set *roster.PostedSet) Result {
	id := txn.ID()
	text := p.cfg.Formatter.Transaction(txn)

	postID, err := p.deps.Sender.Post(ctx, text)
	if err != nil {
		res := failed(post.TypeTransactions, fmt.Errorf("%w: %w", ErrSend, err))
		res.TransactionID = id
		return p.finish(res)
	}

	if p.cfg.DryRun {
		return p.finish(Result{Type: post.TypeTransactions, Status: StatusDryRun, Text: text, TransactionID: id})
	}

	set.Add(id)
	if err := p.deps.Posted.SavePostedTransactionIDs(ctx, set.IDs()); err != nil {
		logger.Error("Failed to save posted transactions", logger.Fields{"transaction_id": id}, err)
	}
	logger.IncrCounter("transactions.sent")

	res := posted(post.TypeTransactions, postID, text)
	res.TransactionID = id
	return p.finish(res)
}

func (p *Poster) pause(ctx context.Context) error {
	if p.cfg.Pause <= 0 {
		return nil
	}

	timer := time.NewTimer(p.cfg.Pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Poster) finishBatch(b BatchResult) BatchResult {
	switch {
	case b.Err != nil:
		logger.Error("Transactions run failed", logger.Fields{"posted": b.Posted, "failed": b.Failed}, b.Err)
	case b.Reason != "":
		logger.Info("No transactions posted", logger.Fields{"reason": b.Reason})
	default:
		logger.Info("Transactions run complete", logger.Fields{
			"pending": b.Pending,
			"posted":  b.Posted,
			"failed":  b.Failed,
		})
	}
	return b
}
