package poster

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/redsoxbot/soxbot/internal/logger"
	"github.com/redsoxbot/soxbot/internal/notifier"
	"github.com/redsoxbot/soxbot/internal/post"
	"github.com/redsoxbot/soxbot/internal/roster"
	"github.com/redsoxbot/soxbot/internal/scraper"
	"github.com/redsoxbot/soxbot/internal/stats"
)

// DefaultPause is the delay between consecutive transaction posts
const DefaultPause = 2 * time.Second

const summaryDateLayout = "January 2 2006"

var (
	summaryDateToken = regexp.MustCompile(`\((\w+\s\d+)\)`)
	fourDigits       = regexp.MustCompile(`\d{4}`)
)

// MarkerStore persists the last successful post date per post type
type MarkerStore interface {
	LastPostDate(ctx context.Context, postType string) (date string, ok bool, err error)
	SetLastPostDate(ctx context.Context, postType, date string) error
}

// PostedStore persists the IDs of posted transactions, oldest first
type PostedStore interface {
	PostedTransactionIDs(ctx context.Context) ([]string, error)
	SavePostedTransactionIDs(ctx context.Context, ids []string) error
}

// StatsSource provides the season summary
type StatsSource interface {
	Fetch(ctx context.Context) (stats.Snapshot, error)
}

// NewsSource provides the top news story
type NewsSource interface {
	FetchTopStory(ctx context.Context) (*scraper.Article, error)
}

// TransactionSource provides the transactions archive
type TransactionSource interface {
	Transactions(ctx context.Context) ([]roster.Transaction, error)
}

// Config controls posting behavior
type Config struct {
	Location  *time.Location
	Formatter post.Formatter
	// Force ignores posting windows; daily markers still apply
	Force bool
	// DryRun hands posts to the sender but never writes markers
	DryRun bool
	// Pause between consecutive transaction posts
	Pause time.Duration
}

// Deps are the external systems a Poster talks to. Stats, News,
// Transactions and Posted are only required by the operations using them.
type Deps struct {
	Markers      MarkerStore
	Sender       notifier.Notifier
	Stats        StatsSource
	News         NewsSource
	Transactions TransactionSource
	Posted       PostedStore
}

// Poster publishes scheduled updates
type Poster struct {
	cfg  Config
	deps Deps
}

// New creates a Poster
func New(cfg Config, deps Deps) (*Poster, error) {
	if cfg.Location == nil {
		return nil, fmt.Errorf("%w: team timezone is required", ErrConfiguration)
	}
	if deps.Markers == nil {
		return nil, fmt.Errorf("%w: marker store is required", ErrConfiguration)
	}
	if deps.Sender == nil {
		return nil, fmt.Errorf("%w: sender is required", ErrConfiguration)
	}
	return &Poster{cfg: cfg, deps: deps}, nil
}

// Today returns the team-local calendar day of now
func (p *Poster) Today(now time.Time) string {
	return now.In(p.cfg.Location).Format(post.DateLayout)
}

// MaybePost publishes one update of type t unless it was already posted
// today. t may be post.TypeAuto to pick the type from the time of day.
func (p *Poster) MaybePost(ctx context.Context, t post.Type, now time.Time) Result {
	local := now.In(p.cfg.Location)
	today := local.Format(post.DateLayout)

	if t == post.TypeAuto {
		selected, err := p.SelectAutoType(ctx, local)
		if err != nil {
			return p.finish(failed(t, fmt.Errorf("%w: %w", ErrFetch, err)))
		}
		if selected == "" {
			return p.finish(skipped(t, ReasonNothingPending))
		}
		logger.Info("Selected post type", logger.Fields{"type": selected, "hour": local.Hour()})
		t = selected
	}

	if t == post.TypeNews && !p.cfg.Force && !NewsWindowOpen(local) {
		return p.finish(skipped(t, ReasonOutsideWindow))
	}

	last, ok, err := p.deps.Markers.LastPostDate(ctx, t.String())
	if err != nil {
		return p.finish(failed(t, fmt.Errorf("%w: %w", ErrFetch, err)))
	}
	if ok && last == today {
		return p.finish(skipped(t, ReasonAlreadyPosted))
	}

	text, reason, err := p.render(ctx, t, local)
	if err != nil {
		return p.finish(failed(t, err))
	}
	if reason != "" {
		return p.finish(skipped(t, reason))
	}

	if p.cfg.DryRun {
		if _, err := p.deps.Sender.Post(ctx, text); err != nil {
			return p.finish(failed(t, fmt.Errorf("%w: %w", ErrSend, err)))
		}
		return p.finish(Result{Type: t, Status: StatusDryRun, Text: text})
	}

	start := time.Now()
	id, err := p.deps.Sender.Post(ctx, text)
	logger.RecordTiming("posts.send", time.Since(start))
	if err != nil {
		return p.finish(failed(t, fmt.Errorf("%w: %w", ErrSend, err)))
	}

	// The post is out; a marker failure only risks a duplicate on the next run
	if err := p.deps.Markers.SetLastPostDate(ctx, t.String(), today); err != nil {
		logger.Error("Failed to write last post date", logger.Fields{"type": t, "date": today}, err)
	} else {
		logger.Info("Updated last post date", logger.Fields{"type": t, "date": today})
	}

	return p.finish(posted(t, id, text))
}

// render fetches the content for t and renders the post. A non-empty reason
// means the post must be skipped.
func (p *Poster) render(ctx context.Context, t post.Type, local time.Time) (text, reason string, err error) {
	switch t {
	case post.TypeSummary, post.TypeBatting, post.TypePitching:
		if p.deps.Stats == nil {
			return "", "", fmt.Errorf("%w: no stats source", ErrConfiguration)
		}
		snap, err := p.deps.Stats.Fetch(ctx)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrFetch, err)
		}
		if t == post.TypeSummary {
			if reason := p.checkSummaryDate(post.SummaryHTML(snap), local); reason != "" {
				return "", reason, nil
			}
		}
		text, err := p.cfg.Formatter.Stats(t, snap)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return text, "", nil

	case post.TypeNews:
		if p.deps.News == nil {
			return "", "", fmt.Errorf("%w: no news source", ErrConfiguration)
		}
		article, err := p.deps.News.FetchTopStory(ctx)
		if errors.Is(err, scraper.ErrNoStory) {
			return "", ReasonNoArticles, nil
		}
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrFetch, err)
		}
		text := p.cfg.Formatter.News([]*scraper.Article{article})
		if text == "" {
			return "", ReasonNoArticles, nil
		}
		return text, "", nil

	default:
		return "", "", fmt.Errorf("%w: unsupported post type %q", ErrConfiguration, t)
	}
}

// checkSummaryDate inspects the "(Month D)" token of a summary. Off-season
// banners carry a year instead of a day and are never posted; a game on
// another day is not posted either. An unreadable token does not block.
func (p *Poster) checkSummaryDate(html string, local time.Time) string {
	m := summaryDateToken.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	token := m[1]

	if fourDigits.MatchString(token) {
		logger.Info("Off-season summary detected", logger.Fields{"token": token})
		return ReasonOffSeason
	}

	gameDate, err := time.ParseInLocation(summaryDateLayout, fmt.Sprintf("%s %d", token, local.Year()), p.cfg.Location)
	if err != nil {
		logger.Warn("Skipping summary date check", logger.Fields{
			"token": token,
			"error": fmt.Errorf("%w: %w", ErrDateParse, err).Error(),
		})
		return ""
	}

	if gameDate.Format(post.DateLayout) != local.Format(post.DateLayout) {
		logger.Info("Game date is not today", logger.Fields{
			"game_date": gameDate.Format(post.DateLayout),
			"today":     local.Format(post.DateLayout),
		})
		return ReasonNotToday
	}
	return ""
}

// finish logs and counts a result
func (p *Poster) finish(res Result) Result {
	fields := logger.Fields{"type": res.Type, "status": res.Status.String()}
	if res.TransactionID != "" {
		fields["transaction_id"] = res.TransactionID
	}

	switch res.Status {
	case StatusPosted:
		fields["post_id"] = res.PostID
		logger.Info("Post published", fields)
		logger.IncrCounter("posts.sent")
	case StatusSkipped:
		fields["reason"] = res.Reason
		logger.Info("Post skipped", fields)
		logger.IncrCounter("posts.skipped")
	case StatusFailed:
		logger.Error("Post failed", fields, res.Err)
		logger.IncrCounter("posts.failed")
	case StatusDryRun:
		logger.Info("Dry run: not posting", fields)
		logger.IncrCounter("posts.dry_run")
	}
	return res
}
