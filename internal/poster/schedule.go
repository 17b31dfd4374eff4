package poster

import (
	"context"
	"time"

	"github.com/redsoxbot/soxbot/internal/post"
)

// AutoType maps an hour of the team-local day to the stat report scheduled
// for it. ok is false outside the prime hours.
func AutoType(hour int) (t post.Type, ok bool) {
	switch {
	case hour >= 8 && hour < 11:
		return post.TypeSummary, true
	case hour >= 11 && hour < 14:
		return post.TypeBatting, true
	case hour >= 14 && hour < 17:
		return post.TypePitching, true
	default:
		return "", false
	}
}

// SelectAutoType picks the stat report to post at local. Outside the prime
// hours it is the first report in priority order that has not been posted
// today, or "" when all of them have.
func (p *Poster) SelectAutoType(ctx context.Context, local time.Time) (post.Type, error) {
	if t, ok := AutoType(local.Hour()); ok {
		return t, nil
	}

	today := local.Format(post.DateLayout)
	for _, t := range post.DailyTypes {
		last, ok, err := p.deps.Markers.LastPostDate(ctx, t.String())
		if err != nil {
			return "", err
		}
		if !ok || last != today {
			return t, nil
		}
	}
	return "", nil
}

// NewsWindowOpen reports whether news may be posted at local (8:00 to 18:59)
func NewsWindowOpen(local time.Time) bool {
	h := local.Hour()
	return h >= 8 && h <= 18
}

// TransactionsWindowOpen reports whether transactions may be posted at
// local (7:00 to 22:59)
func TransactionsWindowOpen(local time.Time) bool {
	h := local.Hour()
	return h >= 7 && h <= 22
}
