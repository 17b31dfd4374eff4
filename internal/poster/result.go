package poster

import (
	"errors"

	"github.com/redsoxbot/soxbot/internal/post"
)

// Failure categories. Errors returned in Result.Err wrap one of these.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrFetch         = errors.New("fetch failed")
	ErrSend          = errors.New("send failed")
	ErrDateParse     = errors.New("could not parse summary date")
)

// Skip reasons
const (
	ReasonAlreadyPosted  = "already posted today"
	ReasonNothingPending = "nothing pending"
	ReasonNotToday       = "not today's game"
	ReasonOffSeason      = "off-season summary"
	ReasonOutsideWindow  = "outside posting window"
	ReasonNoArticles     = "no articles found"
)

// Status is the outcome of one post attempt
type Status int

const (
	StatusPosted Status = iota
	StatusSkipped
	StatusFailed
	StatusDryRun
)

func (s Status) String() string {
	switch s {
	case StatusPosted:
		return "posted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON output
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result describes what one post attempt did
type Result struct {
	Type   post.Type `json:"type"`
	Status Status    `json:"status"`
	Reason string    `json:"reason,omitempty"`
	PostID string    `json:"post_id,omitempty"`
	Text   string    `json:"text,omitempty"`
	Err    error     `json:"-"`

	// TransactionID is set for transaction posts
	TransactionID string `json:"transaction_id,omitempty"`
}

func posted(t post.Type, id, text string) Result {
	return Result{Type: t, Status: StatusPosted, PostID: id, Text: text}
}

func skipped(t post.Type, reason string) Result {
	return Result{Type: t, Status: StatusSkipped, Reason: reason}
}

func failed(t post.Type, err error) Result {
	return Result{Type: t, Status: StatusFailed, Reason: err.Error(), Err: err}
}
