package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultArchiveKey is the object key of the transactions archive
	DefaultArchiveKey = "redsox/data/roster/redsox_transactions_archive.json"

	// RecentDays bounds how old a transaction may be and still get posted
	RecentDays = 7

	idSnippetLength = 50
	dateLayout      = "2006-01-02"
)

// Transaction is one roster move from the archive
type Transaction struct {
	Date string `json:"date"`
	Text string `json:"transaction"`
}

// ID returns the dedup key: the date plus the first 50 characters of the
// text with spaces turned into underscores and commas and periods removed.
func (t Transaction) ID() string {
	snippet := []rune(t.Text)
	if len(snippet) > idSnippetLength {
		snippet = snippet[:idSnippetLength]
	}

	r := strings.NewReplacer(" ", "_", ",", "", ".", "")
	return t.Date + "_" + r.Replace(string(snippet))
}

// ParseArchive decodes the archive's JSON array
func ParseArchive(data []byte) ([]Transaction, error) {
	var txns []Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("parsing transactions archive: %w", err)
	}
	return txns, nil
}

// Getter reads an object by key
type Getter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Archive loads transactions from an object store
type Archive struct {
	store Getter
	key   string
}

// NewArchive creates an Archive reading key from store
func NewArchive(store Getter, key string) *Archive {
	if key == "" {
		key = DefaultArchiveKey
	}
	return &Archive{store: store, key: key}
}

// Transactions loads every transaction in the archive
func (a *Archive) Transactions(ctx context.Context) ([]Transaction, error) {
	data, err := a.store.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("reading transactions archive %s: %w", a.key, err)
	}
	return ParseArchive(data)
}

// Pending returns the transactions that are not in posted and are dated on
// or after today minus RecentDays, newest first. Rows sharing an ID are
// returned once.
func Pending(all []Transaction, posted *PostedSet, today time.Time) []Transaction {
	cutoff := today.AddDate(0, 0, -RecentDays).Format(dateLayout)

	pending := make([]Transaction, 0)
	seen := make(map[string]struct{}, len(all))
	for _, t := range all {
		id := t.ID()
		if _, dup := seen[id]; dup || posted.Has(id) {
			continue
		}
		seen[id] = struct{}{}
		// Dates are YYYY-MM-DD, so string order is chronological
		if t.Date < cutoff {
			continue
		}
		pending = append(pending, t)
	}

	SortNewestFirst(pending)
	return pending
}

// SortNewestFirst orders transactions by date descending, keeping archive
// order for transactions on the same day
func SortNewestFirst(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date > txns[j].Date
	})
}
