package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is the key prefix markers are stored under
const DefaultNamespace = "redsox/data/bluesky"

const postedTransactionsFile = "posted_transactions.json"

// Markers reads and writes the bot's idempotency markers
type Markers struct {
	store     ObjectStore
	namespace string
}

type postedTransactions struct {
	TransactionIDs []string `json:"transaction_ids"`
}

// NewMarkers creates Markers over store under namespace
func NewMarkers(store ObjectStore, namespace string) *Markers {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Markers{
		store:     store,
		namespace: strings.TrimSuffix(namespace, "/"),
	}
}

// LastPostDateKey returns the key of the last-post marker for postType
func (m *Markers) LastPostDateKey(postType string) string {
	return fmt.Sprintf("%s/last_post_date_%s.txt", m.namespace, postType)
}

// PostedTransactionsKey returns the key of the posted transaction set
func (m *Markers) PostedTransactionsKey() string {
	return m.namespace + "/" + postedTransactionsFile
}

// LastPostDate returns the stored YYYY-MM-DD date for postType. ok is false
// when nothing has been posted yet.
func (m *Markers) LastPostDate(ctx context.Context, postType string) (date string, ok bool, err error) {
	data, err := m.store.Get(ctx, m.LastPostDateKey(postType))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading last post date for %s: %w", postType, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// SetLastPostDate stores date as the last post date for postType
func (m *Markers) SetLastPostDate(ctx context.Context, postType, date string) error {
	if err := m.store.Put(ctx, m.LastPostDateKey(postType), []byte(date)); err != nil {
		return fmt.Errorf("writing last post date for %s: %w", postType, err)
	}
	return nil
}

// PostedTransactionIDs returns the persisted posted IDs, oldest first
func (m *Markers) PostedTransactionIDs(ctx context.Context) ([]string, error) {
	data, err := m.store.Get(ctx, m.PostedTransactionsKey())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading posted transactions: %w", err)
	}

	var doc postedTransactions
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing posted transactions: %w", err)
	}
	if doc.TransactionIDs == nil {
		doc.TransactionIDs = []string{}
	}
	return doc.TransactionIDs, nil
}

// SavePostedTransactionIDs replaces the persisted posted IDs
func (m *Markers) SavePostedTransactionIDs(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	data, err := json.MarshalIndent(postedTransactions{TransactionIDs: ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding posted transactions: %w", err)
	}

	if err := m.store.Put(ctx, m.PostedTransactionsKey(), data); err != nil {
		return fmt.Errorf("writing posted transactions: %w", err)
	}
	return nil
}
