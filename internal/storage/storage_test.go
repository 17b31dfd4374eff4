package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFileStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "redsox/data/bluesky/missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Put(ctx, "redsox/data/bluesky/marker.txt", []byte("2025-06-10")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "redsox", "data", "bluesky", "marker.txt")); err != nil {
		t.Errorf("expected nested file to exist: %v", err)
	}

	data, err := store.Get(ctx, "redsox/data/bluesky/marker.txt")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != "2025-06-10" {
		t.Errorf("Get() = %q, want %q", data, "2025-06-10")
	}

	invalid := []string{"../escape.txt", "..", "a/../../b"}
	for _, key := range invalid {
		if err := store.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("Put(%q) expected error for key outside data dir", key)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	buf := []byte("v1")
	if err := store.Put(ctx, "k", buf); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	buf[0] = 'x'

	data, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("Get() = %q, want stored copy %q", data, "v1")
	}
}

func TestMarkers_LastPostDate(t *testing.T) {
	store := NewMemoryStore()
	markers := NewMarkers(store, "redsox/data/bluesky/")
	ctx := context.Background()

	if got := markers.LastPostDateKey("batting"); got != "redsox/data/bluesky/last_post_date_batting.txt" {
		t.Errorf("LastPostDateKey() = %q", got)
	}

	date, ok, err := markers.LastPostDate(ctx, "batting")
	if err != nil {
		t.Fatalf("LastPostDate() error = %v", err)
	}
	if ok || date != "" {
		t.Errorf("LastPostDate() = %q, %v; want never posted", date, ok)
	}

	// Stored values may carry a trailing newline from manual edits
	store.Put(ctx, markers.LastPostDateKey("batting"), []byte("2025-06-09\n")) // nolint:errcheck

	date, ok, err = markers.LastPostDate(ctx, "batting")
	if err != nil {
		t.Fatalf("LastPostDate() error = %v", err)
	}
	if !ok || date != "2025-06-09" {
		t.Errorf("LastPostDate() = %q, %v; want 2025-06-09, true", date, ok)
	}

	if err := markers.SetLastPostDate(ctx, "batting", "2025-06-10"); err != nil {
		t.Fatalf("SetLastPostDate() error = %v", err)
	}
	date, _, _ = markers.LastPostDate(ctx, "batting")
	if date != "2025-06-10" {
		t.Errorf("LastPostDate() after set = %q", date)
	}
}

func TestMarkers_PostedTransactions(t *testing.T) {
	store := NewMemoryStore()
	markers := NewMarkers(store, "")
	ctx := context.Background()

	ids, err := markers.PostedTransactionIDs(ctx)
	if err != nil {
		t.Fatalf("PostedTransactionIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("PostedTransactionIDs() = %v, want empty", ids)
	}

	if err := markers.SavePostedTransactionIDs(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("SavePostedTransactionIDs() error = %v", err)
	}

	raw, _ := store.Get(ctx, "redsox/data/bluesky/posted_transactions.json")
	if !strings.Contains(string(raw), `"transaction_ids"`) {
		t.Errorf("posted transactions document = %s", raw)
	}

	ids, err = markers.PostedTransactionIDs(ctx)
	if err != nil {
		t.Fatalf("PostedTransactionIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("PostedTransactionIDs() = %v, want [a b]", ids)
	}

	store.Put(ctx, markers.PostedTransactionsKey(), []byte("not json")) // nolint:errcheck
	if _, err := markers.PostedTransactionIDs(ctx); err == nil {
		t.Error("PostedTransactionIDs() expected error for corrupt document")
	}
}

// fakeS3 serves path-style GET and PUT requests from memory
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)) // nolint:errcheck
			return
		}
		w.Write(data) // nolint:errcheck
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{objects: make(map[string][]byte)}
	server := httptest.NewServer(fake)
	defer server.Close()

	ctx := context.Background()
	store, err := NewS3Store(ctx, S3Config{
		Bucket:    "redsox-data",
		Prefix:    "test/",
		Region:    "us-west-1",
		Endpoint:  server.URL,
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	if _, err := store.Get(ctx, "missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Put(ctx, "redsox/marker.txt", []byte("2025-06-10")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := fake.objects["/redsox-data/test/redsox/marker.txt"]; !ok {
		t.Errorf("expected object at path-style key, have %v", fake.objects)
	}

	data, err := store.Get(ctx, "redsox/marker.txt")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != "2025-06-10" {
		t.Errorf("Get() = %q, want %q", data, "2025-06-10")
	}
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	if _, err := NewS3Store(context.Background(), S3Config{}); err == nil {
		t.Error("NewS3Store() expected error without bucket")
	}
}
