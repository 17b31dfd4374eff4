package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleSummary = `[
  {"stat": "batting_average", "value": ".251", "context_value": "9th"},
  {"stat": "home_runs", "value": 142, "context_value": "12th"},
  {"stat": "era", "value": 3.85, "context_value": null},
  {"stat": "walks", "value": null},
  {"stat": "summary", "value": "<p>Red Sox beat the Yankees 5-3 (April 12)</p>"}
]`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(sampleSummary))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name      string
		stat      string
		wantValue string
		wantRank  string
	}{
		{name: "string value", stat: "batting_average", wantValue: ".251", wantRank: "9th"},
		{name: "integer keeps literal", stat: "home_runs", wantValue: "142", wantRank: "12th"},
		{name: "float keeps literal", stat: "era", wantValue: "3.85", wantRank: Missing},
		{name: "null value", stat: "walks", wantValue: Missing, wantRank: Missing},
		{name: "absent stat", stat: "stolen_bases", wantValue: Missing, wantRank: Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snap.Value(tt.stat, Missing); got != tt.wantValue {
				t.Errorf("Value(%q) = %q, want %q", tt.stat, got, tt.wantValue)
			}
			if got := snap.Rank(tt.stat, Missing); got != tt.wantRank {
				t.Errorf("Rank(%q) = %q, want %q", tt.stat, got, tt.wantRank)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte(`{"stat": "not an array"}`)); err == nil {
		t.Error("Parse() expected error for non-array document")
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleSummary)) // nolint:errcheck
	}))
	defer server.Close()

	snap, err := NewClient(server.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := snap.Value("batting_average", Missing); got != ".251" {
		t.Errorf("batting_average = %q, want .251", got)
	}
}

func TestClientFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).Fetch(context.Background()); err == nil {
		t.Error("Fetch() expected error for 403 response")
	}
}
