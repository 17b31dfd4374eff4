package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) // nolint:errcheck
}

func TestNew(t *testing.T) {
	creds := Credentials{
		Bluesky:  BlueskyConfig{Handle: "redsox.bot", AppPassword: "pw"},
		Telegram: TelegramConfig{BotToken: "token", ChatID: "@soxchannel"},
	}

	tests := []struct {
		name     string
		platform string
		wantErr  error
		wantAny  bool
	}{
		{name: "default is bluesky", platform: ""},
		{name: "bluesky", platform: "bluesky"},
		{name: "telegram", platform: "Telegram"},
		{name: "twitter without credentials", platform: "twitter", wantErr: ErrMissingCredentials},
		{name: "unknown platform", platform: "myspace", wantAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.platform, creds)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAny:
				if err == nil {
					t.Error("New() expected error")
				}
			default:
				if err != nil || n == nil {
					t.Errorf("New() = %v, %v", n, err)
				}
			}
		})
	}
}

func TestNewBluesky_MissingCredentials(t *testing.T) {
	_, err := NewBluesky(BlueskyConfig{Handle: "redsox.bot"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("NewBluesky() error = %v, want ErrMissingCredentials", err)
	}
}

func TestBlueskyPost(t *testing.T) {
	sessions := 0
	var posted []createRecordRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/xrpc/com.atproto.server.createSession":
			sessions++
			var req createSessionRequest
			json.NewDecoder(r.Body).Decode(&req) // nolint:errcheck
			if req.Identifier != "redsox.bot" || req.Password != "app-pw" {
				writeJSON(w, http.StatusUnauthorized, xrpcError{Error: "AuthenticationRequired", Message: "Invalid identifier or password"})
				return
			}
			writeJSON(w, http.StatusOK, createSessionResponse{DID: "did:plc:sox", AccessJwt: "jwt-1"})
		case "/xrpc/com.atproto.repo.createRecord":
			if got := r.Header.Get("Authorization"); got != "Bearer jwt-1" {
				t.Errorf("Authorization = %q, want Bearer jwt-1", got)
			}
			var req createRecordRequest
			json.NewDecoder(r.Body).Decode(&req) // nolint:errcheck
			posted = append(posted, req)
			writeJSON(w, http.StatusOK, createRecordResponse{URI: "at://did:plc:sox/app.bsky.feed.post/3k", CID: "cid"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	b, err := NewBluesky(BlueskyConfig{Handle: "redsox.bot", AppPassword: "app-pw", Service: server.URL})
	if err != nil {
		t.Fatalf("NewBluesky() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		uri, err := b.Post(context.Background(), "⚾️ Red Sox batting report ⚾️")
		if err != nil {
			t.Fatalf("Post() error = %v", err)
		}
		if uri != "at://did:plc:sox/app.bsky.feed.post/3k" {
			t.Errorf("Post() uri = %q", uri)
		}
	}

	if sessions != 1 {
		t.Errorf("createSession called %d times, want 1", sessions)
	}
	if len(posted) != 2 {
		t.Fatalf("createRecord called %d times, want 2", len(posted))
	}
	rec := posted[0]
	if rec.Repo != "did:plc:sox" || rec.Collection != "app.bsky.feed.post" || rec.Record.Type != "app.bsky.feed.post" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Record.Text != "⚾️ Red Sox batting report ⚾️" {
		t.Errorf("record text = %q", rec.Record.Text)
	}
}

func TestBlueskyPost_LoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, xrpcError{Error: "AuthenticationRequired", Message: "Invalid identifier or password"})
	}))
	defer server.Close()

	b, _ := NewBluesky(BlueskyConfig{Handle: "redsox.bot", AppPassword: "wrong", Service: server.URL})
	_, err := b.Post(context.Background(), "text")
	if err == nil {
		t.Fatal("Post() expected error")
	}
	if !strings.Contains(err.Error(), "AuthenticationRequired") {
		t.Errorf("error should describe the API error: %v", err)
	}
}

type fakeStatuses struct {
	got []string
	err error
}

func (f *fakeStatuses) Update(status string, _ *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.got = append(f.got, status)
	return &twitter.Tweet{IDStr: "1790000000000000000"}, nil, nil
}

func TestTwitterPost(t *testing.T) {
	statuses := &fakeStatuses{}
	n := &Twitter{statuses: statuses}

	id, err := n.Post(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if id != "1790000000000000000" {
		t.Errorf("Post() id = %q", id)
	}

	statuses.err = errors.New("rate limited")
	if _, err := n.Post(context.Background(), "hello"); err == nil {
		t.Error("Post() expected error")
	}
}

func TestNewTwitter_MissingCredentials(t *testing.T) {
	_, err := NewTwitter(TwitterConfig{APIKey: "k", APISecret: "s"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("NewTwitter() error = %v, want ErrMissingCredentials", err)
	}
}

func TestTelegramPost(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		response  map[string]interface{}
		wantID    string
		wantError bool
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			response: map[string]interface{}{"ok": true, "result": map[string]interface{}{"message_id": 42}},
			wantID:   "42",
		},
		{
			name:      "API error",
			status:    http.StatusBadRequest,
			response:  map[string]interface{}{"ok": false, "description": "Bad Request: chat not found"},
			wantError: true,
		},
		{
			name:      "not ok",
			status:    http.StatusOK,
			response:  map[string]interface{}{"ok": false, "description": "flood"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/bottest-token/sendMessage" {
					t.Errorf("path = %q", r.URL.Path)
				}
				writeJSON(w, tt.status, tt.response)
			}))
			defer server.Close()

			originalURL := telegramBaseURL
			telegramBaseURL = server.URL
			defer func() { telegramBaseURL = originalURL }()

			n, err := NewTelegram(TelegramConfig{BotToken: "test-token", ChatID: "12345"})
			if err != nil {
				t.Fatalf("NewTelegram() error = %v", err)
			}

			id, err := n.Post(context.Background(), "Test message")
			if tt.wantError {
				if err == nil {
					t.Error("Post() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Post() unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("Post() id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewDryRunNotifierTo(&buf)

	id, err := n.Post(context.Background(), "⚾️ test")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if id != "dry-run-1" {
		t.Errorf("Post() id = %q", id)
	}

	out := buf.String()
	if !strings.Contains(out, "--- Post 1 ---") || !strings.Contains(out, "⚾️ test") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "(Length: 7 characters)") {
		t.Errorf("length should count characters: %q", out)
	}
}
