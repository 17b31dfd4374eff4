package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBlueskyService = "https://bsky.social"
	blueskyTimeout        = 30 * time.Second
	postCollection        = "app.bsky.feed.post"
)

// BlueskyConfig holds the account used for posting
type BlueskyConfig struct {
	Handle      string
	AppPassword string
	Service     string // PDS base URL, default https://bsky.social
}

// Bluesky posts to a Bluesky account over XRPC
type Bluesky struct {
	http   *resty.Client
	config BlueskyConfig

	did       string
	accessJwt string
}

type createSessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type createSessionResponse struct {
	DID       string `json:"did"`
	AccessJwt string `json:"accessJwt"`
}

type feedPost struct {
	Type      string `json:"$type"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type createRecordRequest struct {
	Repo       string   `json:"repo"`
	Collection string   `json:"collection"`
	Record     feedPost `json:"record"`
}

type createRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type xrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewBluesky creates a Bluesky notifier. The session is created on the first Post.
func NewBluesky(cfg BlueskyConfig) (*Bluesky, error) {
	if cfg.Handle == "" || cfg.AppPassword == "" {
		return nil, fmt.Errorf("%w: BLUESKY_HANDLE and BLUESKY_APP_PASSWORD must be set", ErrMissingCredentials)
	}
	if cfg.Service == "" {
		cfg.Service = DefaultBlueskyService
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(cfg.Service, "/"))
	client.SetTimeout(blueskyTimeout)
	client.SetHeader("Content-Type", "application/json")

	return &Bluesky{http: client, config: cfg}, nil
}

// login creates a session unless one already exists
func (b *Bluesky) login(ctx context.Context) error {
	if b.accessJwt != "" {
		return nil
	}

	var session createSessionResponse
	var apiErr xrpcError
	res, err := b.http.R().
		SetContext(ctx).
		SetBody(createSessionRequest{Identifier: b.config.Handle, Password: b.config.AppPassword}).
		SetResult(&session).
		SetError(&apiErr).
		Post("/xrpc/com.atproto.server.createSession")
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("creating session: %s", describe(res.StatusCode(), apiErr))
	}

	b.did = session.DID
	b.accessJwt = session.AccessJwt
	return nil
}

// Post publishes text as a new feed post and returns its at:// URI
func (b *Bluesky) Post(ctx context.Context, text string) (string, error) {
	if err := b.login(ctx); err != nil {
		return "", err
	}

	record := createRecordRequest{
		Repo:       b.did,
		Collection: postCollection,
		Record: feedPost{
			Type:      postCollection,
			Text:      text,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}

	var created createRecordResponse
	var apiErr xrpcError
	res, err := b.http.R().
		SetContext(ctx).
		SetAuthToken(b.accessJwt).
		SetBody(record).
		SetResult(&created).
		SetError(&apiErr).
		Post("/xrpc/com.atproto.repo.createRecord")
	if err != nil {
		return "", fmt.Errorf("creating post: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("creating post: %s", describe(res.StatusCode(), apiErr))
	}

	return created.URI, nil
}

func describe(status int, e xrpcError) string {
	if e.Error == "" {
		return fmt.Sprintf("Bluesky API error (status %d)", status)
	}
	return fmt.Sprintf("Bluesky API error (status %d): %s: %s", status, e.Error, e.Message)
}
