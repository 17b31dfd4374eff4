package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

// TwitterConfig holds OAuth1 user credentials
type TwitterConfig struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// Twitter posts tweets
type Twitter struct {
	statuses statusUpdater
}

// NewTwitter creates a Twitter notifier. All four credentials are required.
func NewTwitter(cfg TwitterConfig) (*Twitter, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.AccessToken == "" || cfg.AccessSecret == "" {
		return nil, fmt.Errorf("%w: TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET must be set", ErrMissingCredentials)
	}

	config := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &Twitter{statuses: client.Statuses}, nil
}

// Post tweets text and returns the tweet ID
func (n *Twitter) Post(_ context.Context, text string) (string, error) {
	tweet, _, err := n.statuses.Update(text, nil)
	if err != nil {
		return "", fmt.Errorf("failed to post tweet: %w", err)
	}
	return tweet.IDStr, nil
}
