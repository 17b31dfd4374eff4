package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is returned when a platform's credentials are not set
var ErrMissingCredentials = errors.New("missing required credentials")

// Platform names accepted by --platform
const (
	PlatformBluesky  = "bluesky"
	PlatformTwitter  = "twitter"
	PlatformTelegram = "telegram"
)

// Notifier publishes a single post
type Notifier interface {
	// Post publishes text and returns the platform's identifier for it
	Post(ctx context.Context, text string) (string, error)
}

// Credentials groups the settings of every supported platform
type Credentials struct {
	Bluesky  BlueskyConfig
	Twitter  TwitterConfig
	Telegram TelegramConfig
}

// New creates the notifier for platform
func New(platform string, creds Credentials) (Notifier, error) {
	switch strings.ToLower(platform) {
	case "", PlatformBluesky:
		return NewBluesky(creds.Bluesky)
	case PlatformTwitter:
		return NewTwitter(creds.Twitter)
	case PlatformTelegram:
		return NewTelegram(creds.Telegram)
	default:
		return nil, fmt.Errorf("unknown platform: %s (must be bluesky, twitter or telegram)", platform)
	}
}
