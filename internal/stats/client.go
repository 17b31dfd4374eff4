package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultSummaryURL = "https://redsox-data.s3.amazonaws.com/redsox/data/standings/season_summary_latest.json"
	Timeout           = 30 * time.Second
)

// Client downloads the season summary document
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a Client for the given document URL
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultSummaryURL
	}

	client := resty.New()
	client.SetTimeout(Timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{http: client, url: url}
}

// Fetch downloads and parses the current season summary
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetching season summary: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetching season summary: unexpected status code: %d", res.StatusCode())
	}

	return Parse(res.Body())
}
