package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	MLBBaseURL = "https://www.mlb.com"
	SourceMLB  = "MLB.com"
	UserAgent  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"
	Timeout    = 30 * time.Second
)

// ErrNoStory is returned when the page has no article navigation item
var ErrNoStory = errors.New("could not find the main story")

// Article is a headline/link pair from a news source
type Article struct {
	Source string `json:"source"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Complete reports whether the article has both a title and a URL
func (a *Article) Complete() bool {
	return a != nil && a.Title != "" && a.URL != ""
}

// Scraper fetches the top story from a team's MLB.com news page
type Scraper struct {
	http    *resty.Client
	url     string
	baseURL string
}

// NewsURL returns the MLB.com news page for a team slug such as "redsox"
func NewsURL(slug string) string {
	return fmt.Sprintf("%s/%s/news", MLBBaseURL, slug)
}

// New creates a Scraper for the given news page. Relative article links are
// resolved against baseURL.
func New(newsURL, baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = MLBBaseURL
	}

	client := resty.New()
	client.SetTimeout(Timeout)
	client.SetHeader("User-Agent", UserAgent)

	return &Scraper{
		http:    client,
		url:     newsURL,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchTopStory downloads the news page and returns its first story
func (s *Scraper) FetchTopStory(ctx context.Context) (*Article, error) {
	res, err := s.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	body := res.RawBody()
	defer body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode())
	}

	return s.parseTopStory(body)
}

// parseTopStory extracts the headline and link of the first article item
func (s *Scraper) parseTopStory(r io.Reader) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	item := doc.Find("li.article-navigation__item").First()
	if item.Length() == 0 {
		return nil, ErrNoStory
	}

	article := &Article{Source: SourceMLB}

	if headline := item.Find("span.article-navigation__item__meta-headline").First(); headline.Length() > 0 {
		article.Title = strings.TrimSpace(headline.Text())
	}

	if href, ok := item.Find("a").First().Attr("href"); ok {
		article.URL = s.resolve(href)
	}

	return article, nil
}

// resolve prefixes site-relative links with the base URL
func (s *Scraper) resolve(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return s.baseURL + href
}
