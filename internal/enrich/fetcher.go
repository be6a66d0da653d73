package enrich

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
)

// Fetcher retrieves single pages from a prospect's website. Colly restricts
// every visit to the target's own host, so enrichment never crawls away from
// the business being enriched.
type Fetcher struct {
	UserAgent      string
	RequestTimeout time.Duration
	MaxBodySize    int // bytes
}

// NewFetcher creates a Fetcher with sensible defaults.
func NewFetcher() *Fetcher {
	return &Fetcher{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		RequestTimeout: 20 * time.Second,
		MaxBodySize:    5 * 1024 * 1024,
	}
}

// Fetch downloads targetURL and returns its body as HTML.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	parsed, err := url.Parse(targetURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	c := colly.NewCollector(
		colly.UserAgent(f.UserAgent),
		colly.MaxBodySize(f.MaxBodySize),
		colly.AllowedDomains(parsed.Host),
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
	)
	c.SetRequestTimeout(f.RequestTimeout)

	var body []byte
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(targetURL); err != nil {
		return "", fmt.Errorf("visit %s: %w", targetURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fmt.Errorf("fetch %s: %w", targetURL, fetchErr)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("no response received for %s", targetURL)
	}

	return string(body), nil
}
