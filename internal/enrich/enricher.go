// Package enrich discovers contact channels for a prospect by scanning its
// website: mailto/tel links, social profile links, and an advertised contact
// page.
package enrich

import (
	"context"
	"fmt"
	"log"
	"net/url"
)

// PageFetcher is the fetch dependency; tests substitute a stub for the
// colly-backed Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// Enricher runs the scan: the prospect's landing page first, then its
// contact page when one is advertised and no direct channel was found yet.
type Enricher struct {
	fetcher   PageFetcher
	extractor *Extractor
}

// NewEnricher builds an Enricher with the embedded rules and the default
// colly fetcher.
func NewEnricher() (*Enricher, error) {
	rules, err := LoadRules()
	if err != nil {
		return nil, err
	}
	return &Enricher{fetcher: NewFetcher(), extractor: NewExtractor(rules)}, nil
}

// NewEnricherWith wires explicit dependencies.
func NewEnricherWith(fetcher PageFetcher, extractor *Extractor) *Enricher {
	return &Enricher{fetcher: fetcher, extractor: extractor}
}

// Enrich scans the site behind siteURL and returns the merged findings.
func (e *Enricher) Enrich(ctx context.Context, siteURL string) (Findings, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return Findings{}, fmt.Errorf("invalid site url: %w", err)
	}

	body, err := e.fetcher.Fetch(ctx, siteURL)
	if err != nil {
		return Findings{}, err
	}

	findings, err := e.extractor.Extract(body, base)
	if err != nil {
		return Findings{}, err
	}

	// Follow the advertised contact page only when the landing page itself
	// yielded no direct channel.
	if findings.ContactFormURL != nil && len(findings.Emails) == 0 && len(findings.Phones) == 0 {
		contactURL := *findings.ContactFormURL
		contactBody, err := e.fetcher.Fetch(ctx, contactURL)
		if err != nil {
			log.Printf("[enrich] contact page fetch failed for %s: %v", contactURL, err)
			return findings, nil
		}
		contactBase, err := url.Parse(contactURL)
		if err == nil {
			more, err := e.extractor.Extract(contactBody, contactBase)
			if err == nil {
				findings.Merge(more)
			}
		}
	}

	return findings, nil
}
