package enrich

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Findings is what one or more page scans turned up for a business.
type Findings struct {
	Title          string   `json:"title,omitempty"`
	Emails         []string `json:"emails"`
	Phones         []string `json:"phones"`
	Facebook       *string  `json:"facebook,omitempty"`
	Instagram      *string  `json:"instagram,omitempty"`
	LinkedIn       *string  `json:"linkedin,omitempty"`
	ContactFormURL *string  `json:"contactFormUrl,omitempty"`
	PagesScanned   []string `json:"pagesScanned"`
}

// HasContact reports whether any direct channel was found.
func (f *Findings) HasContact() bool {
	return len(f.Emails) > 0 || len(f.Phones) > 0 || f.Facebook != nil || f.ContactFormURL != nil
}

// Merge folds other into f, keeping f's values where both are set.
func (f *Findings) Merge(other Findings) {
	f.Emails = appendUnique(f.Emails, other.Emails...)
	f.Phones = appendUnique(f.Phones, other.Phones...)
	if f.Facebook == nil {
		f.Facebook = other.Facebook
	}
	if f.Instagram == nil {
		f.Instagram = other.Instagram
	}
	if f.LinkedIn == nil {
		f.LinkedIn = other.LinkedIn
	}
	if f.ContactFormURL == nil {
		f.ContactFormURL = other.ContactFormURL
	}
	f.PagesScanned = appendUnique(f.PagesScanned, other.PagesScanned...)
}

// Summary renders the findings as a short note suitable for appending to a
// prospect's notes field.
func (f *Findings) Summary() string {
	var parts []string
	if len(f.Emails) > 0 {
		parts = append(parts, "emails: "+strings.Join(f.Emails, ", "))
	}
	if len(f.Phones) > 0 {
		parts = append(parts, "phones: "+strings.Join(f.Phones, ", "))
	}
	if f.Facebook != nil {
		parts = append(parts, "facebook: "+*f.Facebook)
	}
	if f.Instagram != nil {
		parts = append(parts, "instagram: "+*f.Instagram)
	}
	if f.LinkedIn != nil {
		parts = append(parts, "linkedin: "+*f.LinkedIn)
	}
	if f.ContactFormURL != nil {
		parts = append(parts, "contact form: "+*f.ContactFormURL)
	}
	if len(parts) == 0 {
		return "Contact enrichment found no direct channels."
	}
	return "Contact enrichment: " + strings.Join(parts, "; ")
}

// Extractor pulls contact channels out of fetched HTML.
type Extractor struct {
	rules    *Rules
	sanitize *bluemonday.Policy
}

func NewExtractor(rules *Rules) *Extractor {
	return &Extractor{
		rules: rules,
		// StrictPolicy strips all markup; extracted text must come out plain.
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Extract scans htmlBody, resolving relative links against base.
func (e *Extractor) Extract(htmlBody string, base *url.URL) (Findings, error) {
	findings := Findings{
		Emails:       []string{},
		Phones:       []string{},
		PagesScanned: []string{base.String()},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return findings, fmt.Errorf("parse html: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		findings.Title = strings.TrimSpace(e.sanitize.Sanitize(title))
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)

		switch {
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			if email := cleanSchemeValue(href); email != "" {
				findings.Emails = appendUnique(findings.Emails, strings.ToLower(email))
			}
			return
		case strings.HasPrefix(strings.ToLower(href), "tel:"):
			if phone := cleanSchemeValue(href); phone != "" {
				findings.Phones = appendUnique(findings.Phones, phone)
			}
			return
		}

		resolved := resolveHref(base, href)
		if resolved == nil {
			return
		}

		host := strings.ToLower(resolved.Host)
		link := resolved.String()
		switch {
		case hostIn(host, e.rules.SocialHosts.Facebook):
			if findings.Facebook == nil {
				findings.Facebook = &link
			}
		case hostIn(host, e.rules.SocialHosts.Instagram):
			if findings.Instagram == nil {
				findings.Instagram = &link
			}
		case hostIn(host, e.rules.SocialHosts.LinkedIn):
			if findings.LinkedIn == nil {
				findings.LinkedIn = &link
			}
		case resolved.Host == base.Host && e.isContactPath(resolved.Path):
			if findings.ContactFormURL == nil {
				findings.ContactFormURL = &link
			}
		}
	})

	return findings, nil
}

func (e *Extractor) isContactPath(path string) bool {
	lower := strings.ToLower(strings.TrimSuffix(path, "/"))
	for _, candidate := range e.rules.ContactPaths {
		if strings.HasSuffix(lower, candidate) {
			return true
		}
	}
	return false
}

// cleanSchemeValue strips the scheme prefix and any query suffix from
// mailto:/tel: hrefs.
func cleanSchemeValue(href string) string {
	value := href
	if idx := strings.Index(value, ":"); idx >= 0 {
		value = value[idx+1:]
	}
	if idx := strings.Index(value, "?"); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

func resolveHref(base *url.URL, href string) *url.URL {
	parsed, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}
	return resolved
}

func hostIn(host string, candidates []string) bool {
	for _, c := range candidates {
		if host == strings.ToLower(c) {
			return true
		}
	}
	return false
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
