package enrich

import (
	"context"
	"net/url"
	"testing"
)

func mustRules(t *testing.T) *Rules {
	t.Helper()
	rules, err := LoadRules()
	if err != nil {
		t.Fatalf("failed to load embedded rules: %v", err)
	}
	return rules
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("bad url %s: %v", raw, err)
	}
	return u
}

func TestExtract(t *testing.T) {
	e := NewExtractor(mustRules(t))

	tests := []struct {
		name        string
		html        string
		emails      []string
		phones      []string
		facebook    string
		contactForm string
	}{
		{
			name:   "mailto link",
			html:   `<a href="mailto:Info@Acme.com">Email us</a>`,
			emails: []string{"info@acme.com"},
		},
		{
			name:   "mailto with subject query",
			html:   `<a href="mailto:sales@acme.com?subject=Hello">Email</a>`,
			emails: []string{"sales@acme.com"},
		},
		{
			name:   "tel links",
			html:   `<a href="tel:+441234567890">Call</a><a href="tel:01234 567890">Call</a>`,
			phones: []string{"+441234567890", "01234 567890"},
		},
		{
			name:   "duplicate emails collapse",
			html:   `<a href="mailto:info@acme.com">a</a><a href="mailto:info@acme.com">b</a>`,
			emails: []string{"info@acme.com"},
		},
		{
			name:     "facebook profile",
			html:     `<a href="https://www.facebook.com/acmeplumbing">FB</a>`,
			facebook: "https://www.facebook.com/acmeplumbing",
		},
		{
			name:        "relative contact link",
			html:        `<a href="/contact-us/">Get in touch</a>`,
			contactForm: "https://acme.com/contact-us/",
		},
		{
			name: "offsite contact link ignored",
			html: `<a href="https://other.com/contact">elsewhere</a>`,
		},
		{
			name: "javascript href ignored",
			html: `<a href="javascript:void(0)">menu</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustURL(t, "https://acme.com")
			findings, err := e.Extract(`<html><body>`+tt.html+`</body></html>`, base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(findings.Emails) != len(tt.emails) {
				t.Fatalf("expected emails %v, got %v", tt.emails, findings.Emails)
			}
			for i, e := range tt.emails {
				if findings.Emails[i] != e {
					t.Errorf("expected email %q, got %q", e, findings.Emails[i])
				}
			}

			if len(findings.Phones) != len(tt.phones) {
				t.Fatalf("expected phones %v, got %v", tt.phones, findings.Phones)
			}

			if tt.facebook == "" && findings.Facebook != nil {
				t.Errorf("expected no facebook link, got %q", *findings.Facebook)
			}
			if tt.facebook != "" && (findings.Facebook == nil || *findings.Facebook != tt.facebook) {
				t.Errorf("expected facebook %q, got %v", tt.facebook, findings.Facebook)
			}

			if tt.contactForm == "" && findings.ContactFormURL != nil {
				t.Errorf("expected no contact form, got %q", *findings.ContactFormURL)
			}
			if tt.contactForm != "" && (findings.ContactFormURL == nil || *findings.ContactFormURL != tt.contactForm) {
				t.Errorf("expected contact form %q, got %v", tt.contactForm, findings.ContactFormURL)
			}
		})
	}
}

func TestExtract_Title(t *testing.T) {
	e := NewExtractor(mustRules(t))
	base := mustURL(t, "https://acme.com")

	findings, err := e.Extract(`<html><head><title> Acme Plumbing </title></head><body></body></html>`, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if findings.Title != "Acme Plumbing" {
		t.Errorf("expected trimmed title, got %q", findings.Title)
	}
}

type stubFetcher struct {
	pages map[string]string
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, targetURL string) (string, error) {
	s.calls = append(s.calls, targetURL)
	return s.pages[targetURL], nil
}

func TestEnrich_FollowsContactPageWhenNoDirectChannel(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://acme.com":            `<html><body><a href="/contact">Contact</a></body></html>`,
		"https://acme.com/contact":    `<html><body><a href="mailto:info@acme.com">Email</a></body></html>`,
		"https://direct.com":          `<html><body><a href="mailto:hi@direct.com">Hi</a><a href="/contact">Contact</a></body></html>`,
	}}
	enricher := NewEnricherWith(fetcher, NewExtractor(mustRules(t)))

	findings, err := enricher.Enrich(context.Background(), "https://acme.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings.Emails) != 1 || findings.Emails[0] != "info@acme.com" {
		t.Errorf("expected email from contact page, got %v", findings.Emails)
	}
	if len(fetcher.calls) != 2 {
		t.Errorf("expected 2 fetches (landing + contact), got %v", fetcher.calls)
	}

	// A direct channel on the landing page stops the follow-up fetch.
	fetcher.calls = nil
	findings, err = enricher.Enrich(context.Background(), "https://direct.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("expected 1 fetch when landing page has an email, got %v", fetcher.calls)
	}
	if !findings.HasContact() {
		t.Error("expected direct contact channel")
	}
}

func TestFindingsSummary(t *testing.T) {
	fb := "https://facebook.com/acme"
	f := Findings{Emails: []string{"info@acme.com"}, Facebook: &fb}

	got := f.Summary()
	want := "Contact enrichment: emails: info@acme.com; facebook: https://facebook.com/acme"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	empty := Findings{}
	if empty.Summary() != "Contact enrichment found no direct channels." {
		t.Errorf("unexpected empty summary: %q", empty.Summary())
	}
}
