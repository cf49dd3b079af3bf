// Package harvest orchestrates email extraction: it scrapes sites one at a
// time through a renderer, aggregates their addresses and drives the
// pipeline from input sites to raw and filtered outputs.
package harvest

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.SiteScraper = (*Scraper)(nil)

// Scraper collects the email addresses of one site from its homepage and,
// when one is linked, its contact page.
type Scraper struct {
	Renderer mailscout.Renderer

	// ContactPattern marks contact page hrefs.
	// Defaults to mailscout.DefaultContactPattern.
	ContactPattern string

	// RateLimiter, if set, is waited on before every page load.
	RateLimiter mailscout.DomainLimiter

	Logger *slog.Logger
}

// ScrapeSite renders the site and returns every address found on it.
// Failures are logged and never returned: a homepage failure yields an empty
// set, a contact page failure keeps the homepage addresses. The renderer
// session is closed before ScrapeSite returns.
func (s *Scraper) ScrapeSite(ctx context.Context, siteURL string) mailscout.EmailSet {
	logger := loggerOrDiscard(s.Logger)
	emails := make(mailscout.EmailSet)

	logger.Info("scraping website", "url", siteURL)

	session, err := s.Renderer.Open(ctx)
	if err != nil {
		logger.Error("opening session", "url", siteURL, "err", err)
		return emails
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing session", "url", siteURL, "err", err)
		}
	}()

	home, err := s.load(ctx, session, siteURL)
	if err != nil {
		logger.Error("scraping website", "url", siteURL, "err", err)
		return emails
	}
	collectPage(emails, home)

	if href, ok := mailscout.FindContactLink(home.Hrefs, s.ContactPattern); ok {
		base := home.URL
		if base == "" {
			base = siteURL
		}
		contact := absoluteURL(base, href)
		logger.Info("found contact page", "url", siteURL, "contact", contact)

		page, err := s.load(ctx, session, contact)
		if err != nil {
			logger.Error("scraping contact page", "url", siteURL, "contact", contact, "err", err)
		} else {
			collectPage(emails, page)
		}
	}

	logger.Info("scraped website", "url", siteURL, "emails", emails.Len())
	return emails
}

func (s *Scraper) load(ctx context.Context, session mailscout.Session, rawURL string) (*mailscout.Page, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			return nil, err
		}
	}

	page, err := session.Load(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, mailscout.Errorf(mailscout.EEXTRACTION, "no content for %s", rawURL)
	}
	return page, nil
}

// collectPage adds addresses from both the markup and the visible text.
func collectPage(emails mailscout.EmailSet, page *mailscout.Page) {
	emails.Union(mailscout.ExtractEmails(page.Markup))
	emails.Union(mailscout.ExtractEmails(page.VisibleText))
}

// absoluteURL resolves href against the URL of the page it was found on.
func absoluteURL(pageURL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	base, err := url.Parse(mailscout.NavigableURL(pageURL))
	if err != nil || base.Host == "" {
		return href
	}
	return base.ResolveReference(ref).String()
}

// hostOf returns the host of rawURL, or rawURL itself when it has no scheme.
func hostOf(rawURL string) string {
	u, err := url.Parse(mailscout.NavigableURL(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
