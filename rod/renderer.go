// Package rod implements mailscout.Renderer with headless Chrome via go-rod.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mailscout"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const (
	visibleTextJS = `() => document.body ? document.body.innerText : ""`

	// Anchors without an href map to null. SVG anchors expose href as an
	// object, so their attribute is used instead.
	hrefsJS = `() => Array.from(document.querySelectorAll("a")).map(a =>
		a.hasAttribute("href") ? (typeof a.href === "string" ? a.href : a.getAttribute("href")) : null)`
)

// Ensure Renderer implements mailscout.Renderer at compile time.
var _ mailscout.Renderer = (*Renderer)(nil)

// Renderer loads pages in Chrome. Every session runs in its own incognito
// browser context, so cookies and storage never carry over between sites.
type Renderer struct {
	manager *BrowserManager
	config  mailscout.RendererConfig
}

// NewRenderer launches Chrome configured by cfg.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(cfg mailscout.RendererConfig, opts ...ManagerOption) (*Renderer, error) {
	manager, err := NewBrowserManager(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{manager: manager, config: cfg}, nil
}

// Open creates an incognito context with a user agent drawn from the pool.
func (r *Renderer) Open(ctx context.Context) (mailscout.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.manager.Browser()
	if err != nil {
		return nil, err
	}

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EINTERNAL, "creating incognito context: %v", err)
	}

	return &session{
		browser:   incognito,
		config:    r.config,
		userAgent: r.config.UserAgent(),
		done:      r.manager.Release,
	}, nil
}

// Close shuts the browser down.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

type session struct {
	browser   *rod.Browser
	page      *rod.Page
	config    mailscout.RendererConfig
	userAgent string
	done      func()
	closed    atomic.Bool
}

// Load navigates the session's tab to url, waits for the load event and the
// settle delay, then snapshots the document.
func (s *session) Load(ctx context.Context, rawURL string) (*mailscout.Page, error) {
	if s.closed.Load() {
		return nil, mailscout.Errorf(mailscout.EINVALID, "session closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.config.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LoadTimeout)
		defer cancel()
	}

	tab, err := s.tab()
	if err != nil {
		return nil, err
	}
	p := tab.Context(ctx)

	target := mailscout.NavigableURL(rawURL)
	if err := p.Navigate(target); err != nil {
		return nil, mailscout.Errorf(mailscout.ENAVIGATION, "navigating to %s: %v", target, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, mailscout.Errorf(mailscout.ENAVIGATION, "waiting for %s: %v", target, err)
	}
	if err := settle(ctx, s.config.SettleDelay); err != nil {
		return nil, mailscout.Errorf(mailscout.ENAVIGATION, "settling %s: %v", target, err)
	}

	markup, err := p.HTML()
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EEXTRACTION, "reading markup of %s: %v", target, err)
	}
	text, err := p.Eval(visibleTextJS)
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EEXTRACTION, "reading text of %s: %v", target, err)
	}
	links, err := p.Eval(hrefsJS)
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EEXTRACTION, "reading links of %s: %v", target, err)
	}

	pageURL := target
	if info, err := p.Info(); err == nil && info.URL != "" {
		pageURL = info.URL
	}

	return &mailscout.Page{
		URL:         pageURL,
		Markup:      markup,
		VisibleText: text.Value.Str(),
		Hrefs:       decodeHrefs(links.Value),
	}, nil
}

// Close closes the tab and disposes of the incognito context.
func (s *session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	defer s.done()

	if s.page != nil {
		_ = s.page.Close()
	}
	return s.browser.Close()
}

// tab returns the session's page, creating it on first use.
func (s *session) tab() (*rod.Page, error) {
	if s.page != nil {
		return s.page, nil
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EINTERNAL, "opening tab: %v", err)
	}
	if s.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.userAgent}); err != nil {
			_ = page.Close()
			return nil, mailscout.Errorf(mailscout.EINTERNAL, "setting user agent: %v", err)
		}
	}
	s.page = page
	return page, nil
}

// settle waits d for client-side rendering to finish.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// decodeHrefs converts the evaluated href array, keeping nulls as nil.
func decodeHrefs(v gson.JSON) []*string {
	items := v.Arr()
	hrefs := make([]*string, 0, len(items))
	for _, item := range items {
		if item.Nil() {
			hrefs = append(hrefs, nil)
			continue
		}
		href := item.Str()
		hrefs = append(hrefs, &href)
	}
	return hrefs
}
