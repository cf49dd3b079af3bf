package mailscout

import (
	"context"
	"math/rand/v2"
	"time"
)

// Page is a snapshot of a rendered page.
type Page struct {
	// URL is the address of the loaded document, after redirects.
	URL string

	// Markup is the page source after rendering.
	Markup string

	// VisibleText is the rendered text of the body element.
	VisibleText string

	// Hrefs lists the href of every anchor in document order.
	// A nil entry is an anchor without an href attribute.
	Hrefs []*string
}

// Renderer hands out browsing sessions.
// Implementations may use browser automation to execute client-side scripts.
type Renderer interface {
	// Open acquires a session. Each site gets its own session, which the
	// caller must close before the next site begins.
	Open(ctx context.Context) (Session, error)

	// Close releases renderer resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}

// Session loads pages on behalf of one site.
type Session interface {
	// Load navigates to url, waits for the page to settle and returns its
	// content. Transport failures return ENAVIGATION; failures reading the
	// loaded document return EEXTRACTION.
	Load(ctx context.Context, url string) (*Page, error)

	// Close releases the session.
	Close() error
}

// Default renderer settings.
const (
	DefaultSettleDelay = 3 * time.Second
	DefaultLoadTimeout = 30 * time.Second
)

// DefaultUserAgents are rotated across sessions when none are configured.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/94.0.4606.61 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/93.0.4577.82 Safari/537.36",
}

// RendererConfig holds the transport settings passed to a renderer when it
// is constructed. The core never inspects them.
type RendererConfig struct {
	// UserAgents is the pool a session's user agent is drawn from.
	UserAgents []string

	// Proxy is a host:port (or URL) to route traffic through. Empty disables.
	Proxy string

	// Headless runs the browser without a window.
	Headless bool

	// SettleDelay is waited after navigation before content is read.
	SettleDelay time.Duration

	// LoadTimeout bounds a single page load.
	LoadTimeout time.Duration
}

// DefaultRendererConfig returns the configuration used when no flags are given.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		UserAgents:  DefaultUserAgents,
		Headless:    true,
		SettleDelay: DefaultSettleDelay,
		LoadTimeout: DefaultLoadTimeout,
	}
}

// UserAgent picks a user agent at random from the pool.
// Returns an empty string when the pool is empty.
func (c RendererConfig) UserAgent() string {
	if len(c.UserAgents) == 0 {
		return ""
	}
	return c.UserAgents[rand.IntN(len(c.UserAgents))]
}
