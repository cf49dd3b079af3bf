// Package http provides an HTTP-based implementation of mailscout.Renderer
// for sites that don't require JavaScript rendering.
package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// Ensure Renderer implements mailscout.Renderer at compile time.
var _ mailscout.Renderer = (*Renderer)(nil)

// Renderer loads pages with plain HTTP requests. Unlike rod.Renderer, it
// does not execute JavaScript, so it never waits for a settle delay.
type Renderer struct {
	transport    http.RoundTripper
	config       mailscout.RendererConfig
	maxBodyBytes int64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTransport sets the round tripper used for requests.
// The configured proxy is ignored when a transport is supplied.
func WithTransport(rt http.RoundTripper) Option {
	return func(r *Renderer) {
		r.transport = rt
	}
}

// WithMaxBodyBytes sets the response body limit.
// Defaults to DefaultMaxBodyBytes (10 MiB).
func WithMaxBodyBytes(n int64) Option {
	return func(r *Renderer) {
		r.maxBodyBytes = n
	}
}

// NewRenderer creates a new HTTP renderer. cfg.Proxy may be a host:port or
// a URL with an http, https or socks5 scheme.
func NewRenderer(cfg mailscout.RendererConfig, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		config:       cfg,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.transport == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.Proxy != "" {
			proxyURL, err := parseProxy(cfg.Proxy)
			if err != nil {
				return nil, err
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		r.transport = transport
	}

	return r, nil
}

// Open starts a session with its own cookie jar and a user agent drawn from
// the configured pool.
func (r *Renderer) Open(ctx context.Context) (mailscout.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &session{
		client: &http.Client{
			Transport: r.transport,
			Jar:       jar,
			Timeout:   r.config.LoadTimeout,
		},
		userAgent:    r.config.UserAgent(),
		maxBodyBytes: r.maxBodyBytes,
	}, nil
}

// Close releases idle connections.
func (r *Renderer) Close() error {
	if t, ok := r.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

type session struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	closed       atomic.Bool
}

// Load fetches url and parses the response into a page snapshot. Like a
// browser, it renders whatever body the server sends, whatever the status.
func (s *session) Load(ctx context.Context, rawURL string) (*mailscout.Page, error) {
	if s.closed.Load() {
		return nil, mailscout.Errorf(mailscout.EINVALID, "session closed")
	}

	target := mailscout.NavigableURL(rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, mailscout.Errorf(mailscout.ENAVIGATION, "invalid URL %q: %v", rawURL, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, mailscout.Errorf(mailscout.ENAVIGATION, "loading %s: %v", target, err)
	}
	defer resp.Body.Close()

	body, err := readBody(io.LimitReader(resp.Body, s.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, mailscout.Errorf(mailscout.ENAVIGATION, "reading %s: %v", target, err)
	}

	return goquery.ParsePage(body, resp.Request.URL.String())
}

func (s *session) Close() error {
	s.closed.Store(true)
	s.client.CloseIdleConnections()
	return nil
}

// readBody decodes the body to UTF-8 using the Content-Type header and the
// document's own charset declarations.
func readBody(r io.Reader, contentType string) (string, error) {
	br := bufio.NewReader(r)
	e := determineEncoding(br, contentType)
	b, err := io.ReadAll(transform.NewReader(br, e.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func determineEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	peek, err := r.Peek(1024)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(peek, contentType)
	return e
}

func parseProxy(proxy string) (*url.URL, error) {
	if !strings.Contains(proxy, "://") {
		proxy = "http://" + proxy
	}
	u, err := url.Parse(proxy)
	if err != nil || u.Host == "" {
		return nil, mailscout.Errorf(mailscout.EINVALID, "invalid proxy %q", proxy)
	}
	return u, nil
}
