package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/mailscout"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is how many sessions a browser serves before it is
// replaced by a fresh process.
const DefaultRecycleAfter = 75

// BrowserManager owns the Chrome process shared by all sessions and swaps it
// for a new one every recycleAfter sessions, since a long-lived Chrome keeps
// growing in memory across many sites.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	config       mailscout.RendererConfig
	recycleAfter int64
	served       atomic.Int64
	closed       atomic.Bool

	mu      sync.Mutex
	current *chrome
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithRecycleAfter sets how many sessions a browser serves before it is replaced.
func WithRecycleAfter(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.recycleAfter = n
	}
}

// NewBrowserManager launches Chrome with the proxy and headless settings of
// cfg. Close must be called to stop the process.
func NewBrowserManager(cfg mailscout.RendererConfig, opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{config: cfg, recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(bm)
	}

	c, err := startChrome(cfg)
	if err != nil {
		return nil, err
	}
	bm.current = c
	return bm, nil
}

// Browser returns the browser for the next session, replacing the process
// first when it has served its quota.
func (bm *BrowserManager) Browser() (*rod.Browser, error) {
	if bm.closed.Load() {
		return nil, mailscout.Errorf(mailscout.EINVALID, "browser manager closed")
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.served.Load() >= bm.recycleAfter {
		// On relaunch failure the old process keeps serving.
		if fresh, err := startChrome(bm.config); err == nil {
			_ = bm.current.stop()
			bm.current = fresh
			bm.served.Store(0)
		}
	}
	return bm.current.browser, nil
}

// Release counts a finished session toward the recycling quota.
func (bm *BrowserManager) Release() {
	bm.served.Add(1)
}

// Close stops the browser. Later calls are no-ops.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := bm.current.stop()
	bm.current = nil
	return err
}

// PID returns the launcher process ID, or 0 once closed.
func (bm *BrowserManager) PID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// chrome is one launched browser process and its CDP connection.
type chrome struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func startChrome(cfg mailscout.RendererConfig) (*chrome, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-blink-features", "AutomationControlled").
		NoSandbox(true).
		Leakless(true).
		Headless(cfg.Headless)
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &chrome{browser: browser, launcher: l}, nil
}

func (c *chrome) stop() error {
	if c == nil {
		return nil
	}
	err := c.browser.Close()
	c.launcher.Kill()
	return err
}
