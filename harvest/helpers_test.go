package harvest_test

import (
	"context"
	"sync"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/mock"
)

// fakeWeb is an in-memory set of pages served through mock sessions.
type fakeWeb struct {
	mu     sync.Mutex
	pages  map[string]*mailscout.Page
	errs   map[string]error
	loads  []string
	opened int
	closed int
}

func newFakeWeb() *fakeWeb {
	return &fakeWeb{
		pages: make(map[string]*mailscout.Page),
		errs:  make(map[string]error),
	}
}

func (w *fakeWeb) page(url, markup, text string, hrefs ...string) {
	p := &mailscout.Page{URL: url, Markup: markup, VisibleText: text}
	for i := range hrefs {
		p.Hrefs = append(p.Hrefs, &hrefs[i])
	}
	w.pages[url] = p
}

func (w *fakeWeb) fail(url string, err error) {
	w.errs[url] = err
}

func (w *fakeWeb) renderer() *mock.Renderer {
	return &mock.Renderer{
		OpenFn: func(_ context.Context) (mailscout.Session, error) {
			w.mu.Lock()
			w.opened++
			w.mu.Unlock()
			return &mock.Session{
				LoadFn: func(_ context.Context, url string) (*mailscout.Page, error) {
					w.mu.Lock()
					defer w.mu.Unlock()
					w.loads = append(w.loads, url)
					if err, ok := w.errs[url]; ok {
						return nil, err
					}
					if p, ok := w.pages[url]; ok {
						return p, nil
					}
					return nil, mailscout.Errorf(mailscout.ENAVIGATION, "no route to %s", url)
				},
				CloseFn: func() error {
					w.mu.Lock()
					w.closed++
					w.mu.Unlock()
					return nil
				},
			}, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (w *fakeWeb) loaded() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.loads))
	copy(out, w.loads)
	return out
}
