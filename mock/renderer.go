package mock

import (
	"context"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of mailscout.Renderer.
type Renderer struct {
	OpenFn  func(ctx context.Context) (mailscout.Session, error)
	CloseFn func() error
}

func (r *Renderer) Open(ctx context.Context) (mailscout.Session, error) {
	return r.OpenFn(ctx)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

var _ mailscout.Session = (*Session)(nil)

// Session is a mock implementation of mailscout.Session.
type Session struct {
	LoadFn  func(ctx context.Context, url string) (*mailscout.Page, error)
	CloseFn func() error
}

func (s *Session) Load(ctx context.Context, url string) (*mailscout.Page, error) {
	return s.LoadFn(ctx, url)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
