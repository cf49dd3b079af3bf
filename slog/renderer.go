// Package slog provides logging decorators for mailscout services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mailscout"
)

// Ensure LoggingRenderer implements mailscout.Renderer.
var _ mailscout.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer so that every page load is logged.
type LoggingRenderer struct {
	next   mailscout.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next mailscout.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Open delegates to the wrapped renderer and wraps the returned session.
func (r *LoggingRenderer) Open(ctx context.Context) (mailscout.Session, error) {
	session, err := r.next.Open(ctx)
	if err != nil {
		r.logger.Warn("open session", "err", err)
		return nil, err
	}
	return &LoggingSession{next: session, logger: r.logger}, nil
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

// Ensure LoggingSession implements mailscout.Session.
var _ mailscout.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with debug logging.
type LoggingSession struct {
	next   mailscout.Session
	logger *slog.Logger
}

// Load delegates to the wrapped session and logs the operation.
func (s *LoggingSession) Load(ctx context.Context, url string) (page *mailscout.Page, err error) {
	defer func(begin time.Time) {
		var size int
		if page != nil {
			size = len(page.Markup)
		}
		s.logger.Debug("load",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, url)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
