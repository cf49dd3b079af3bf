package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/mock"
	"github.com/stretchr/testify/require"
)

// fakeRenderer serves pages from a map keyed by URL; any other URL fails to load.
func fakeRenderer(pages map[string]*mailscout.Page) *mock.Renderer {
	return &mock.Renderer{
		OpenFn: func(ctx context.Context) (mailscout.Session, error) {
			return &mock.Session{
				LoadFn: func(ctx context.Context, url string) (*mailscout.Page, error) {
					if page, ok := pages[url]; ok {
						return page, nil
					}
					return nil, mailscout.Errorf(mailscout.ENAVIGATION, "no route to %s", url)
				},
				CloseFn: func() error { return nil },
			}, nil
		},
		CloseFn: func() error { return nil },
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func strPtr(s string) *string {
	return &s
}
