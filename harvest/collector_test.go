package harvest_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/harvest"
	"github.com/fwojciec/mailscout/mock"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Collect(t *testing.T) {
	t.Parallel()

	t.Run("isolates a failing site from the rest of the batch", func(t *testing.T) {
		t.Parallel()

		web := newFakeWeb()
		web.fail("https://a.com", mailscout.Errorf(mailscout.ENAVIGATION, "dns failure"))
		web.page("https://b.com", "", "x@y.com")

		c := &harvest.Collector{Scraper: &harvest.Scraper{Renderer: web.renderer()}}
		got := c.Collect(context.Background(), []string{"https://a.com", "https://b.com"}, nil)

		assert.Equal(t, []string{"https://b.com"}, got.Sites())
		emails, ok := got.Get("https://b.com")
		assert.True(t, ok)
		assert.Equal(t, mailscout.NewEmailSet("x@y.com"), emails)
	})

	t.Run("recovers from a panicking site and continues", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := &harvest.Collector{
			Scraper: &mock.SiteScraper{
				ScrapeSiteFn: func(_ context.Context, url string) mailscout.EmailSet {
					if url == "a.com" {
						panic("nil pointer in page handler")
					}
					return mailscout.NewEmailSet("b@b.com")
				},
			},
			Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		}

		var events []harvest.ProgressEvent
		got := c.Collect(context.Background(), []string{"a.com", "b.com"}, func(e harvest.ProgressEvent) {
			events = append(events, e)
		})

		assert.Equal(t, []string{"b.com"}, got.Sites())
		assert.Equal(t, []harvest.ProgressEvent{
			{URL: "a.com", Completed: 1, Total: 2, Emails: 0},
			{URL: "b.com", Completed: 2, Total: 2, Emails: 1},
		}, events)
		assert.Contains(t, buf.String(), `msg="scraping website panicked" url=a.com`)
	})

	t.Run("omits sites without addresses and keeps input order", func(t *testing.T) {
		t.Parallel()

		results := map[string]mailscout.EmailSet{
			"c.com": mailscout.NewEmailSet("c@c.com"),
			"a.com": mailscout.NewEmailSet(),
			"b.com": mailscout.NewEmailSet("b@b.com"),
		}
		var scraped []string
		c := &harvest.Collector{
			Scraper: &mock.SiteScraper{
				ScrapeSiteFn: func(_ context.Context, url string) mailscout.EmailSet {
					scraped = append(scraped, url)
					return results[url]
				},
			},
		}

		got := c.Collect(context.Background(), []string{"c.com", "a.com", "b.com"}, nil)

		assert.Equal(t, []string{"c.com", "a.com", "b.com"}, scraped)
		assert.Equal(t, []string{"c.com", "b.com"}, got.Sites())
		_, ok := got.Get("a.com")
		assert.False(t, ok)
	})

	t.Run("reports progress after each site", func(t *testing.T) {
		t.Parallel()

		c := &harvest.Collector{
			Scraper: &mock.SiteScraper{
				ScrapeSiteFn: func(_ context.Context, url string) mailscout.EmailSet {
					return mailscout.NewEmailSet("a@" + url)
				},
			},
		}

		var events []harvest.ProgressEvent
		c.Collect(context.Background(), []string{"a.com", "b.com"}, func(e harvest.ProgressEvent) {
			events = append(events, e)
		})

		assert.Equal(t, []harvest.ProgressEvent{
			{URL: "a.com", Completed: 1, Total: 2, Emails: 1},
			{URL: "b.com", Completed: 2, Total: 2, Emails: 1},
		}, events)
	})

	t.Run("logs when no site yields addresses", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := &harvest.Collector{
			Scraper: &mock.SiteScraper{
				ScrapeSiteFn: func(_ context.Context, _ string) mailscout.EmailSet {
					return mailscout.NewEmailSet()
				},
			},
			Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		}

		got := c.Collect(context.Background(), []string{"a.com"}, nil)

		assert.Equal(t, 0, got.Len())
		assert.Contains(t, buf.String(), "no emails found on any site")
	})
}
