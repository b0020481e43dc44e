package crawler

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/yama6a/pathe-portal/internal/app/parser"
	"github.com/yama6a/pathe-portal/internal/app/portal"
	"github.com/yama6a/pathe-portal/internal/pkg/http/httpmock"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
)

type historyFunc func(ctx context.Context) ([]model.HistoryItem, error)

func (f historyFunc) History(ctx context.Context) ([]model.HistoryItem, error) {
	return f(ctx)
}

func newPortalSource(t *testing.T, reservationsHTML string) *portal.Client {
	t.Helper()

	pages := map[string]string{
		portal.LoginPath:        `<form><input name="password"/></form>`,
		portal.AccountPath:      `<a href="/mijn-pathe/uitloggen">Uitloggen</a>`,
		portal.ReservationsPath: reservationsHTML,
		portal.LogoutPath:       "",
	}
	mock := &httpmock.ClientMock{
		FetchFunc: func(_ context.Context, rawURL string, _ map[string]string) (string, error) {
			u, err := url.Parse(rawURL)
			if err != nil {
				return "", err
			}
			body, ok := pages[u.Path]
			if !ok {
				return "", errors.New("unexpected url " + rawURL)
			}
			return body, nil
		},
		PostFunc: func(_ context.Context, _ string, _ url.Values, _ map[string]string) (string, error) {
			return "", nil
		},
	}

	logger := zap.NewNop()
	return portal.NewClient(mock, parser.New(logger, utils.PortalLocation), "https://portal.example.nl",
		portal.Credentials{Username: "moviebuff", Password: "s3cret!"}, logger)
}

func TestHistoryCrawler_Crawl(t *testing.T) {
	t.Parallel()

	goldenHTML := LoadGoldenFile(t, "../parser/testdata/reservations.html")

	tests := []struct {
		name       string
		source     HistorySource
		wantCount  int
		wantTitles []string
	}{
		{
			name:       "successful crawl via the legacy portal",
			source:     newPortalSource(t, goldenHTML),
			wantCount:  4,
			wantTitles: []string{"Movie A", "Movie B", "Movie B", "Movie C"},
		},
		{
			name:      "empty history table",
			source:    newPortalSource(t, `<table class="tblHistory"></table>`),
			wantCount: 0,
		},
		{
			name: "source error returns no results",
			source: historyFunc(func(context.Context) ([]model.HistoryItem, error) {
				return nil, errors.New("connection refused")
			}),
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := RunCrawl(t, NewHistoryCrawler("moviebuff", tt.source, zap.NewNop()))
			if len(results) != tt.wantCount {
				t.Fatalf("got %d results, want %d", len(results), tt.wantCount)
			}
			AssertAccount(t, results, "moviebuff")

			for i, title := range tt.wantTitles {
				if results[i].Item.Event.Title != title {
					t.Errorf("result %d title = %q, want %q", i, results[i].Item.Event.Title, title)
				}
			}
		})
	}
}

func TestHistoryCrawler_CrawlCancelled(t *testing.T) {
	t.Parallel()

	source := historyFunc(func(context.Context) ([]model.HistoryItem, error) {
		return []model.HistoryItem{{Event: model.Event{Title: "Movie A"}}, {Event: model.Event{Title: "Movie B"}}}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// unbuffered and never read: only cancellation lets Crawl return
	NewHistoryCrawler("moviebuff", source, zap.NewNop()).Crawl(ctx, make(chan AccountHistory))
}

func TestHistoryCrawler_Account(t *testing.T) {
	t.Parallel()

	c := NewHistoryCrawler("moviebuff", historyFunc(nil), zap.NewNop())
	if c.Account() != "moviebuff" {
		t.Errorf("Account() = %q", c.Account())
	}
}
