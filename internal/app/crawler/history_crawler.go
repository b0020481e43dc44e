package crawler

import (
	"context"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

var _ AccountCrawler = &HistoryCrawler{}

// HistorySource is implemented by both the legacy portal client and the JSON API client.
type HistorySource interface {
	History(ctx context.Context) ([]model.HistoryItem, error)
}

// HistoryCrawler crawls one account. Each crawler needs its own source, sessions are never shared.
type HistoryCrawler struct {
	account string
	source  HistorySource
	logger  *zap.Logger
}

func NewHistoryCrawler(account string, source HistorySource, logger *zap.Logger) *HistoryCrawler {
	return &HistoryCrawler{account: account, source: source, logger: logger}
}

func (c *HistoryCrawler) Account() string {
	return c.account
}

func (c *HistoryCrawler) Crawl(ctx context.Context, channel chan<- AccountHistory) {
	items, err := c.source.History(ctx)
	if err != nil {
		c.logger.Error("failed crawling history", zap.String("account", c.account), zap.Error(err))
		return
	}

	if len(items) == 0 {
		c.logger.Warn("no history found", zap.String("account", c.account))
		return
	}

	for _, item := range items {
		select {
		case channel <- AccountHistory{Account: c.account, Item: item}:
		case <-ctx.Done():
			c.logger.Warn("crawl cancelled", zap.String("account", c.account), zap.Error(ctx.Err()))
			return
		}
	}
}
