package crawler

import (
	"context"
	"sync"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/store"
	"go.uber.org/zap"
)

// AccountHistory is one history item of one account.
type AccountHistory struct {
	Account string
	Item    model.HistoryItem
}

type AccountCrawler interface {
	Account() string
	Crawl(ctx context.Context, result chan<- AccountHistory)
}

type Service struct {
	store    store.Store
	crawlers []AccountCrawler
	logger   *zap.Logger
}

func NewService(s store.Store, crawlers []AccountCrawler, logger *zap.Logger) *Service {
	return &Service{
		store:    s,
		crawlers: crawlers,
		logger:   logger,
	}
}

// Crawl runs all account crawlers concurrently and stores their results.
func (s *Service) Crawl(ctx context.Context) {
	var wg sync.WaitGroup
	objChan := make(chan AccountHistory)

	for _, c := range s.crawlers {
		wg.Add(1)
		go func(c AccountCrawler) {
			defer wg.Done()
			c.Crawl(ctx, objChan)
		}(c)
	}

	done := make(chan struct{})
	go s.recv(objChan, done)

	wg.Wait()
	close(objChan)
	<-done
	s.logger.Info("all crawlers finished")

	for _, c := range s.crawlers {
		s.logSummary(c.Account())
	}
}

func (s *Service) recv(c <-chan AccountHistory, done chan<- struct{}) {
	defer close(done)
	s.logger.Info("starting crawler receiver")

	for h := range c {
		if err := s.store.UpsertHistoryItem(h.Account, h.Item); err != nil {
			s.logger.Error("failed to upsert history item",
				zap.String("account", h.Account),
				zap.Time("showTime", h.Item.ShowTime),
				zap.String("title", h.Item.Event.Title),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) logSummary(account string) {
	items, err := s.store.GetHistoryItems(account)
	if err != nil {
		s.logger.Error("failed to get history items", zap.String("account", account), zap.Error(err))
		return
	}

	summary := make(map[model.ReservationStatus]uint)
	var withoutReservation uint
	for _, item := range items {
		if item.Reservation == nil {
			withoutReservation++
			continue
		}
		summary[item.Reservation.Status()]++
	}

	s.logger.Info("crawl results",
		zap.String("account", account),
		zap.Int("items", len(items)),
		zap.Uint("collected", summary[model.StatusCollected]),
		zap.Uint("deleted", summary[model.StatusDeleted]),
		zap.Uint("unknown", summary[model.StatusUnknown]),
		zap.Uint("withoutReservation", withoutReservation),
	)
}
