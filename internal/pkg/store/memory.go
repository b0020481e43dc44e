package store

import (
	"sync"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

var _ Store = &MemoryStore{}

type memoryKey struct {
	account string
	key     model.HistoryKey
}

// MemoryStore keeps items per account in insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	logger *zap.Logger
	index  map[memoryKey]int
	data   map[string][]model.HistoryItem
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		logger: logger,
		index:  map[memoryKey]int{},
		data:   map[string][]model.HistoryItem{},
	}
}

func (s *MemoryStore) UpsertHistoryItem(account string, item model.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// time.Time keys only compare equal within the same location
	key := item.Key()
	key.ShowTime = key.ShowTime.UTC()
	k := memoryKey{account: account, key: key}

	if i, ok := s.index[k]; ok {
		s.logger.Debug("replacing history item",
			zap.String("account", account),
			zap.Time("showTime", item.ShowTime),
			zap.String("title", item.Event.Title),
		)
		s.data[account][i] = item.Clone()
		return nil
	}

	s.logger.Debug("adding history item",
		zap.String("account", account),
		zap.Time("showTime", item.ShowTime),
		zap.String("title", item.Event.Title),
	)
	s.index[k] = len(s.data[account])
	s.data[account] = append(s.data[account], item.Clone())
	return nil
}

func (s *MemoryStore) GetHistoryItems(account string) ([]model.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.HistoryItem, 0, len(s.data[account]))
	for _, item := range s.data[account] {
		items = append(items, item.Clone())
	}
	return items, nil
}

// Accounts returns the accounts that have at least one item.
func (s *MemoryStore) Accounts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]string, 0, len(s.data))
	for account := range s.data {
		accounts = append(accounts, account)
	}
	return accounts
}
