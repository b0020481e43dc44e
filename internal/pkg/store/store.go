// Package store provides data persistence interfaces and implementations.
//
//go:generate go run -mod=mod github.com/matryer/moq -out storemock/store_mock.go -pkg storemock . Store
package store

import "github.com/yama6a/pathe-portal/internal/pkg/model"

// Store persists the history of portal accounts. An item replaces a stored item of the same
// account with the same HistoryItem.Key.
type Store interface {
	UpsertHistoryItem(account string, item model.HistoryItem) error
	GetHistoryItems(account string) ([]model.HistoryItem, error)
}
