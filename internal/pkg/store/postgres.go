package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

var _ Store = &PostgresStore{}

const (
	createHistoryTableSQL = `CREATE TABLE IF NOT EXISTS history_items (
	account            TEXT        NOT NULL,
	show_time          TIMESTAMPTZ NOT NULL,
	title              TEXT        NOT NULL,
	theater            TEXT        NOT NULL DEFAULT '',
	room               TEXT        NOT NULL DEFAULT '',
	ticket_count       INTEGER,
	status             TEXT,
	show_id            TEXT,
	reservation_set_id TEXT,
	collection_number  TEXT,
	pickup_time        TIMESTAMPTZ,
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (account, show_time, title)
)`

	upsertHistoryItemSQL = `INSERT INTO history_items (
	account, show_time, title, theater, room,
	ticket_count, status, show_id, reservation_set_id, collection_number, pickup_time
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (account, show_time, title) DO UPDATE SET
	theater            = EXCLUDED.theater,
	room               = EXCLUDED.room,
	ticket_count       = EXCLUDED.ticket_count,
	status             = EXCLUDED.status,
	show_id            = EXCLUDED.show_id,
	reservation_set_id = EXCLUDED.reservation_set_id,
	collection_number  = EXCLUDED.collection_number,
	pickup_time        = EXCLUDED.pickup_time,
	updated_at         = now()`

	selectHistoryItemsSQL = `SELECT
	show_time, title, theater, room,
	ticket_count, status, show_id, reservation_set_id, collection_number, pickup_time
FROM history_items
WHERE account = $1
ORDER BY show_time, title`
)

type PostgresStore struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	timeout time.Duration
}

func NewPostgres(pool *pgxpool.Pool, timeout time.Duration, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		logger:  logger,
		timeout: timeout,
	}
}

// Migrate creates the history table if it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createHistoryTableSQL); err != nil {
		return fmt.Errorf("failed to create history_items: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertHistoryItem(account string, item model.HistoryItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	r := rowFromItem(item)
	s.logger.Debug("upserting history item",
		zap.String("account", account),
		zap.Time("showTime", r.ShowTime),
		zap.String("title", r.Title),
	)

	_, err := s.pool.Exec(ctx, upsertHistoryItemSQL,
		account, r.ShowTime, r.Title, r.Theater, r.Room,
		r.TicketCount, r.Status, r.ShowID, r.ReservationSetID, r.CollectionNumber, r.PickupTime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert history item: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetHistoryItems(account string) ([]model.HistoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, selectHistoryItemsSQL, account)
	if err != nil {
		return nil, fmt.Errorf("failed to query history items: %w", err)
	}
	defer rows.Close()

	items := []model.HistoryItem{}
	for rows.Next() {
		var r historyRow
		if err := rows.Scan(
			&r.ShowTime, &r.Title, &r.Theater, &r.Room,
			&r.TicketCount, &r.Status, &r.ShowID, &r.ReservationSetID, &r.CollectionNumber, &r.PickupTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history item: %w", err)
		}

		item, err := r.toItem()
		if err != nil {
			s.logger.Warn("skipping invalid stored history item", zap.String("account", account), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history items: %w", err)
	}

	return items, nil
}

// historyRow is a history_items row. Reservation columns are NULL for items without reservation.
type historyRow struct {
	ShowTime         time.Time
	Title            string
	Theater          string
	Room             string
	TicketCount      *int
	Status           *string
	ShowID           *string
	ReservationSetID *string
	CollectionNumber *string
	PickupTime       *time.Time
}

func rowFromItem(item model.HistoryItem) historyRow {
	r := historyRow{
		ShowTime: item.ShowTime.Truncate(time.Minute),
		Title:    item.Event.Title,
		Theater:  item.Screen.Theater,
		Room:     item.Screen.Room,
	}

	res := item.Reservation
	if res == nil {
		return r
	}

	status := string(res.Status())
	r.Status = &status
	if n := res.TicketCount(); n > 0 {
		r.TicketCount = &n
	}
	r.ShowID = optional(res.ShowID())
	r.ReservationSetID = optional(res.ReservationSetID())
	r.CollectionNumber = optional(res.CollectionNumber())
	if pickup, ok := res.PickupTime(); ok {
		r.PickupTime = &pickup
	}
	return r
}

func (r historyRow) toItem() (model.HistoryItem, error) {
	item := model.HistoryItem{
		ShowTime: r.ShowTime,
		Screen:   model.Screen{Theater: r.Theater, Room: r.Room},
		Event:    model.Event{Title: r.Title},
	}
	if r.Status == nil {
		return item, nil
	}

	res := &model.Reservation{}
	if err := res.SetStatus(model.ReservationStatus(*r.Status)); err != nil {
		return model.HistoryItem{}, err //nolint:wrapcheck // carries the stored status
	}
	if r.TicketCount != nil {
		if err := res.SetTicketCount(*r.TicketCount); err != nil {
			return model.HistoryItem{}, err //nolint:wrapcheck // carries the stored count
		}
	}
	res.SetShowID(deref(r.ShowID))
	res.SetReservationSetID(deref(r.ReservationSetID))
	res.SetCollectionNumber(deref(r.CollectionNumber))
	if r.PickupTime != nil {
		res.SetPickupTime(*r.PickupTime)
	}
	item.Reservation = res

	return item, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
