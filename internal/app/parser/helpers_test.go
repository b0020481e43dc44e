package parser

import (
	"os"
	"testing"
	"time"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
)

func loadGoldenFile(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", filename, err)
	}
	return string(data)
}

func newTestParser() *Parser {
	return New(zap.NewNop(), utils.PortalLocation)
}

func at(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, utils.PortalLocation)
}

// itemView flattens a HistoryItem so results can be diffed with go-cmp.
type itemView struct {
	ShowTime         time.Time
	Theater          string
	Room             string
	Title            string
	HasReservation   bool
	TicketCount      int
	Status           model.ReservationStatus
	ShowID           string
	ReservationSetID string
	CollectionNumber string
	PickupTime       time.Time
}

func view(item model.HistoryItem) itemView {
	v := itemView{
		ShowTime: item.ShowTime,
		Theater:  item.Screen.Theater,
		Room:     item.Screen.Room,
		Title:    item.Event.Title,
	}
	if r := item.Reservation; r != nil {
		v.HasReservation = true
		v.TicketCount = r.TicketCount()
		v.Status = r.Status()
		v.ShowID = r.ShowID()
		v.ReservationSetID = r.ReservationSetID()
		v.CollectionNumber = r.CollectionNumber()
		v.PickupTime, _ = r.PickupTime()
	}
	return v
}

func views(items []model.HistoryItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}
	return out
}
