package model

import (
	"time"
)

// HistoryItem is one cinema visit: when, where, what and optionally the reservation.
type HistoryItem struct {
	ShowTime    time.Time    `json:"showTime"`
	Screen      Screen       `json:"screen"`
	Event       Event        `json:"event"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// HistoryKey identifies a HistoryItem when no identifier from the portal is available.
type HistoryKey struct {
	ShowTime time.Time
	Title    string
}

// Key returns the minute-truncated show time and the title.
func (h HistoryItem) Key() HistoryKey {
	return HistoryKey{ShowTime: h.ShowTime.Truncate(time.Minute), Title: h.Event.Title}
}

// Matches reports whether the item played at the given minute with exactly the given title.
func (h HistoryItem) Matches(showTime time.Time, title string) bool {
	return h.ShowTime.Truncate(time.Minute).Equal(showTime.Truncate(time.Minute)) && h.Event.Title == title
}

// Clone returns a copy that does not share the Reservation with h.
func (h HistoryItem) Clone() HistoryItem {
	h.Reservation = h.Reservation.Clone()
	return h
}
