package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
)

const (
	CardTypeUnlimited CardType = "unlimited"
	CardTypeGift      CardType = "gift"
	CardTypeLoyalty   CardType = "loyalty"
)

type CardType string

var cardNumberRegex = regexp.MustCompile(`^\d{8,19}$`)

// Session is an authenticated session of the JSON API.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry. Sessions without expiry never expire.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Card is a loyalty, gift or subscription card linked to the account.
type Card struct {
	Number     string     `json:"number"`
	Type       CardType   `json:"type"`
	Balance    int        `json:"balance"` // cents for gift cards, points for loyalty cards
	ValidUntil *time.Time `json:"validUntil,omitempty"`
	Blocked    bool       `json:"blocked"`
}

// NormalizeCardNumber strips separators and validates the result.
func NormalizeCardNumber(number string) (string, error) {
	n := strings.NewReplacer(" ", "", "-", "", ".", "").Replace(number)
	if !cardNumberRegex.MatchString(n) {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidCardNumber, number)
	}
	return n, nil
}

type Ticket struct {
	Barcode string `json:"barcode"`
	Row     string `json:"row,omitempty"`
	Seat    string `json:"seat,omitempty"`
}

// APIReservation is a reservation as returned by the JSON API.
type APIReservation struct {
	ID       string            `json:"id"`
	ShowID   string            `json:"showId"`
	ShowTime time.Time         `json:"showTime"`
	Cinema   string            `json:"cinema"`
	Screen   string            `json:"screen"`
	Movie    string            `json:"movie"`
	Status   ReservationStatus `json:"status"`
	Tickets  []Ticket          `json:"tickets"`
}

// ToHistoryItem maps the API reservation onto the model shared with the scraped portal.
func (r APIReservation) ToHistoryItem() (HistoryItem, error) {
	item := HistoryItem{
		ShowTime: r.ShowTime,
		Screen:   Screen{Theater: strings.TrimSpace(r.Cinema), Room: strings.TrimSpace(r.Screen)},
		Event:    EventFromMovieName(r.Movie),
	}
	if len(r.Tickets) == 0 {
		return item, nil
	}

	reservation, err := NewReservation(len(r.Tickets))
	if err != nil {
		return HistoryItem{}, err
	}
	status := r.Status
	if status == "" {
		status = StatusUnknown
	}
	if err := reservation.SetStatus(status); err != nil {
		return HistoryItem{}, err
	}
	reservation.SetShowID(r.ShowID)
	reservation.SetReservationSetID(r.ID)
	item.Reservation = reservation

	return item, nil
}
