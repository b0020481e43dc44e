package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
)

const (
	StatusUnknown   ReservationStatus = "unknown"
	StatusCollected ReservationStatus = "collected"
	StatusDeleted   ReservationStatus = "deleted"
)

type ReservationStatus string

// AllReservationStatuses is the closed set of valid statuses.
var AllReservationStatuses = []ReservationStatus{StatusUnknown, StatusCollected, StatusDeleted} //nolint:gochecknoglobals

func (s ReservationStatus) Valid() bool {
	return slices.Contains(AllReservationStatuses, s)
}

// ParseReservationStatusText maps the status label shown by the portal to a status.
// Labels that are not recognised map to StatusUnknown.
func ParseReservationStatusText(text string) ReservationStatus {
	str := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.HasPrefix(str, "niet"): // "niet opgehaald"
		return StatusUnknown
	case strings.Contains(str, "opgehaald"), strings.Contains(str, "collected"):
		return StatusCollected
	case strings.Contains(str, "verwijderd"), strings.Contains(str, "geannuleerd"), strings.Contains(str, "deleted"):
		return StatusDeleted
	}

	return StatusUnknown
}

// Reservation holds the ticket details of a HistoryItem. Identifiers and the pickup
// time are only known when the detail list could be correlated with the item.
type Reservation struct {
	ticketCount      int
	status           ReservationStatus
	showID           string
	reservationSetID string
	collectionNumber string
	pickupTime       *time.Time
}

func NewReservation(ticketCount int) (*Reservation, error) {
	r := &Reservation{status: StatusUnknown}
	if err := r.SetTicketCount(ticketCount); err != nil {
		return nil, err
	}
	return r, nil
}

// TicketCount returns 0 when the count was never set.
func (r *Reservation) TicketCount() int { return r.ticketCount }

func (r *Reservation) SetTicketCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", apperrors.ErrInvalidTicketCount, n)
	}
	r.ticketCount = n
	return nil
}

func (r *Reservation) Status() ReservationStatus {
	if r.status == "" {
		return StatusUnknown
	}
	return r.status
}

func (r *Reservation) SetStatus(s ReservationStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownReservationStatus, s)
	}
	r.status = s
	return nil
}

func (r *Reservation) ShowID() string { return r.showID }

func (r *Reservation) ReservationSetID() string { return r.reservationSetID }

func (r *Reservation) CollectionNumber() string { return r.collectionNumber }

func (r *Reservation) SetShowID(id string) {
	r.showID = strings.TrimSpace(id)
}

func (r *Reservation) SetReservationSetID(id string) {
	r.reservationSetID = strings.TrimSpace(id)
}

func (r *Reservation) SetCollectionNumber(n string) {
	r.collectionNumber = strings.TrimSpace(n)
}

// PickupTime returns when the tickets were collected, if known.
func (r *Reservation) PickupTime() (time.Time, bool) {
	if r.pickupTime == nil {
		return time.Time{}, false
	}
	return *r.pickupTime, true
}

func (r *Reservation) SetPickupTime(t time.Time) {
	r.pickupTime = &t
}

// Clone returns a deep copy so HistoryItems never share a Reservation.
func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	if r.pickupTime != nil {
		t := *r.pickupTime
		c.pickupTime = &t
	}
	return &c
}

type reservationJSON struct {
	TicketCount      int               `json:"ticketCount,omitempty"`
	Status           ReservationStatus `json:"status"`
	ShowID           string            `json:"showId,omitempty"`
	ReservationSetID string            `json:"reservationSetId,omitempty"`
	CollectionNumber string            `json:"collectionNumber,omitempty"`
	PickupTime       *time.Time        `json:"pickupTime,omitempty"`
}

func (r *Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(reservationJSON{
		TicketCount:      r.ticketCount,
		Status:           r.Status(),
		ShowID:           r.showID,
		ReservationSetID: r.reservationSetID,
		CollectionNumber: r.collectionNumber,
		PickupTime:       r.pickupTime,
	})
}
