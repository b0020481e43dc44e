// Package export writes history items to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
)

const (
	HistorySheet   = "History"
	showTimeLayout = "2006-01-02 15:04"
	pickupLayout   = "2006-01-02 15:04:05"
)

var historyHeader = []any{ //nolint:gochecknoglobals
	"Show time", "Theater", "Room", "Title", "Tickets", "Status",
	"Show ID", "Reservation set ID", "Collection number", "Picked up",
}

// WriteHistoryXLSX writes items as one sheet with a header row and one row per item.
func WriteHistoryXLSX(w io.Writer, items []model.HistoryItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), HistorySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(HistorySheet, "A1", &historyHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := historyRow(item)
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(HistorySheet, "A", "A", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(HistorySheet, "D", "D", 40); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func historyRow(item model.HistoryItem) []any {
	row := []any{
		item.ShowTime.Format(showTimeLayout),
		item.Screen.Theater,
		item.Screen.Room,
		item.Event.Title,
	}

	r := item.Reservation
	if r == nil {
		return row
	}

	var tickets any
	if r.TicketCount() > 0 {
		tickets = r.TicketCount()
	}
	var pickedUp any
	if t, ok := r.PickupTime(); ok {
		pickedUp = t.Format(pickupLayout)
	}

	return append(row, tickets, string(r.Status()), r.ShowID(), r.ReservationSetID(), r.CollectionNumber(), pickedUp)
}
