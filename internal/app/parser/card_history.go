package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	cardHistoryColumns = 5
	// showTimeSuffixLength is the length of "2012-08-21 22:30:00".
	showTimeSuffixLength = 19
)

// ParseCardHistory parses the card history table. Its rows have exactly five columns:
// pickup time | screen | (unused) | title followed by show time | tickets.
func (p *Parser) ParseCardHistory(html string) ([]model.HistoryItem, error) {
	items := []model.HistoryItem{}

	table, err := utils.FindTableByClass(html, historyTableMarker)
	if errors.Is(err, utils.ErrTableNotFound) {
		p.logger.Debug("no card history table found")
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read card history: %w", err)
	}

	for _, row := range table.Rows {
		if row.Header || len(row.Cells) != cardHistoryColumns {
			continue
		}

		item, ok, err := p.parseCardHistoryRow(row)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}

	return items, nil
}

func (p *Parser) parseCardHistoryRow(row utils.Row) (model.HistoryItem, bool, error) {
	pickupTime, err := utils.ParseDateTime(row.CellText(0), p.loc, utils.LayoutDayMonthYearSecond)
	if err != nil {
		p.logger.Debug("skipping card history row with invalid pickup time", zap.String("date", row.CellText(0)), zap.Error(err))
		return model.HistoryItem{}, false, nil
	}

	title, rawShowTime := splitTitleAndShowTime(row.Cells[3].RawText)
	showTime, err := utils.ParseDateTime(rawShowTime, p.loc, utils.LayoutISOSecond, utils.LayoutISOMinute)
	if err != nil {
		p.logger.Debug("skipping card history row with invalid show time", zap.String("date", rawShowTime), zap.Error(err))
		return model.HistoryItem{}, false, nil
	}

	reservation := &model.Reservation{}
	if tickets := utils.DigitsOnly(row.CellText(4)); tickets != "" {
		if err := reservation.SetTicketCount(utils.ParseCount(tickets)); err != nil {
			p.logger.Warn("invalid ticket count", zap.String("tickets", row.CellText(4)), zap.Error(err))
			return model.HistoryItem{}, false, fmt.Errorf("card history entry %q: %w", title, err)
		}
	}
	reservation.SetPickupTime(pickupTime)

	return model.HistoryItem{
		ShowTime:    showTime,
		Screen:      model.ScreenFromString(row.CellText(1)),
		Event:       model.EventFromMovieName(title),
		Reservation: reservation,
	}, true, nil
}

// splitTitleAndShowTime splits "Expendables 2, The \n2012-08-21 22:30  " into the title and the
// fixed-length show time suffix. raw is the already decoded cell text; only no-break spaces are dropped.
func splitTitleAndShowTime(raw string) (string, string) {
	runes := []rune(strings.ReplaceAll(raw, "\u00A0", ""))
	if len(runes) <= showTimeSuffixLength {
		return "", string(runes)
	}
	cut := len(runes) - showTimeSuffixLength
	return utils.NormalizeSpaces(string(runes[:cut])), string(runes[cut:])
}
