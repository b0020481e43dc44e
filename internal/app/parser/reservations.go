package parser

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
)

// reservationDetailsRegex matches the detail link, e.g. javascript:GetReservationDetails('25','26','27','x').
var reservationDetailsRegex = regexp.MustCompile(
	`GetReservationDetails\(\s*'([^']*)'\s*,\s*'([^']*)'\s*,\s*'([^']*)'\s*,\s*'([^']*)'\s*\)`,
)

const (
	visitList  = 1
	detailList = 2
)

// ParseReservations parses the reservation history page. Its history table holds two lists, each
// introduced by a header row: the visits (date, screen, title, tickets) and the reservation details
// (date, screen, title, status link). The lists share no key, so every detail row is correlated to
// the first unconsumed visit at or after the previous match that has the same show minute and title.
// Detail rows without a matching visit are discarded. Visits are returned in their original order.
func (p *Parser) ParseReservations(html string) ([]model.HistoryItem, error) {
	table, err := utils.FindTableByClass(html, historyTableMarker)
	if errors.Is(err, utils.ErrTableNotFound) {
		p.logger.Debug("no reservation history table found")
		return []model.HistoryItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reservation history: %w", err)
	}

	var (
		drafts   []model.HistoryItem
		consumed = map[int]bool{}
		headers  int
		next     int // per-list search start
	)

	for _, row := range table.Rows {
		if row.Header {
			headers++
			next = 0
			continue
		}
		if len(row.Cells) < 3 {
			p.logger.Debug("skipping row with insufficient columns", zap.Int("cells", len(row.Cells)))
			continue
		}

		switch headers {
		case visitList:
			draft, ok, err := p.parseVisitRow(row)
			if err != nil {
				return nil, err
			}
			if ok {
				drafts = append(drafts, draft)
			}
		case detailList:
			matched, err := p.mergeDetailRow(row, drafts, consumed, next)
			if err != nil {
				return nil, err
			}
			if matched >= 0 {
				next = matched + 1
			}
		default:
			p.logger.Debug("ignoring row outside the visit and detail lists",
				zap.Int("headers", headers), zap.String("row", row.CellText(0)))
		}
	}

	if drafts == nil {
		drafts = []model.HistoryItem{}
	}
	return drafts, nil
}

func (p *Parser) parseVisitRow(row utils.Row) (model.HistoryItem, bool, error) {
	showTime, err := utils.ParseDateTime(row.CellText(0), p.loc, utils.LayoutDayMonthYearMinute)
	if err != nil {
		p.logger.Debug("skipping visit with invalid show time", zap.String("date", row.CellText(0)), zap.Error(err))
		return model.HistoryItem{}, false, nil
	}

	item := model.HistoryItem{
		ShowTime: showTime,
		Screen:   model.ScreenFromString(row.CellText(1)),
		Event:    model.EventFromMovieName(row.CellText(2)),
	}

	if tickets := utils.DigitsOnly(row.CellText(3)); tickets != "" {
		reservation, err := model.NewReservation(utils.ParseCount(tickets))
		if err != nil {
			p.logger.Warn("invalid ticket count", zap.String("tickets", row.CellText(3)), zap.Error(err))
			return model.HistoryItem{}, false, fmt.Errorf("visit at %s: %w", showTime.Format(time.DateTime), err)
		}
		item.Reservation = reservation
	}

	return item, true, nil
}

// mergeDetailRow enriches the matching draft and returns its index, or -1 without a match.
func (p *Parser) mergeDetailRow(row utils.Row, drafts []model.HistoryItem, consumed map[int]bool, from int) (int, error) {
	showTime, err := utils.ParseDateTime(row.CellText(0), p.loc, utils.LayoutDayMonthYearMinute)
	if err != nil {
		p.logger.Debug("skipping detail with invalid show time", zap.String("date", row.CellText(0)), zap.Error(err))
		return -1, nil
	}
	title := model.EventFromMovieName(row.CellText(2)).Title

	for i := from; i < len(drafts); i++ {
		if consumed[i] || !drafts[i].Matches(showTime, title) {
			continue
		}

		reservation, err := detailReservation(row, drafts[i].Reservation)
		if err != nil {
			p.logger.Warn("invalid reservation details", zap.String("title", title), zap.Error(err))
			return -1, err
		}
		drafts[i].Reservation = reservation
		consumed[i] = true
		return i, nil
	}

	p.logger.Debug("discarding detail without matching visit",
		zap.Time("showTime", showTime),
		zap.String("title", title),
	)
	return -1, nil
}

func detailReservation(row utils.Row, base *model.Reservation) (*model.Reservation, error) {
	reservation := base.Clone()
	if reservation == nil {
		reservation = &model.Reservation{}
	}

	statusText, href := row.CellText(3), ""
	if len(row.Cells) > 3 && row.Cells[3].Anchor != nil {
		statusText = row.Cells[3].Anchor.Text
		href = row.Cells[3].Anchor.Href
	}

	if err := reservation.SetStatus(model.ParseReservationStatusText(statusText)); err != nil {
		return nil, fmt.Errorf("failed to set status: %w", err)
	}

	if m := reservationDetailsRegex.FindStringSubmatch(href); m != nil {
		reservation.SetShowID(m[1])
		reservation.SetReservationSetID(m[2])
		reservation.SetCollectionNumber(m[3])
	}

	return reservation, nil
}
