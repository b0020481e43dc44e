package parser

import (
	"encoding/csv"
	"strings"

	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
)

const exportSeparator = '|'

// ParseExport parses the pipe-delimited history export, one visit per line:
//
//	18-7-2014 21:30|Pathe Arena Zaal 9|Movie A
//
// Lines that cannot be parsed are dropped.
func (p *Parser) ParseExport(text string) []model.HistoryItem {
	items := []model.HistoryItem{}

	for _, line := range strings.Split(utils.NormalizeLineBreaks(text), "\n") {
		if strings.IndexRune(line, exportSeparator) <= 0 {
			continue
		}

		fields, err := splitExportLine(utils.DecodeEntities(line))
		if err != nil {
			p.logger.Debug("skipping unreadable export line", zap.String("line", line), zap.Error(err))
			continue
		}
		if len(fields) < 3 {
			p.logger.Debug("skipping export line with insufficient fields", zap.Strings("fields", fields))
			continue
		}

		showTime, err := utils.ParseDateTime(fields[0], p.loc, utils.LayoutDayMonthYearMinute)
		if err != nil {
			p.logger.Debug("skipping export line with invalid show time", zap.String("date", fields[0]), zap.Error(err))
			continue
		}

		items = append(items, model.HistoryItem{
			ShowTime: showTime,
			Screen:   model.ScreenFromString(fields[1]),
			Event:    model.EventFromMovieName(fields[2]),
		})
	}

	return items
}

func splitExportLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = exportSeparator
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	return r.Read() //nolint:wrapcheck // wrapped by the caller's log line
}
