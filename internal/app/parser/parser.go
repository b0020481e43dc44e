// Package parser extracts history items and profile data from the legacy portal's pages and exports.
//
// The portal's markup is inconsistent, so malformed rows are skipped and logged at debug level.
// Values that fail domain validation are returned as errors.
package parser

import (
	"time"

	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
)

// historyTableMarker is contained in the class attribute of both history tables.
const historyTableMarker = "history"

// Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	logger *zap.Logger
	loc    *time.Location
}

// New returns a Parser interpreting dates in loc. A nil loc means the portal's own time zone.
func New(logger *zap.Logger, loc *time.Location) *Parser {
	if loc == nil {
		loc = utils.PortalLocation
	}
	return &Parser{logger: logger, loc: loc}
}
