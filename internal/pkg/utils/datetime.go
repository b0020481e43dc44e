//nolint:revive,nolintlint // I like this package name, leave me alone
package utils

import (
	"fmt"
	"time"
	_ "time/tzdata" // the portal's times are local to Europe/Amsterdam, which must resolve on every host
)

const (
	LayoutDayMonthYearMinute = "2-1-2006 15:04"
	LayoutDayMonthYearSecond = "2-1-2006 15:04:05"
	LayoutISOMinute          = "2006-1-2 15:04"
	LayoutISOSecond          = "2006-1-2 15:04:05"
)

// PortalLocation is the time zone the portal renders its timestamps in.
var PortalLocation = mustLoadLocation("Europe/Amsterdam") //nolint:gochecknoglobals

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("failed loading time zone %s: %v", name, err))
	}
	return loc
}

// ParseDateTime cleans str and tries each layout in order.
func ParseDateTime(str string, loc *time.Location, layouts ...string) (time.Time, error) {
	cleaned := CleanDateTime(str)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, cleaned, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date-time %q with layouts %v", str, layouts)
}
