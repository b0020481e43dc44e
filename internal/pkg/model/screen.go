package model

import (
	"regexp"
	"strings"
)

// roomRegex matches the room marker, e.g. "Zaal 9" or "zaal  12".
var roomRegex = regexp.MustCompile(`(?i)zaal {1,2}\d{1,2}`)

// Screen is the theater plus the room the show played in. Empty strings mean "unknown".
type Screen struct {
	Theater string `json:"theater,omitempty"`
	Room    string `json:"room,omitempty"`
}

// ScreenFromString splits a raw "theater + room" string such as "Pathé Arena Zaal 9".
// Without a room marker the whole string is taken as theater name.
func ScreenFromString(raw string) Screen {
	theater := strings.TrimSpace(roomRegex.ReplaceAllStringFunc(raw, firstMatchOnly()))
	if theater == "" {
		return Screen{Room: strings.TrimSpace(raw)}
	}

	room := strings.TrimSpace(strings.ReplaceAll(raw, theater, ""))

	return Screen{Theater: theater, Room: room}
}

// firstMatchOnly returns a replacer func that removes only the first match it is called for.
func firstMatchOnly() func(string) string {
	done := false
	return func(match string) string {
		if done {
			return match
		}
		done = true
		return ""
	}
}

func (s Screen) String() string {
	return strings.TrimSpace(s.Theater + " " + s.Room)
}
