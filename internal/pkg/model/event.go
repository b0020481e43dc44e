package model

import "strings"

// Event is the movie or special event that was shown.
// List views truncate long titles; the truncated text is kept as-is.
type Event struct {
	Title string `json:"title,omitempty"`
}

func EventFromMovieName(raw string) Event {
	return Event{Title: strings.TrimSpace(raw)}
}

func (e Event) HasTitle() bool {
	return e.Title != ""
}
