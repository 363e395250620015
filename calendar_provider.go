package main

import (
	"time"
)

// CalendarProvider is the contract the orchestrator needs from a calendar
// backend. A provider is bound to a single calendar at construction time.
type CalendarProvider interface {
	// CheckAccess verifies the configured calendar is reachable.
	CheckAccess() error
	// ListEvents returns events intersecting [timeMin, timeMax], ascending
	// by start time, at most maxResults of them.
	ListEvents(timeMin, timeMax time.Time, maxResults int64) ([]*Event, error)
	InsertEvent(event *Event) (*Event, error)
	GetEvent(eventID string) (*Event, error)
	UpdateEvent(eventID string, event *Event) (*Event, error)
	DeleteEvent(eventID string) error
}

type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Status      string
}
