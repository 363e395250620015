package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// newCalendarProvider builds the provider selected in the config and
// verifies the calendar is reachable before anything else runs.
func newCalendarProvider(ctx context.Context, config *Config, db *sql.DB, loc *time.Location) (CalendarProvider, error) {
	var provider CalendarProvider
	var err error

	switch config.Calendar.Provider {
	case "google":
		client := getClient(ctx, oauthConfig, db)
		provider, err = NewGoogleCalendarProvider(ctx, client, config.Calendar.ID, loc)
		if err != nil {
			return nil, fmt.Errorf("error creating Google calendar provider: %w", err)
		}

	case "caldav":
		provider, err = NewCalDAVProvider(ctx, config.CalDAV.ServerURL, config.CalDAV.Username, config.CalDAV.Password, config.Calendar.ID, loc)
		if err != nil {
			return nil, fmt.Errorf("error connecting to CalDAV server: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Calendar.Provider)
	}

	if err := provider.CheckAccess(); err != nil {
		return nil, fmt.Errorf("error accessing calendar %s: %w", config.Calendar.ID, err)
	}
	return provider, nil
}
