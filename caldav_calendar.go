package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
)

// CalDAVProvider serves the same contract as the Google provider against
// any CalDAV collection (Nextcloud, Radicale, Fastmail, ...). The calendar
// ID is the full URL of the collection.
type CalDAVProvider struct {
	client  *caldav.Client
	ctx     context.Context
	calPath string
	loc     *time.Location
}

func NewCalDAVProvider(ctx context.Context, serverURL, username, password, calendarURL string, loc *time.Location) (*CalDAVProvider, error) {
	if _, err := url.Parse(serverURL); err != nil {
		return nil, fmt.Errorf("invalid CalDAV server URL: %w", err)
	}
	calURL, err := url.Parse(calendarURL)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar URL: %w", err)
	}

	var httpClient webdav.HTTPClient = http.DefaultClient
	if username != "" && password != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(httpClient, username, password)
	}

	c, err := caldav.NewClient(httpClient, serverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create CalDAV client: %w", err)
	}

	return &CalDAVProvider{
		client:  c,
		ctx:     ctx,
		calPath: strings.TrimRight(calURL.Path, "/"),
		loc:     loc,
	}, nil
}

func (c *CalDAVProvider) CheckAccess() error {
	// The calendar home set is the parent of the collection path.
	homeSetPath := "/"
	parts := strings.Split(strings.TrimLeft(c.calPath, "/"), "/")
	if len(parts) > 1 {
		homeSetPath = "/" + strings.Join(parts[:len(parts)-1], "/")
	}

	calendars, err := c.client.FindCalendars(c.ctx, homeSetPath)
	if err != nil {
		return fmt.Errorf("failed to find calendars: %w", err)
	}
	for _, cal := range calendars {
		if strings.TrimRight(cal.Path, "/") == c.calPath {
			return nil
		}
	}
	return fmt.Errorf("calendar not found at path: %s", c.calPath)
}

func (c *CalDAVProvider) ListEvents(timeMin, timeMax time.Time, maxResults int64) ([]*Event, error) {
	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: timeMin,
				End:   timeMax,
			}},
		},
	}

	objects, err := c.client.QueryCalendar(c.ctx, c.calPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var result []*Event
	for _, obj := range objects {
		for _, comp := range obj.Data.Component.Children {
			if comp.Name != "VEVENT" {
				continue
			}
			result = append(result, c.fromComponent(comp))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	if maxResults > 0 && int64(len(result)) > maxResults {
		result = result[:maxResults]
	}
	return result, nil
}

func (c *CalDAVProvider) InsertEvent(event *Event) (*Event, error) {
	eventUID := "gcalagent-" + time.Now().UTC().Format("20060102T150405Z")
	cal := c.toCalendar(eventUID, event)

	path := c.calPath + "/" + eventUID + ".ics"
	if _, err := c.client.PutCalendarObject(c.ctx, path, cal); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	created := *event
	created.ID = eventUID
	if created.Status == "" {
		created.Status = "confirmed"
	}
	return &created, nil
}

func (c *CalDAVProvider) GetEvent(eventID string) (*Event, error) {
	path := c.calPath + "/" + eventID + ".ics"
	object, err := c.client.GetCalendarObject(c.ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	for _, comp := range object.Data.Component.Children {
		if comp.Name == "VEVENT" {
			return c.fromComponent(comp), nil
		}
	}
	return nil, fmt.Errorf("no VEVENT component found in calendar object")
}

func (c *CalDAVProvider) UpdateEvent(eventID string, event *Event) (*Event, error) {
	cal := c.toCalendar(eventID, event)

	path := c.calPath + "/" + eventID + ".ics"
	if _, err := c.client.PutCalendarObject(c.ctx, path, cal); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	updated := *event
	updated.ID = eventID
	return &updated, nil
}

func (c *CalDAVProvider) DeleteEvent(eventID string) error {
	path := c.calPath + "/" + eventID + ".ics"
	if err := c.client.Client.RemoveAll(c.ctx, path); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (c *CalDAVProvider) toCalendar(uid string, event *Event) *ical.Calendar {
	icalEvent := ical.NewEvent()
	icalEvent.Component.Props.SetText("UID", uid)
	icalEvent.Component.Props.SetText("SUMMARY", event.Summary)
	if event.Description != "" {
		icalEvent.Component.Props.SetText("DESCRIPTION", event.Description)
	}
	icalEvent.Component.Props.SetDateTime("DTSTART", event.Start)
	icalEvent.Component.Props.SetDateTime("DTEND", event.End)
	status := "CONFIRMED"
	if event.Status != "" {
		status = strings.ToUpper(event.Status)
	}
	icalEvent.Component.Props.SetText("STATUS", status)

	cal := ical.NewCalendar()
	cal.Component.Props.SetText("VERSION", "2.0")
	cal.Component.Props.SetText("PRODID", "-//gcalagent//EN")
	cal.Component.Children = append(cal.Component.Children, icalEvent.Component)
	return cal
}

func (c *CalDAVProvider) fromComponent(comp *ical.Component) *Event {
	status := getTextProp(comp.Props, "STATUS")
	if status == "" {
		status = "confirmed"
	} else {
		status = strings.ToLower(status)
	}

	start, _ := comp.Props.DateTime("DTSTART", c.loc)
	end, _ := comp.Props.DateTime("DTEND", c.loc)

	// A DTSTART with VALUE=DATE marks an all-day event.
	allDay := false
	if prop := comp.Props.Get("DTSTART"); prop != nil && prop.ValueType() == ical.ValueDate {
		allDay = true
	}

	return &Event{
		ID:          getTextProp(comp.Props, "UID"),
		Summary:     getTextProp(comp.Props, "SUMMARY"),
		Description: getTextProp(comp.Props, "DESCRIPTION"),
		Start:       start.In(c.loc),
		End:         end.In(c.loc),
		AllDay:      allDay,
		Status:      status,
	}
}

func getTextProp(props ical.Props, name string) string {
	prop := props.Get(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}
