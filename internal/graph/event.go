package graph

import (
	"context"

	"github.com/mkersey/graphmail/internal/query"
)

// DateTimeTimeZone is the Graph representation of a local timestamp.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Attendee is one invitee on an event.
type Attendee struct {
	Type         string       `json:"type,omitempty"`
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Event is a calendar event.
type Event struct {
	session *Session

	ID          string           `json:"id"`
	Subject     string           `json:"subject"`
	Start       DateTimeTimeZone `json:"start,omitempty"`
	End         DateTimeTimeZone `json:"end,omitempty"`
	IsAllDay    bool             `json:"isAllDay"`
	IsCancelled bool             `json:"isCancelled"`
	IsOrganizer bool             `json:"isOrganizer"`
	Importance  string           `json:"importance,omitempty"`
	Sensitivity string           `json:"sensitivity,omitempty"`
	Attendees   []Attendee       `json:"attendees,omitempty"`
}

// Delete removes the event.
func (e *Event) Delete(ctx context.Context) error {
	return e.session.delete(ctx, "/me/events/"+e.ID)
}

// Calendar is one calendar of the signed-in user. A zero ID means the
// default calendar, addressed through /me/events.
type Calendar struct {
	session *Session

	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Calendar returns the user's default calendar.
func (s *Session) Calendar() *Calendar {
	return &Calendar{session: s}
}

// CalendarByID fetches a named calendar.
func (s *Session) CalendarByID(ctx context.Context, id string) (*Calendar, error) {
	var c Calendar
	if err := s.get(ctx, "/me/calendars/"+id, nil, &c); err != nil {
		return nil, err
	}
	c.session = s
	return &c, nil
}

// Events starts a query over the calendar's events.
func (c *Calendar) Events() *EventQuery {
	return &EventQuery{query.New[*Event](&eventCollection{calendar: c})}
}

func (c *Calendar) eventsPath() string {
	if c.ID == "" {
		return "/me/events"
	}
	return "/me/calendars/" + c.ID + "/events"
}

// EventQuery is a query over a calendar's events.
type EventQuery struct {
	*query.Query[*Event]
}

// Bulk exposes bulk actions over this query's result set.
func (q *EventQuery) Bulk() *BulkEventAction {
	return &BulkEventAction{query: q.Query}
}

// BulkEventAction builds bulk-action contexts for an event query.
type BulkEventAction struct {
	query *query.Query[*Event]
}

// Delete deletes every event matching the query.
func (a *BulkEventAction) Delete() *query.BulkActionContext[*Event] {
	return query.NewBulkActionContext(a.query, "delete", func(ctx context.Context, e *Event) error {
		return e.Delete(ctx)
	})
}

type eventCollection struct {
	calendar *Calendar
}

func (c *eventCollection) Protocol() query.Protocol { return Outlook }

func (c *eventCollection) Fetch(ctx context.Context, b query.Builder, limit int) ([]*Event, error) {
	events, err := fetchCollection[*Event](ctx, c.calendar.session, c.calendar.eventsPath(), b, limit)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		e.session = c.calendar.session
	}
	return events, nil
}
