package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"wedding_server/models"
)

// CalendarEvent is one fixed wedding-weekend event. The schedule is
// hardcoded; it changes once per wedding, not per deployment.
type CalendarEvent struct {
	Key         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// CalendarService formats the fixed event schedule as ICS downloads and
// external calendar links
type CalendarService struct{}

var weddingEvents = []CalendarEvent{
	{
		Key:         models.EventWelcome,
		Title:       "Welcome Party",
		Description: "Drinks and mezze to kick off the weekend.",
		Location:    "Seaside Terrace, Batroun",
		Start:       time.Date(2026, time.June, 19, 19, 0, 0, 0, time.UTC),
		End:         time.Date(2026, time.June, 19, 23, 0, 0, 0, time.UTC),
	},
	{
		Key:         models.EventBeach,
		Title:       "Beach Day",
		Description: "A relaxed day by the water. Towels provided.",
		Location:    "White Beach, Batroun",
		Start:       time.Date(2026, time.June, 20, 11, 0, 0, 0, time.UTC),
		End:         time.Date(2026, time.June, 20, 17, 0, 0, 0, time.UTC),
	},
	{
		Key:         models.EventWedding,
		Title:       "Wedding Ceremony & Reception",
		Description: "The main event. Ceremony followed by dinner and dancing.",
		Location:    "Old Monastery Gardens, Batroun",
		Start:       time.Date(2026, time.June, 21, 17, 0, 0, 0, time.UTC),
		End:         time.Date(2026, time.June, 22, 1, 0, 0, 0, time.UTC),
	},
}

// Events returns the fixed wedding-weekend schedule
func (s *CalendarService) Events() []CalendarEvent {
	events := make([]CalendarEvent, len(weddingEvents))
	copy(events, weddingEvents)
	return events
}

// EventByKey returns the event with the given key, or false if none matches
func (s *CalendarService) EventByKey(key string) (CalendarEvent, bool) {
	for _, ev := range weddingEvents {
		if ev.Key == key {
			return ev, true
		}
	}
	return CalendarEvent{}, false
}

// BuildICS renders a single event as an iCalendar file
func (s *CalendarService) BuildICS(ev CalendarEvent) string {
	return s.renderICS([]CalendarEvent{ev})
}

// BuildFullICS renders the whole weekend as one iCalendar file
func (s *CalendarService) BuildFullICS() string {
	return s.renderICS(weddingEvents)
}

// GoogleCalendarLink builds a Google Calendar event-template URL
func (s *CalendarService) GoogleCalendarLink(ev CalendarEvent) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", ev.Title)
	params.Set("details", ev.Description)
	params.Set("location", ev.Location)
	params.Set("dates", icsTime(ev.Start)+"/"+icsTime(ev.End))
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

func (s *CalendarService) renderICS(events []CalendarEvent) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//wedding_server//Wedding Weekend//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")
	for _, ev := range events {
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s@wedding-server\r\n", ev.Key)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", icsTime(time.Now().UTC()))
		fmt.Fprintf(&b, "DTSTART:%s\r\n", icsTime(ev.Start))
		fmt.Fprintf(&b, "DTEND:%s\r\n", icsTime(ev.End))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(ev.Title))
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", icsEscape(ev.Description))
		fmt.Fprintf(&b, "LOCATION:%s\r\n", icsEscape(ev.Location))
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func icsTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func icsEscape(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return replacer.Replace(s)
}
