package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

const (
	ProductID   = "-//meeting-scheduler//bookings//EN"
	ContentType = "text/calendar; charset=utf-8"

	floatingLayout = "20060102T150405"
)

// ErrNoEvents is returned when nothing in the booking can be exported.
var ErrNoEvents = errors.New("calendar: no events to export")

// Encode writes the upcoming and pending items of b as a VCALENDAR. Meeting
// times carry no zone, so DTSTART/DTEND are emitted as floating local times.
func Encode(w io.Writer, b *models.Booking, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, item := range b.Upcoming {
		if ev := event(item, "CONFIRMED", stamp); ev != nil {
			cal.Children = append(cal.Children, ev.Component)
		}
	}
	for _, item := range b.Pending {
		if ev := event(item, "TENTATIVE", stamp); ev != nil {
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	if len(cal.Children) == 0 {
		return ErrNoEvents
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// Render is Encode into a buffer.
func Render(b *models.Booking, stamp time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b, stamp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UID identifies an item across exports. Invitation-derived entries use the
// invitation id so a meeting listed twice keeps two distinct events.
func UID(item models.MeetingItem) string {
	if item.InvitationID != "" {
		return item.InvitationID + "@meeting-scheduler"
	}
	return item.MeetingID + "@meeting-scheduler"
}

func event(item models.MeetingItem, status string, stamp time.Time) *ical.Event {
	w, err := timezone.NewWindow(item.Date, item.StartTime, item.EndTime)
	if err != nil {
		return nil
	}

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, UID(item))
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ev.Props.SetText(ical.PropSummary, item.Title)
	ev.Props.SetText(ical.PropStatus, status)
	ev.Props.Set(floating(ical.PropDateTimeStart, w.Start))
	ev.Props.Set(floating(ical.PropDateTimeEnd, w.End))
	return ev
}

func floating(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingLayout)
	return prop
}
