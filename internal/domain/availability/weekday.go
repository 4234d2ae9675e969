package availability

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
)

const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// Weekdays lists the canonical day keys in storage order.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayIndex = map[string]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4, Saturday: 5, Sunday: 6,
}

// ParseWeekday canonicalizes a day name.
func ParseWeekday(name string) (string, error) {
	day := strings.ToLower(strings.TrimSpace(name))
	if _, ok := weekdayIndex[day]; !ok {
		return "", httperr.ErrInvalid("invalid_weekday")
	}
	return day, nil
}

// WeekdayOf returns the day key for a calendar date.
func WeekdayOf(date time.Time) string {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}
