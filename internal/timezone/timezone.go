package timezone

import (
	"strings"
	"time"
)

// DefaultTimezone is the zone "now" is read in when none is configured.
const DefaultTimezone = "Local"

// IsValid reports whether tz names a loadable IANA location.
func IsValid(tz string) bool {
	_, err := load(tz)
	return err == nil
}

// Location resolves tz, falling back to the process local zone.
func Location(tz string) *time.Location {
	loc, err := load(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

func load(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil, ErrInvalidTimezone
	}
	return time.LoadLocation(tz)
}
