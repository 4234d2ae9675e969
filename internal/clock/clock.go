package clock

import (
	"time"

	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// Clock supplies the current instant. Engine code only reads it through this
// interface so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// System returns a clock reading the wall time of tz.
func System(tz string) Clock {
	return systemClock{loc: timezone.Location(tz)}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Func adapts a plain function.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// OrSystem returns c, or the local system clock when c is nil.
func OrSystem(c Clock) Clock {
	if c == nil {
		return System(timezone.DefaultTimezone)
	}
	return c
}
