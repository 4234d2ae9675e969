package availability

import (
	"sort"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// Every setter returns a fresh slice; inputs are never modified or aliased.

// DayUpdate is the requested state of a single day.
type DayUpdate struct {
	IsAvailable bool
	Slots       []models.Slot
}

// WeekendUpdate carries optional Saturday and Sunday updates.
type WeekendUpdate struct {
	Saturday *DayUpdate
	Sunday   *DayUpdate
}

// AllDay is the canonical slot meaning "available all day".
func AllDay() models.Slot {
	return models.Slot{}
}

// Default is the schedule given to new users: weekdays all day, weekend off.
func Default() []models.AvailabilityDay {
	days := make([]models.AvailabilityDay, 0, len(Weekdays))
	for _, d := range Weekdays {
		if d == Saturday || d == Sunday {
			days = append(days, models.AvailabilityDay{Day: d, Slots: []models.Slot{}})
			continue
		}
		days = append(days, models.AvailabilityDay{Day: d, IsAvailable: true, Slots: []models.Slot{AllDay()}})
	}
	return days
}

// Normalize applies the storage invariants to one day's slots.
func Normalize(isAvailable bool, slots []models.Slot) ([]models.Slot, error) {
	if !isAvailable {
		return []models.Slot{}, nil
	}

	out := make([]models.Slot, 0, len(slots))
	for _, s := range slots {
		if err := validateSlot(s); err != nil {
			return nil, err
		}
		out = append(out, models.Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}

	if len(out) == 0 {
		out = append(out, AllDay())
	}
	return out, nil
}

func validateSlot(s models.Slot) error {
	var start, end int64
	if s.StartTime != "" {
		d, err := timezone.ParseClock(s.StartTime)
		if err != nil {
			return httperr.ErrInvalid("invalid_slot_time")
		}
		start = int64(d)
	}
	if s.EndTime != "" {
		d, err := timezone.ParseClock(s.EndTime)
		if err != nil {
			return httperr.ErrInvalid("invalid_slot_time")
		}
		end = int64(d)
	}
	if s.StartTime != "" && s.EndTime != "" && start >= end {
		return httperr.ErrInvalid("invalid_slot_range")
	}
	return nil
}

// IsDefined reports whether both bounds of s are specified.
func IsDefined(s models.Slot) bool {
	return s.StartTime != "" && s.EndTime != ""
}

// Find returns the stored entry for day.
func Find(days []models.AvailabilityDay, day string) (models.AvailabilityDay, bool) {
	for _, d := range days {
		if d.Day == day {
			return cloneDay(d), true
		}
	}
	return models.AvailabilityDay{}, false
}

// SetDay replaces the entry for day.
func SetDay(days []models.AvailabilityDay, day string, isAvailable bool, slots []models.Slot) ([]models.AvailabilityDay, error) {
	key, err := ParseWeekday(day)
	if err != nil {
		return nil, err
	}

	normalized, err := Normalize(isAvailable, slots)
	if err != nil {
		return nil, err
	}

	return put(days, models.AvailabilityDay{Day: key, IsAvailable: isAvailable, Slots: normalized}), nil
}

// SetWeekend applies SetDay to whichever weekend days are present.
func SetWeekend(days []models.AvailabilityDay, in WeekendUpdate) ([]models.AvailabilityDay, error) {
	if in.Saturday == nil && in.Sunday == nil {
		return nil, httperr.ErrInvalid("missing_weekend_days")
	}

	out := clone(days)
	var err error
	if in.Saturday != nil {
		if out, err = SetDay(out, Saturday, in.Saturday.IsAvailable, in.Saturday.Slots); err != nil {
			return nil, err
		}
	}
	if in.Sunday != nil {
		if out, err = SetDay(out, Sunday, in.Sunday.IsAvailable, in.Sunday.Slots); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CopySlots copies the source day's slots by value into each target.
// Available targets are overwritten, unavailable ones are left alone and
// absent ones are inserted as available.
func CopySlots(days []models.AvailabilityDay, source string, targets []string) ([]models.AvailabilityDay, error) {
	src, err := ParseWeekday(source)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, httperr.ErrInvalid("missing_target_days")
	}

	keys := make([]string, 0, len(targets))
	for _, t := range targets {
		key, err := ParseWeekday(t)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	srcDay, ok := Find(days, src)
	if ok && !srcDay.IsAvailable {
		return nil, httperr.ErrInvalid("source_day_unavailable")
	}
	if !ok {
		srcDay = models.AvailabilityDay{Day: src, IsAvailable: true, Slots: []models.Slot{AllDay()}}
	}

	out := clone(days)
	for _, key := range keys {
		if key == src {
			continue
		}
		existing, found := Find(out, key)
		if found && !existing.IsAvailable {
			continue
		}
		slots, err := Normalize(true, srcDay.Slots)
		if err != nil {
			return nil, err
		}
		out = put(out, models.AvailabilityDay{Day: key, IsAvailable: true, Slots: slots})
	}
	return out, nil
}

// Fits reports whether window w on a day with entry d is inside the declared
// availability. Only defined slots are tested; a day without any is open all day.
func Fits(d models.AvailabilityDay, date string, w timezone.Window) bool {
	if !d.IsAvailable {
		return false
	}

	defined := 0
	for _, s := range d.Slots {
		if !IsDefined(s) {
			continue
		}
		defined++
		slot, err := timezone.NewWindow(date, s.StartTime, s.EndTime)
		if err != nil {
			continue
		}
		if slot.Contains(w) {
			return true
		}
	}
	return defined == 0
}

func put(days []models.AvailabilityDay, day models.AvailabilityDay) []models.AvailabilityDay {
	out := make([]models.AvailabilityDay, 0, len(days)+1)
	for _, d := range days {
		if d.Day == day.Day {
			continue
		}
		out = append(out, cloneDay(d))
	}
	out = append(out, day)
	sort.SliceStable(out, func(i, j int) bool {
		return weekdayIndex[out[i].Day] < weekdayIndex[out[j].Day]
	})
	return out
}

func clone(days []models.AvailabilityDay) []models.AvailabilityDay {
	out := make([]models.AvailabilityDay, 0, len(days))
	for _, d := range days {
		out = append(out, cloneDay(d))
	}
	return out
}

func cloneDay(d models.AvailabilityDay) models.AvailabilityDay {
	slots := make([]models.Slot, len(d.Slots))
	copy(slots, d.Slots)
	d.Slots = slots
	return d
}
