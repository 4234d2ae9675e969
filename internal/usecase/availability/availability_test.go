package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/testfixtures"
	"github.com/BruksfildServices01/meeting-scheduler/internal/usecase/meeting"
)

func newSchedule(t *testing.T) (*testfixtures.Store, *Schedule, *audit.Dispatcher) {
	t.Helper()
	store := testfixtures.NewStore()
	store.AddUser("u1", "u1@x.com")
	dispatcher := audit.NewDispatcher(store, 10, nil)
	t.Cleanup(dispatcher.Close)
	return store, NewSchedule(store, dispatcher, nil), dispatcher
}

func assertInvariants(t *testing.T, days []models.AvailabilityDay) {
	t.Helper()
	for _, d := range days {
		if !d.IsAvailable {
			assert.Empty(t, d.Slots, d.Day)
		} else {
			assert.NotEmpty(t, d.Slots, d.Day)
		}
	}
}

func TestScheduleSetDayPersists(t *testing.T) {
	store, uc, dispatcher := newSchedule(t)
	ctx := context.Background()

	days, err := uc.SetDay(ctx, "u1", "Monday", domain.DayUpdate{
		IsAvailable: true,
		Slots:       []models.Slot{{StartTime: "09:00", EndTime: "12:00"}},
	})
	require.NoError(t, err)
	assertInvariants(t, days)

	got, err := uc.Get(ctx, "u1")
	require.NoError(t, err)
	monday, ok := domain.Find(got, "monday")
	require.True(t, ok)
	assert.Equal(t, []models.Slot{{StartTime: "09:00", EndTime: "12:00"}}, monday.Slots)

	days, err = uc.SetDay(ctx, "u1", "monday", domain.DayUpdate{IsAvailable: false, Slots: []models.Slot{{StartTime: "09:00", EndTime: "12:00"}}})
	require.NoError(t, err)
	monday, _ = domain.Find(days, "monday")
	assert.Empty(t, monday.Slots)

	dispatcher.Close()
	assert.Equal(t, []string{"availability_updated", "availability_updated"}, store.AuditActions())
}

func TestScheduleErrors(t *testing.T) {
	_, uc, _ := newSchedule(t)
	ctx := context.Background()

	_, err := uc.SetDay(ctx, "u1", "funday", domain.DayUpdate{IsAvailable: true})
	assert.True(t, httperr.IsBusiness(err, "invalid_weekday"))

	_, err = uc.SetWeekend(ctx, "u1", domain.WeekendUpdate{})
	assert.True(t, httperr.IsBusiness(err, "missing_weekend_days"))

	_, err = uc.CopySlots(ctx, "u1", "saturday", []string{"monday"})
	assert.True(t, httperr.IsBusiness(err, "source_day_unavailable"))

	_, err = uc.Get(ctx, "ghost")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestScheduleWeekendAndCopy(t *testing.T) {
	_, uc, _ := newSchedule(t)
	ctx := context.Background()

	days, err := uc.SetWeekend(ctx, "u1", domain.WeekendUpdate{
		Saturday: &domain.DayUpdate{IsAvailable: true},
	})
	require.NoError(t, err)
	saturday, _ := domain.Find(days, "saturday")
	assert.True(t, saturday.IsAvailable)
	assert.Equal(t, []models.Slot{domain.AllDay()}, saturday.Slots)

	_, err = uc.SetDay(ctx, "u1", "tuesday", domain.DayUpdate{IsAvailable: true, Slots: []models.Slot{{StartTime: "13:00", EndTime: "17:00"}}})
	require.NoError(t, err)

	days, err = uc.CopySlots(ctx, "u1", "tuesday", []string{"wednesday", "sunday", "tuesday"})
	require.NoError(t, err)
	assertInvariants(t, days)

	wednesday, _ := domain.Find(days, "wednesday")
	assert.Equal(t, []models.Slot{{StartTime: "13:00", EndTime: "17:00"}}, wednesday.Slots)
	sunday, _ := domain.Find(days, "sunday")
	assert.False(t, sunday.IsAvailable)
}

// A day switched off is unavailable whatever slots were sent with it.
func TestUnavailableDayFailsCheckRegardlessOfSlots(t *testing.T) {
	store, uc, _ := newSchedule(t)
	ctx := context.Background()

	_, err := uc.SetDay(ctx, "u1", "monday", domain.DayUpdate{
		IsAvailable: false,
		Slots:       []models.Slot{{StartTime: "00:00", EndTime: "23:59"}},
	})
	require.NoError(t, err)

	out, err := meeting.NewCheckAvailability(store).Execute(ctx, meeting.AvailabilityInput{
		UserID: "u1", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Equal(t, meeting.ReasonDayUnavailable, out.Reason)
}
