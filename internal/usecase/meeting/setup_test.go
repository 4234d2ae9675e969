package meeting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/testfixtures"
	"github.com/BruksfildServices01/meeting-scheduler/internal/usecase/booking"
)

type env struct {
	store *testfixtures.Store
	clock *testfixtures.Clock
	deps  Deps
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := testfixtures.NewStore()
	clk := testfixtures.NewClock(time.Time{})
	rebuild := booking.NewRebuildBooking(store, store, clk, nil)
	dispatcher := audit.NewDispatcher(store, 100, nil)
	t.Cleanup(dispatcher.Close)

	return &env{
		store: store,
		clock: clk,
		deps: Deps{
			Repo:      store,
			Refresher: booking.NewRefresher(rebuild, nil),
			Clock:     clk,
			Audit:     dispatcher,
			NewID:     testfixtures.SequentialIDs("id"),
		},
	}
}

// auditActions flushes the dispatcher and returns what was recorded.
func (e *env) auditActions() []string {
	e.deps.Audit.Close()
	return e.store.AuditActions()
}

func (e *env) booking(t *testing.T, userID string) *models.Booking {
	t.Helper()
	b, err := e.store.GetBooking(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, b, "no booking stored for %s", userID)
	return b
}

func (e *env) meeting(t *testing.T, id string) *models.Meeting {
	t.Helper()
	m, err := e.store.GetMeeting(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

// accepted builds a meeting hosted by hostID that userID accepted.
func accepted(id, hostID, userID, email, date, start, end string) models.Meeting {
	return models.Meeting{
		ID:        id,
		HostID:    hostID,
		Title:     id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Participants: models.ParticipantList{
			{UserID: userID, Email: email, Status: "accepted"},
		},
	}
}

func ids(items []models.MeetingItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.MeetingID)
	}
	return out
}

type recordingLocker struct {
	mu       sync.Mutex
	locked   []string
	released int
}

func (l *recordingLocker) Lock(_ context.Context, userID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = append(l.locked, userID)
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

func strPtr(s string) *string { return &s }
