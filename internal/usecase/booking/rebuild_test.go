package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/testfixtures"
)

func newRebuild(store *testfixtures.Store, clk *testfixtures.Clock) *RebuildBooking {
	return NewRebuildBooking(store, store, clk, nil)
}

func meetingIDs(items []models.MeetingItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.MeetingID)
	}
	return out
}

func TestRebuildClassifiesEveryBucket(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore()
	clk := testfixtures.NewClock(time.Time{}) // 2025-03-05 12:00
	store.AddUser("a", "a@x.com")
	store.AddUser("b", "b@x.com")

	store.AddMeeting(models.Meeting{ID: "hosted", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})
	store.AddMeeting(models.Meeting{ID: "cancelled", HostID: "b", Date: "2025-03-11", StartTime: "09:00", EndTime: "10:00", Status: "cancelled",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})
	store.AddMeeting(models.Meeting{ID: "rejected", HostID: "b", Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "rejected"}}})
	store.AddMeeting(models.Meeting{ID: "earlier-today", HostID: "b", Date: "2025-03-05", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})
	store.AddMeeting(models.Meeting{ID: "later-today", HostID: "b", Date: "2025-03-05", StartTime: "15:00", EndTime: "16:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "pending"}}})
	store.AddMeeting(models.Meeting{ID: "unrelated", HostID: "b", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "b", Email: "b@x.com", Status: "accepted"}}})

	b, err := newRebuild(store, clk).Execute(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"hosted"}, meetingIDs(b.Upcoming))
	assert.Equal(t, []string{"later-today"}, meetingIDs(b.Pending))
	assert.Equal(t, []string{"cancelled", "rejected"}, meetingIDs(b.Canceled))
	assert.Equal(t, []string{"earlier-today"}, meetingIDs(b.Past))
}

func TestRebuildPastWinsOverRejected(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddUser("a", "a@x.com")
	store.AddMeeting(models.Meeting{ID: "old", HostID: "b", Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "rejected"}}})

	b, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"old"}, meetingIDs(b.Past))
	assert.Empty(t, b.Canceled)
}

func TestRebuildIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore()
	store.AddUser("a", "a@x.com")
	store.AddMeeting(models.Meeting{ID: "m1", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})
	store.AddMeeting(models.Meeting{ID: "m2", HostID: "a", Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})

	uc := newRebuild(store, testfixtures.NewClock(time.Time{}))

	_, err := uc.Execute(ctx, "a")
	require.NoError(t, err)
	first, err := store.GetBooking(ctx, "a")
	require.NoError(t, err)

	_, err = uc.Execute(ctx, "a")
	require.NoError(t, err)
	second, err := store.GetBooking(ctx, "a")
	require.NoError(t, err)

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, 2, store.ReplaceBookingCalls)
}

func TestRebuildMissingUserLeavesProjectionAlone(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore()
	require.NoError(t, store.ReplaceBooking(ctx, &models.Booking{UserID: "ghost",
		Upcoming: models.MeetingItemList{{MeetingID: "kept"}}}))
	store.ReplaceBookingCalls = 0

	b, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Zero(t, store.ReplaceBookingCalls)

	stored, err := store.GetBooking(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, meetingIDs(stored.Upcoming))
}

func TestRebuildListsStaleParticipantAndInvitationTwice(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddUser("b", "b@x.com")
	store.AddMeeting(models.Meeting{ID: "m1", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{
			{UserID: "a", Email: "a@x.com", Status: "accepted"},
			{UserID: "b", Email: "b@x.com", Status: "pending"},
		}})
	store.AddInvitation(models.Invitation{ID: "inv-1", MeetingID: "m1", InviterID: "a", InviteeUserID: "b", InviteeEmail: "b@x.com"})

	b, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(context.Background(), "b")
	require.NoError(t, err)

	require.Len(t, b.Pending, 2)
	assert.Equal(t, []string{"m1", "m1"}, meetingIDs(b.Pending))
	assert.Equal(t, "", b.Pending[0].InvitationID)
	assert.Equal(t, "inv-1", b.Pending[1].InvitationID)
}

func TestRebuildInvitationMatchedByEmailOnly(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddUser("b", "b@x.com")
	store.AddMeeting(models.Meeting{ID: "m1", HostID: "a", Title: "Sync", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{
			{UserID: "a", Email: "a@x.com", Status: "accepted"},
			{Email: "b@x.com", Status: "pending"},
		}})
	store.AddMeeting(models.Meeting{ID: "gone", HostID: "a", Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00"})
	store.AddInvitation(models.Invitation{ID: "inv-1", MeetingID: "m1", InviterID: "a", InviteeEmail: "b@x.com"})
	store.AddInvitation(models.Invitation{ID: "inv-old", MeetingID: "gone", InviterID: "a", InviteeEmail: "b@x.com"})
	store.AddInvitation(models.Invitation{ID: "inv-missing", MeetingID: "deleted", InviterID: "a", InviteeEmail: "b@x.com"})

	b, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(context.Background(), "b")
	require.NoError(t, err)

	require.Len(t, b.Pending, 1)
	assert.Equal(t, "inv-1", b.Pending[0].InvitationID)
	assert.Equal(t, "Sync", b.Pending[0].Title)
	assert.Empty(t, b.Upcoming)
	assert.Empty(t, b.Past)
}

func TestRebuildHostNeverPending(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddUser("a", "a@x.com")
	store.AddMeeting(models.Meeting{ID: "m1", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "pending"}}})
	store.AddInvitation(models.Invitation{ID: "self", MeetingID: "m1", InviterID: "a", InviteeUserID: "a", InviteeEmail: "a@x.com"})

	b, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(context.Background(), "a")
	require.NoError(t, err)

	assert.Empty(t, b.Pending)
	assert.Equal(t, []string{"m1"}, meetingIDs(b.Upcoming))
}

func TestRebuildOrdersListsDeterministically(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddUser("a", "a@x.com")
	for _, m := range []models.Meeting{
		{ID: "m3", HostID: "a", Date: "2025-03-11", StartTime: "09:00", EndTime: "10:00"},
		{ID: "m2", HostID: "a", Date: "2025-03-10", StartTime: "11:00", EndTime: "12:00"},
		{ID: "m1", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"},
		{ID: "p1", HostID: "a", Date: "2025-02-01", StartTime: "09:00", EndTime: "10:00"},
		{ID: "p2", HostID: "a", Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00"},
	} {
		store.AddMeeting(m)
	}

	b, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2", "m3"}, meetingIDs(b.Upcoming))
	assert.Equal(t, []string{"p2", "p1"}, meetingIDs(b.Past))
}

func TestRebuildPropagatesStoreErrors(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddUser("a", "a@x.com")
	boom := errors.New("disk full")
	store.Err = boom

	_, err := newRebuild(store, testfixtures.NewClock(time.Time{})).Execute(context.Background(), "a")
	assert.ErrorIs(t, err, boom)
}

func TestRefresherSkipsFailuresAndDuplicates(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore()
	store.AddUser("a", "a@x.com")
	store.AddUser("b", "b@x.com")

	r := NewRefresher(newRebuild(store, testfixtures.NewClock(time.Time{})), nil)
	r.Refresh(ctx, "a", "", "missing", "b", "a")

	assert.Equal(t, 2, store.ReplaceBookingCalls)

	var nilRefresher *Refresher
	assert.NotPanics(t, func() { nilRefresher.Refresh(ctx, "a") })
}
