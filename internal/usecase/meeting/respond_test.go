package meeting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

func invitedMeeting(e *env) {
	e.store.AddUser("a", "a@x.com")
	e.store.AddUser("b", "b@x.com")
	e.store.AddMeeting(models.Meeting{
		ID: "m1", HostID: "a", Title: "Sync", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{
			{UserID: "a", Email: "a@x.com", Status: "accepted"},
			{Email: "b@x.com", Status: "pending"},
		},
	})
	e.store.AddInvitation(models.Invitation{ID: "inv-1", MeetingID: "m1", InviterID: "a", InviteeEmail: "b@x.com"})
}

func TestRespondAcceptSyncsInvitationAndParticipant(t *testing.T) {
	e := newEnv(t)
	invitedMeeting(e)
	locker := &recordingLocker{}
	e.deps.Locker = locker

	out, err := NewRespondToInvitation(e.deps).Execute(context.Background(), RespondInput{ID: "inv-1", UserID: "b", Status: "Accepted"})
	require.NoError(t, err)
	assert.True(t, out.Changed)

	inv := e.store.Invitations()[0]
	assert.Equal(t, "accepted", inv.Status)
	assert.Equal(t, "b", inv.InviteeUserID)
	require.NotNil(t, inv.RespondedAt)

	p := e.meeting(t, "m1").Participants[1]
	assert.Equal(t, "accepted", p.Status)
	assert.Equal(t, "b", p.UserID)
	require.NotNil(t, p.ResponseAt)
	assert.True(t, p.ResponseAt.Equal(e.clock.Now()))

	assert.Equal(t, []string{"m1"}, ids(e.booking(t, "b").Upcoming))
	assert.Equal(t, []string{"m1"}, ids(e.booking(t, "a").Upcoming))

	assert.Equal(t, []string{"b"}, locker.locked)
	assert.Equal(t, 1, locker.released)
	assert.Equal(t, []string{"invitation_responded"}, e.auditActions())
}

func TestRespondRepeatIsNoopAndOppositeFails(t *testing.T) {
	e := newEnv(t)
	invitedMeeting(e)
	uc := NewRespondToInvitation(e.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RespondInput{ID: "inv-1", UserID: "b", Status: "rejected"})
	require.NoError(t, err)
	before := e.meeting(t, "m1")

	out, err := uc.Execute(ctx, RespondInput{ID: "inv-1", UserID: "b", Status: "rejected"})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, before, e.meeting(t, "m1"))

	_, err = uc.Execute(ctx, RespondInput{ID: "inv-1", UserID: "b", Status: "accepted"})
	assert.True(t, httperr.IsBusiness(err, "invitation_already_resolved"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestRespondRejectWithoutParticipantEntry(t *testing.T) {
	e := newEnv(t)
	e.store.AddUser("a", "a@x.com")
	e.store.AddUser("b", "b@x.com")
	e.store.AddMeeting(models.Meeting{ID: "m1", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})
	e.store.AddInvitation(models.Invitation{ID: "inv-1", MeetingID: "m1", InviterID: "a", InviteeUserID: "b", InviteeEmail: "b@x.com"})

	_, err := NewRespondToInvitation(e.deps).Execute(context.Background(), RespondInput{ID: "inv-1", UserID: "b", Status: "rejected"})
	require.NoError(t, err)

	assert.Len(t, e.meeting(t, "m1").Participants, 1)
	assert.Equal(t, "rejected", e.store.Invitations()[0].Status)
}

func TestRespondOwnership(t *testing.T) {
	e := newEnv(t)
	invitedMeeting(e)
	e.store.AddUser("c", "c@x.com")

	_, err := NewRespondToInvitation(e.deps).Execute(context.Background(), RespondInput{ID: "inv-1", UserID: "c", Status: "accepted"})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
	assert.Equal(t, "pending", e.store.Invitations()[0].Status)
}

func TestRespondInputErrors(t *testing.T) {
	e := newEnv(t)
	invitedMeeting(e)
	uc := NewRespondToInvitation(e.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RespondInput{ID: "inv-1", UserID: "b", Status: "pending"})
	assert.True(t, httperr.IsBusiness(err, "invalid_response_status"))

	_, err = uc.Execute(ctx, RespondInput{ID: "nope", UserID: "b", Status: "accepted"})
	assert.True(t, httperr.IsBusiness(err, "invitation_not_found"))

	_, err = uc.Execute(ctx, RespondInput{ID: "inv-1", UserID: "ghost", Status: "accepted"})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))

	_, err = uc.Execute(ctx, RespondInput{ID: "m1", UserID: "a", Status: "accepted"})
	assert.True(t, httperr.IsBusiness(err, "host_cannot_respond"))
}

func TestRespondAcceptBlockedByConflict(t *testing.T) {
	e := newEnv(t)
	invitedMeeting(e)
	e.store.AddMeeting(accepted("busy", "z", "b", "b@x.com", "2025-03-10", "09:30", "10:30"))

	_, err := NewRespondToInvitation(e.deps).Execute(context.Background(), RespondInput{ID: "inv-1", UserID: "b", Status: "accepted"})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	ref, ok := httperr.DetailsOf(err).(*ConflictRef)
	require.True(t, ok)
	assert.Equal(t, "busy", ref.MeetingID)

	assert.Equal(t, "pending", e.store.Invitations()[0].Status)
	assert.Equal(t, "pending", e.meeting(t, "m1").Participants[1].Status)
}

func TestRespondByMeetingIDMaterializesInvitation(t *testing.T) {
	e := newEnv(t)
	e.store.AddUser("a", "a@x.com")
	e.store.AddUser("b", "b@x.com")
	e.store.AddMeeting(models.Meeting{ID: "m1", HostID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00",
		Participants: models.ParticipantList{{UserID: "a", Email: "a@x.com", Status: "accepted"}}})

	out, err := NewRespondToInvitation(e.deps).Execute(context.Background(), RespondInput{ID: "m1", UserID: "b", Status: "accepted"})
	require.NoError(t, err)

	invs := e.store.Invitations()
	require.Len(t, invs, 1)
	assert.Equal(t, out.Invitation.ID, invs[0].ID)
	assert.Equal(t, "accepted", invs[0].Status)
	assert.Equal(t, "b", invs[0].InviteeUserID)
	assert.Equal(t, "a", invs[0].InviterID)

	m := e.meeting(t, "m1")
	require.Len(t, m.Participants, 2)
	assert.Equal(t, models.Participant{UserID: "b", Email: "b@x.com", Status: "accepted", ResponseAt: m.Participants[1].ResponseAt}, m.Participants[1])
}

func TestRespondByMeetingIDReusesExistingInvitation(t *testing.T) {
	e := newEnv(t)
	invitedMeeting(e)

	out, err := NewRespondToInvitation(e.deps).Execute(context.Background(), RespondInput{ID: "m1", UserID: "b", Status: "accepted"})
	require.NoError(t, err)

	assert.Equal(t, "inv-1", out.Invitation.ID)
	assert.Len(t, e.store.Invitations(), 1)
}
