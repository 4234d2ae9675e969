package meeting

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/lock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

type RespondInput struct {
	// ID is an invitation id or, as a fallback, a meeting id.
	ID     string
	UserID string
	Status string
}

type RespondResult struct {
	Invitation *models.Invitation `json:"invitation"`
	Meeting    *models.Meeting    `json:"meeting"`
	Changed    bool               `json:"changed"`
}

// RespondToInvitation moves the caller's invitation and mirrored participant
// from pending to accepted or rejected.
type RespondToInvitation struct {
	deps     Deps
	detector *ConflictDetector
}

func NewRespondToInvitation(deps Deps) *RespondToInvitation {
	deps = deps.withDefaults()
	return &RespondToInvitation{deps: deps, detector: NewConflictDetector(deps.Repo)}
}

func (uc *RespondToInvitation) Execute(ctx context.Context, in RespondInput) (*RespondResult, error) {
	log := logging.For(ctx, uc.deps.Logger, "respond_invitation", "id", in.ID, "user_id", in.UserID)

	status, err := domain.ParseResponse(in.Status)
	if err != nil {
		return nil, err
	}

	user, err := uc.deps.Repo.FindUserByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}

	inv, m, created, err := uc.resolve(ctx, in.ID, user)
	if err != nil {
		return nil, err
	}

	if inv.InviteeUserID != user.ID && domain.NormalizeEmail(inv.InviteeEmail) != domain.NormalizeEmail(user.Email) {
		return nil, httperr.ErrForbidden("not_invitation_owner")
	}

	// The check below and the writes after it run under the responder's lock.
	// With the default no-op locker two overlapping acceptances can both pass.
	unlock, err := lock.LockAll(ctx, uc.deps.Locker, []string{user.ID})
	if err != nil {
		return nil, err
	}
	defer unlock()

	noop, err := domain.CanRespond(domain.ParticipantStatus(inv.Status), status)
	if err != nil {
		return nil, err
	}
	if noop {
		return &RespondResult{Invitation: inv, Meeting: m}, nil
	}

	if status == domain.ParticipantAccepted {
		conflict, err := uc.detector.HasConflict(ctx, user.ID, m.Date, m.StartTime, m.EndTime, m.ID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			log.Info("acceptance blocked by conflict", "conflict_meeting_id", conflict.ID)
			return nil, httperr.ErrConflict("time_conflict", refOf(conflict))
		}
	}

	// --------------------------------------------------
	// Invitation
	// --------------------------------------------------
	now := uc.deps.Clock.Now()
	inv.Status = string(status)
	inv.RespondedAt = &now
	if inv.InviteeUserID == "" {
		inv.InviteeUserID = user.ID
	}

	if created {
		err = uc.deps.Repo.CreateInvitation(ctx, inv)
	} else {
		err = uc.deps.Repo.UpdateInvitation(ctx, inv)
	}
	if err != nil {
		return nil, fmt.Errorf("save invitation: %w", err)
	}

	// --------------------------------------------------
	// Mirrored participant
	// --------------------------------------------------
	insert := status == domain.ParticipantAccepted
	if domain.Respond(m, user.ID, user.Email, status, now, insert) {
		if err := uc.deps.Repo.UpdateMeeting(ctx, m); err != nil {
			return nil, fmt.Errorf("update meeting: %w", err)
		}
	}

	uc.deps.refresh(ctx, user.ID, m.HostID)

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   "invitation_responded",
		Entity:   "invitation",
		EntityID: inv.ID,
		Metadata: map[string]string{"meeting_id": m.ID, "status": string(status)},
	})

	return &RespondResult{Invitation: inv, Meeting: m, Changed: true}, nil
}

// resolve finds the invitation for id. When id names a meeting instead, the
// caller's invitation on it is reused or a pending one is materialized; created
// reports that the returned invitation is not persisted yet.
func (uc *RespondToInvitation) resolve(
	ctx context.Context,
	id string,
	user *models.User,
) (inv *models.Invitation, m *models.Meeting, created bool, err error) {

	inv, err = uc.deps.Repo.GetInvitation(ctx, id)
	if err != nil {
		return nil, nil, false, fmt.Errorf("get invitation: %w", err)
	}

	if inv != nil {
		m, err = uc.deps.Repo.GetMeeting(ctx, inv.MeetingID)
		if err != nil {
			return nil, nil, false, fmt.Errorf("get meeting: %w", err)
		}
		if m == nil {
			return nil, nil, false, httperr.ErrNotFound("meeting_not_found")
		}
		return inv, m, false, nil
	}

	m, err = uc.deps.Repo.GetMeeting(ctx, id)
	if err != nil {
		return nil, nil, false, fmt.Errorf("get meeting: %w", err)
	}
	if m == nil {
		return nil, nil, false, httperr.ErrNotFound("invitation_not_found")
	}
	if domain.IsHost(m, user.ID) {
		return nil, nil, false, httperr.ErrInvalid("host_cannot_respond")
	}

	inv, err = uc.deps.Repo.FindInvitation(ctx, m.ID, user.ID, user.Email)
	if err != nil {
		return nil, nil, false, fmt.Errorf("find invitation: %w", err)
	}
	if inv != nil {
		return inv, m, false, nil
	}

	inv = &models.Invitation{
		ID:            uc.deps.NewID(),
		MeetingID:     m.ID,
		InviterID:     m.HostID,
		InviteeUserID: user.ID,
		InviteeEmail:  domain.NormalizeEmail(user.Email),
		Status:        string(domain.ParticipantPending),
	}
	return inv, m, true, nil
}
