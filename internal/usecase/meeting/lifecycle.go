package meeting

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// ======================================================
// CANCEL
// ======================================================

type CancelMeeting struct {
	deps Deps
}

func NewCancelMeeting(deps Deps) *CancelMeeting {
	return &CancelMeeting{deps: deps.withDefaults()}
}

func (uc *CancelMeeting) Execute(ctx context.Context, meetingID, actorID string) (*models.Meeting, error) {
	m, err := loadHosted(ctx, uc.deps.Repo, meetingID, actorID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(m); err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.UpdateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}

	if err := refreshAffected(ctx, uc.deps, m); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "meeting_cancelled",
		Entity:   "meeting",
		EntityID: m.ID,
	})

	return m, nil
}

// ======================================================
// STATUS CYCLE
// ======================================================

type CycleMeetingStatus struct {
	deps Deps
}

func NewCycleMeetingStatus(deps Deps) *CycleMeetingStatus {
	return &CycleMeetingStatus{deps: deps.withDefaults()}
}

func (uc *CycleMeetingStatus) Execute(ctx context.Context, meetingID, actorID string) (*models.Meeting, error) {
	m, err := loadHosted(ctx, uc.deps.Repo, meetingID, actorID)
	if err != nil {
		return nil, err
	}

	from := m.Status
	domain.CycleStatus(m)

	if err := uc.deps.Repo.UpdateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}

	if err := refreshAffected(ctx, uc.deps, m); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "meeting_status_changed",
		Entity:   "meeting",
		EntityID: m.ID,
		Metadata: map[string]string{"from": from, "to": m.Status},
	})

	return m, nil
}

// ======================================================
// VISIBILITY
// ======================================================

type ToggleMeetingActive struct {
	deps Deps
}

func NewToggleMeetingActive(deps Deps) *ToggleMeetingActive {
	return &ToggleMeetingActive{deps: deps.withDefaults()}
}

// Execute sets isActive to active, or flips it when active is nil.
func (uc *ToggleMeetingActive) Execute(ctx context.Context, meetingID, actorID string, active *bool) (*models.Meeting, error) {
	m, err := loadHosted(ctx, uc.deps.Repo, meetingID, actorID)
	if err != nil {
		return nil, err
	}

	if active != nil {
		m.IsActive = *active
	} else {
		m.IsActive = !m.IsActive
	}

	if err := uc.deps.Repo.UpdateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}

	if err := refreshAffected(ctx, uc.deps, m); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "meeting_visibility_changed",
		Entity:   "meeting",
		EntityID: m.ID,
		Metadata: map[string]bool{"is_active": m.IsActive},
	})

	return m, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteMeeting struct {
	deps Deps
}

func NewDeleteMeeting(deps Deps) *DeleteMeeting {
	return &DeleteMeeting{deps: deps.withDefaults()}
}

// Execute removes the meeting's invitations, then the meeting, then rebuilds
// every dashboard that listed it.
func (uc *DeleteMeeting) Execute(ctx context.Context, meetingID, actorID string) error {
	m, err := loadHosted(ctx, uc.deps.Repo, meetingID, actorID)
	if err != nil {
		return err
	}

	affected, err := affectedUsers(ctx, uc.deps.Repo, m)
	if err != nil {
		return fmt.Errorf("list invitations: %w", err)
	}

	if err := uc.deps.Repo.DeleteInvitationsForMeeting(ctx, m.ID); err != nil {
		return fmt.Errorf("delete invitations: %w", err)
	}
	if err := uc.deps.Repo.DeleteMeeting(ctx, m.ID); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	uc.deps.refresh(ctx, affected...)

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "meeting_deleted",
		Entity:   "meeting",
		EntityID: m.ID,
		Metadata: map[string]string{"title": m.Title, "date": m.Date},
	})

	return nil
}

// ======================================================
// DUPLICATE
// ======================================================

type DuplicateMeeting struct {
	deps Deps
}

func NewDuplicateMeeting(deps Deps) *DuplicateMeeting {
	return &DuplicateMeeting{deps: deps.withDefaults()}
}

// Execute copies the core fields into a new scheduled meeting whose only
// participant is the host.
func (uc *DuplicateMeeting) Execute(ctx context.Context, meetingID, actorID string) (*models.Meeting, error) {
	src, err := loadHosted(ctx, uc.deps.Repo, meetingID, actorID)
	if err != nil {
		return nil, err
	}

	host, err := uc.deps.Repo.FindUserByID(ctx, src.HostID)
	if err != nil {
		return nil, fmt.Errorf("find host: %w", err)
	}
	if host == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}

	now := uc.deps.Clock.Now()
	dup := &models.Meeting{
		ID:          uc.deps.NewID(),
		HostID:      src.HostID,
		Title:       src.Title + " (copy)",
		Description: src.Description,
		Date:        src.Date,
		StartTime:   src.StartTime,
		EndTime:     src.EndTime,
		Duration:    src.Duration,
		Timezone:    src.Timezone,
		Status:      string(domain.InitialStatus()),
		IsActive:    true,
		Participants: models.ParticipantList{{
			UserID:     host.ID,
			Email:      host.Email,
			Status:     string(domain.ParticipantAccepted),
			ResponseAt: &now,
		}},
	}

	if err := uc.deps.Repo.CreateMeeting(ctx, dup); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	uc.deps.refresh(ctx, host.ID)

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "meeting_duplicated",
		Entity:   "meeting",
		EntityID: dup.ID,
		Metadata: map[string]string{"source_id": src.ID},
	})

	return dup, nil
}

// ======================================================
// READ
// ======================================================

type GetMeeting struct {
	repo domain.Repository
}

func NewGetMeeting(repo domain.Repository) *GetMeeting {
	return &GetMeeting{repo: repo}
}

// Execute returns the meeting to its host, its participants and its invitees.
func (uc *GetMeeting) Execute(ctx context.Context, meetingID, actorID string) (*models.Meeting, error) {
	m, err := uc.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, httperr.ErrNotFound("meeting_not_found")
	}
	if domain.IsHost(m, actorID) {
		return m, nil
	}

	actor, err := uc.repo.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if actor == nil {
		return nil, httperr.ErrForbidden("not_meeting_member")
	}
	if domain.FindParticipant(m, actor.ID, actor.Email) >= 0 {
		return m, nil
	}

	inv, err := uc.repo.FindInvitation(ctx, m.ID, actor.ID, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if inv == nil {
		return nil, httperr.ErrForbidden("not_meeting_member")
	}
	return m, nil
}

func refreshAffected(ctx context.Context, d Deps, m *models.Meeting) error {
	affected, err := affectedUsers(ctx, d.Repo, m)
	if err != nil {
		return fmt.Errorf("list invitations: %w", err)
	}
	d.refresh(ctx, affected...)
	return nil
}
