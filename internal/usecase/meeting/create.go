package meeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateMeetingInput struct {
	HostID string `validate:"required"`

	Title       string `validate:"required,max=200"`
	Description string

	Date      string `validate:"required,datetime=2006-01-02"`
	StartTime string `validate:"required,clock"`
	EndTime   string `validate:"required,clock"`
	Duration  int    `validate:"gte=0"`
	Timezone  string `validate:"omitempty,timezone"`

	Invitees []string `validate:"dive,email"`
}

type CreateMeetingResult struct {
	Meeting  *models.Meeting   `json:"meeting"`
	Invitees []InviteeAdvisory `json:"invitees"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateMeeting struct {
	deps     Deps
	detector *ConflictDetector
}

func NewCreateMeeting(deps Deps) *CreateMeeting {
	deps = deps.withDefaults()
	return &CreateMeeting{deps: deps, detector: NewConflictDetector(deps.Repo)}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateMeeting) Execute(ctx context.Context, in CreateMeetingInput) (*CreateMeetingResult, error) {
	log := logging.For(ctx, uc.deps.Logger, "create_meeting", "host_id", in.HostID)

	in.Title = strings.TrimSpace(in.Title)
	in.Invitees = trimAll(in.Invitees)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	window, err := timezone.NewWindow(in.Date, in.StartTime, in.EndTime)
	if err != nil || !window.Valid() {
		return nil, httperr.ErrInvalid("invalid_time_range")
	}

	// --------------------------------------------------
	// Host
	// --------------------------------------------------
	host, err := uc.deps.Repo.FindUserByID(ctx, in.HostID)
	if err != nil {
		return nil, fmt.Errorf("find host: %w", err)
	}
	if host == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}

	now := uc.deps.Clock.Now()

	duration := in.Duration
	if duration == 0 {
		duration = window.Minutes()
	}

	m := &models.Meeting{
		ID:          uc.deps.NewID(),
		HostID:      host.ID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Duration:    duration,
		Timezone:    in.Timezone,
		Status:      string(domain.InitialStatus()),
		IsActive:    true,
		Participants: models.ParticipantList{{
			UserID:     host.ID,
			Email:      host.Email,
			Status:     string(domain.ParticipantAccepted),
			ResponseAt: &now,
		}},
	}

	// --------------------------------------------------
	// Participants
	// --------------------------------------------------
	invitees := normalizeInvitees(in.Invitees, host.Email)
	for _, email := range invitees {
		domain.AddParticipant(m, models.Participant{
			Email:  email,
			Status: string(domain.ParticipantPending),
		})
	}

	if err := uc.deps.Repo.CreateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	// --------------------------------------------------
	// Invitations
	// --------------------------------------------------
	advisories := make([]InviteeAdvisory, 0, len(invitees))
	toRefresh := []string{host.ID}
	for _, email := range invitees {
		advisory, err := invite(ctx, uc.deps, uc.detector, m, email)
		if err != nil {
			return nil, err
		}
		if advisory.Conflict != nil {
			log.Info("invitee already busy", "email", email, "conflict_meeting_id", advisory.Conflict.MeetingID)
		}
		advisories = append(advisories, advisory)
		toRefresh = append(toRefresh, advisory.UserID)
	}

	uc.deps.refresh(ctx, toRefresh...)

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   host.ID,
		Action:   "meeting_created",
		Entity:   "meeting",
		EntityID: m.ID,
		Metadata: map[string]any{"invitees": invitees},
	})

	log.Info("meeting created", "meeting_id", m.ID, "invitees", len(invitees))
	return &CreateMeetingResult{Meeting: m, Invitees: advisories}, nil
}
