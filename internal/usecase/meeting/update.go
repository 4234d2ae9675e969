package meeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/lock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// UpdateMeetingInput carries optional changes; nil fields are left alone.
type UpdateMeetingInput struct {
	MeetingID string
	ActorID   string

	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Duration    *int
	Timezone    *string

	AddInvitees    []string
	RemoveInvitees []string
}

type UpdateMeetingResult struct {
	Meeting  *models.Meeting   `json:"meeting"`
	Invitees []InviteeAdvisory `json:"invitees"`
}

// ParticipantConflict names an accepted participant who could not attend at
// the requested new time.
type ParticipantConflict struct {
	UserID   string       `json:"userId,omitempty"`
	Email    string       `json:"email"`
	Conflict *ConflictRef `json:"conflict"`
}

// ======================================================
// USE CASE
// ======================================================

type UpdateMeeting struct {
	deps     Deps
	detector *ConflictDetector
}

func NewUpdateMeeting(deps Deps) *UpdateMeeting {
	deps = deps.withDefaults()
	return &UpdateMeeting{deps: deps, detector: NewConflictDetector(deps.Repo)}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateMeeting) Execute(ctx context.Context, in UpdateMeetingInput) (*UpdateMeetingResult, error) {
	log := logging.For(ctx, uc.deps.Logger, "update_meeting", "meeting_id", in.MeetingID)

	m, err := loadHosted(ctx, uc.deps.Repo, in.MeetingID, in.ActorID)
	if err != nil {
		return nil, err
	}

	host, err := uc.deps.Repo.FindUserByID(ctx, m.HostID)
	if err != nil {
		return nil, fmt.Errorf("find host: %w", err)
	}
	hostEmail := ""
	if host != nil {
		hostEmail = host.Email
	}

	// --------------------------------------------------
	// Core fields
	// --------------------------------------------------
	before := *m
	if err := applyCoreFields(m, in); err != nil {
		return nil, err
	}

	timeChanged := before.Date != m.Date || before.StartTime != m.StartTime || before.EndTime != m.EndTime
	if timeChanged && in.Duration == nil {
		w, _ := domain.Window(m)
		m.Duration = w.Minutes()
	}

	// --------------------------------------------------
	// Time-change guard
	// --------------------------------------------------
	removing := make(map[string]bool, len(in.RemoveInvitees))
	for _, email := range in.RemoveInvitees {
		if email = domain.NormalizeEmail(email); email != "" && email != domain.NormalizeEmail(hostEmail) {
			removing[email] = true
		}
	}

	if timeChanged {
		// Participants removed by this same update are not checked.
		var accepted []models.Participant
		for _, p := range domain.AcceptedParticipants(m) {
			if !removing[domain.NormalizeEmail(p.Email)] {
				accepted = append(accepted, p)
			}
		}

		lockIDs := make([]string, 0, len(accepted))
		for _, p := range accepted {
			lockIDs = append(lockIDs, p.UserID)
		}
		unlock, err := lock.LockAll(ctx, uc.deps.Locker, lockIDs)
		if err != nil {
			return nil, err
		}
		defer unlock()

		var conflicts []ParticipantConflict
		for _, p := range accepted {
			ref := p.UserID
			if ref == "" {
				ref = p.Email
			}
			c, err := uc.detector.HasConflict(ctx, ref, m.Date, m.StartTime, m.EndTime, m.ID)
			if err != nil {
				return nil, err
			}
			if c != nil {
				conflicts = append(conflicts, ParticipantConflict{UserID: p.UserID, Email: p.Email, Conflict: refOf(c)})
			}
		}

		if len(conflicts) > 0 {
			uc.deps.Audit.Dispatch(audit.Event{
				UserID:   in.ActorID,
				Action:   "meeting_conflict",
				Entity:   "meeting",
				EntityID: m.ID,
				Metadata: conflicts,
			})
			log.Info("time change rejected", "conflicts", len(conflicts))
			return nil, httperr.ErrConflict("participant_conflict", conflicts)
		}
	}

	// --------------------------------------------------
	// Participants
	// --------------------------------------------------
	var toRefresh []string

	for _, email := range in.RemoveInvitees {
		email = domain.NormalizeEmail(email)
		if !removing[email] {
			continue
		}
		if removed, ok := domain.RemoveParticipant(m, email); ok && removed.UserID != "" {
			toRefresh = append(toRefresh, removed.UserID)
		}
		inv, err := uc.deps.Repo.FindInvitation(ctx, m.ID, "", email)
		if err != nil {
			return nil, fmt.Errorf("find invitation: %w", err)
		}
		if inv != nil {
			if err := uc.deps.Repo.DeleteInvitation(ctx, inv.ID); err != nil {
				return nil, fmt.Errorf("delete invitation: %w", err)
			}
			toRefresh = append(toRefresh, inv.InviteeUserID)
		}
	}

	var added []string
	for _, email := range normalizeInvitees(in.AddInvitees, hostEmail) {
		if domain.AddParticipant(m, models.Participant{Email: email, Status: string(domain.ParticipantPending)}) {
			added = append(added, email)
		}
	}

	if err := uc.deps.Repo.UpdateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}

	advisories := make([]InviteeAdvisory, 0, len(added))
	for _, email := range added {
		advisory, err := invite(ctx, uc.deps, uc.detector, m, email)
		if err != nil {
			return nil, err
		}
		advisories = append(advisories, advisory)
	}

	affected, err := affectedUsers(ctx, uc.deps.Repo, m)
	if err != nil {
		return nil, err
	}
	uc.deps.refresh(ctx, append(affected, toRefresh...)...)

	uc.deps.Audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "meeting_updated",
		Entity:   "meeting",
		EntityID: m.ID,
		Metadata: map[string]any{
			"time_changed": timeChanged,
			"added":        added,
			"removed":      in.RemoveInvitees,
		},
	})

	return &UpdateMeetingResult{Meeting: m, Invitees: advisories}, nil
}

func applyCoreFields(m *models.Meeting, in UpdateMeetingInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" || len(title) > 200 {
			return httperr.ErrInvalid("invalid_title")
		}
		m.Title = title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Date != nil {
		if _, err := timezone.ParseDate(*in.Date); err != nil {
			return httperr.ErrInvalid("invalid_date")
		}
		m.Date = *in.Date
	}
	if in.StartTime != nil {
		m.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		m.EndTime = *in.EndTime
	}
	if in.Duration != nil {
		if *in.Duration < 0 {
			return httperr.ErrInvalid("invalid_duration")
		}
		m.Duration = *in.Duration
	}
	if in.Timezone != nil {
		if *in.Timezone != "" && !timezone.IsValid(*in.Timezone) {
			return httperr.ErrInvalid("invalid_timezone")
		}
		m.Timezone = *in.Timezone
	}

	w, err := domain.Window(m)
	if err != nil || !w.Valid() {
		return httperr.ErrInvalid("invalid_time_range")
	}
	return nil
}
