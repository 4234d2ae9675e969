package meeting

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// InviteeAdvisory reports, per invitee, whether the invite landed on a
// registered user and whether that user is already busy. A conflict never
// blocks the invitation.
type InviteeAdvisory struct {
	Email        string       `json:"email"`
	UserID       string       `json:"userId,omitempty"`
	InvitationID string       `json:"invitationId"`
	Conflict     *ConflictRef `json:"conflict,omitempty"`
}

// normalizeInvitees trims, lowercases and de-duplicates emails, dropping the
// host's own address.
func normalizeInvitees(emails []string, hostEmail string) []string {
	hostEmail = domain.NormalizeEmail(hostEmail)
	seen := map[string]bool{hostEmail: true}

	var out []string
	for _, e := range emails {
		e = domain.NormalizeEmail(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// invite persists a pending Invitation for email on m. The matching
// participant entry must already be on m.
func invite(
	ctx context.Context,
	d Deps,
	detector *ConflictDetector,
	m *models.Meeting,
	email string,
) (InviteeAdvisory, error) {

	advisory := InviteeAdvisory{Email: email}

	invitee, err := d.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		return advisory, fmt.Errorf("find invitee: %w", err)
	}

	inv := &models.Invitation{
		ID:           d.NewID(),
		MeetingID:    m.ID,
		InviterID:    m.HostID,
		InviteeEmail: email,
		Status:       string(domain.ParticipantPending),
	}
	if invitee != nil {
		inv.InviteeUserID = invitee.ID
		advisory.UserID = invitee.ID
	}

	if err := d.Repo.CreateInvitation(ctx, inv); err != nil {
		return advisory, fmt.Errorf("create invitation: %w", err)
	}
	advisory.InvitationID = inv.ID

	if invitee != nil {
		conflict, err := detector.HasConflict(ctx, invitee.ID, m.Date, m.StartTime, m.EndTime, m.ID)
		if err != nil {
			return advisory, err
		}
		advisory.Conflict = refOf(conflict)
	}
	return advisory, nil
}
