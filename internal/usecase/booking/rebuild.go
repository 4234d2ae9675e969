package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/meeting-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// RebuildBooking recomputes a user's dashboard from the meeting and invitation
// records and replaces the stored projection wholesale.
type RebuildBooking struct {
	repo     meeting.Repository
	bookings domain.Repository
	clock    clock.Clock
	logger   *slog.Logger
}

func NewRebuildBooking(
	repo meeting.Repository,
	bookings domain.Repository,
	clk clock.Clock,
	logger *slog.Logger,
) *RebuildBooking {
	return &RebuildBooking{
		repo:     repo,
		bookings: bookings,
		clock:    clock.OrSystem(clk),
		logger:   logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute returns (nil, nil) without touching storage when the user does not
// exist.
func (uc *RebuildBooking) Execute(ctx context.Context, userID string) (*models.Booking, error) {
	log := logging.For(ctx, uc.logger, "rebuild_booking", "user_id", userID)

	user, err := uc.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		log.Warn("rebuild skipped, user not found")
		return nil, nil
	}

	now := uc.clock.Now()
	b := domain.New(userID)

	// --------------------------------------------------
	// Participant-derived entries
	// --------------------------------------------------
	meetings, err := uc.repo.ListMeetingsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	for i := range meetings {
		m := &meetings[i]
		isHost := meeting.IsHost(m, userID)

		var p *models.Participant
		if idx := meeting.FindParticipant(m, userID, user.Email); idx >= 0 {
			p = &m.Participants[idx]
		}
		if p == nil && !isHost {
			continue
		}

		bucket, ok := domain.Classify(m, p, isHost, now)
		if !ok {
			continue
		}

		status := string(meeting.ParticipantAccepted)
		if p != nil {
			status = p.Status
		}
		domain.Add(b, bucket, domain.Item(m, status, ""))
	}

	// --------------------------------------------------
	// Invitation-derived pending entries
	// --------------------------------------------------
	invitations, err := uc.repo.ListPendingInvitations(ctx, userID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	for _, inv := range invitations {
		m, err := uc.repo.GetMeeting(ctx, inv.MeetingID)
		if err != nil {
			return nil, fmt.Errorf("load meeting %s: %w", inv.MeetingID, err)
		}
		if m == nil || meeting.IsHost(m, userID) || meeting.IsPast(m, now) {
			continue
		}
		domain.Add(b, domain.BucketPending, domain.Item(m, inv.Status, inv.ID))
	}

	domain.Sort(b)

	if err := uc.bookings.ReplaceBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("replace booking: %w", err)
	}

	log.Debug("booking rebuilt",
		"upcoming", len(b.Upcoming),
		"pending", len(b.Pending),
		"canceled", len(b.Canceled),
		"past", len(b.Past),
	)
	return b, nil
}
