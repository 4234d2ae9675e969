package meeting

import (
	"context"

	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// Lookups return (nil, nil) when the record does not exist.

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveAvailability(ctx context.Context, userID string, days []models.AvailabilityDay) error
}

type MeetingRepository interface {
	CreateMeeting(ctx context.Context, m *models.Meeting) error
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, m *models.Meeting) error
	DeleteMeeting(ctx context.Context, id string) error

	// ListMeetingsForUser returns meetings hosted by userID or listing userID as
	// a participant.
	ListMeetingsForUser(ctx context.Context, userID string) ([]models.Meeting, error)

	// ListCommitmentsOnDate returns meetings on date that userID hosts or has
	// accepted (matched by user id or email), minus excludeID.
	ListCommitmentsOnDate(ctx context.Context, userID, email, date, excludeID string) ([]models.Meeting, error)
}

type InvitationRepository interface {
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, id string) (*models.Invitation, error)
	FindInvitation(ctx context.Context, meetingID, userID, email string) (*models.Invitation, error)
	UpdateInvitation(ctx context.Context, inv *models.Invitation) error
	DeleteInvitation(ctx context.Context, id string) error
	DeleteInvitationsForMeeting(ctx context.Context, meetingID string) error
	ListInvitationsForMeeting(ctx context.Context, meetingID string) ([]models.Invitation, error)

	// ListPendingInvitations matches by invitee user id or email.
	ListPendingInvitations(ctx context.Context, userID, email string) ([]models.Invitation, error)

	// LinkInvitations back-fills userID onto invitations addressed to email.
	LinkInvitations(ctx context.Context, userID, email string) error
}

type Repository interface {
	UserRepository
	MeetingRepository
	InvitationRepository
}
