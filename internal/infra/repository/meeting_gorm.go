package repository

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/booking"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// MeetingGormRepository stores users, meetings, invitations and bookings in
// Postgres. Participants and booking lists are jsonb columns.
type MeetingGormRepository struct {
	db *gorm.DB
}

func NewMeetingGormRepository(db *gorm.DB) *MeetingGormRepository {
	return &MeetingGormRepository{db: db}
}

// first runs q into out and maps a missing row to (nil, nil).
func first[T any](q *gorm.DB, out *T) (*T, error) {
	if err := q.First(out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// participantFilter renders a jsonb containment operand matching one
// participant entry with the given fields.
func participantFilter(fields map[string]string) string {
	b, _ := json.Marshal([]map[string]string{fields})
	return string(b)
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *MeetingGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *MeetingGormRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return first(r.db.WithContext(ctx).Where("id = ?", id), &models.User{})
}

func (r *MeetingGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first(r.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)), &models.User{})
}

func (r *MeetingGormRepository) SaveAvailability(
	ctx context.Context,
	userID string,
	days []models.AvailabilityDay,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("availability", models.AvailabilityDays(days)).Error
}

// --------------------------------------------------
// Meetings
// --------------------------------------------------

func (r *MeetingGormRepository) CreateMeeting(ctx context.Context, m *models.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MeetingGormRepository) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	return first(r.db.WithContext(ctx).Where("id = ?", id), &models.Meeting{})
}

func (r *MeetingGormRepository) UpdateMeeting(ctx context.Context, m *models.Meeting) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MeetingGormRepository) DeleteMeeting(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Meeting{}).Error
}

func (r *MeetingGormRepository) ListMeetingsForUser(ctx context.Context, userID string) ([]models.Meeting, error) {
	var out []models.Meeting
	err := r.db.WithContext(ctx).
		Where("host_id = ? OR participants @> ?::jsonb",
			userID,
			participantFilter(map[string]string{"userId": userID}),
		).
		Order("date ASC, start_time ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *MeetingGormRepository) ListCommitmentsOnDate(
	ctx context.Context,
	userID, email, date, excludeID string,
) ([]models.Meeting, error) {

	accepted := string(domain.ParticipantAccepted)

	q := r.db.WithContext(ctx).
		Where("date = ? AND id <> ?", date, excludeID)

	match := r.db.Where("host_id = ?", userID).
		Or("participants @> ?::jsonb", participantFilter(map[string]string{"userId": userID, "status": accepted}))
	if email != "" {
		match = match.Or("participants @> ?::jsonb", participantFilter(map[string]string{"email": email, "status": accepted}))
	}

	var out []models.Meeting
	err := q.Where(match).
		Order("start_time ASC, id ASC").
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Invitations
// --------------------------------------------------

func (r *MeetingGormRepository) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *MeetingGormRepository) GetInvitation(ctx context.Context, id string) (*models.Invitation, error) {
	return first(r.db.WithContext(ctx).Where("id = ?", id), &models.Invitation{})
}

func (r *MeetingGormRepository) FindInvitation(
	ctx context.Context,
	meetingID, userID, email string,
) (*models.Invitation, error) {

	match := r.db.Where("1 = 0")
	if userID != "" {
		match = match.Or("invitee_user_id = ?", userID)
	}
	if email != "" {
		match = match.Or("invitee_email = ?", domain.NormalizeEmail(email))
	}

	return first(
		r.db.WithContext(ctx).
			Where("meeting_id = ?", meetingID).
			Where(match).
			Order("created_at ASC"),
		&models.Invitation{},
	)
}

func (r *MeetingGormRepository) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *MeetingGormRepository) DeleteInvitation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invitation{}).Error
}

func (r *MeetingGormRepository) DeleteInvitationsForMeeting(ctx context.Context, meetingID string) error {
	return r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Delete(&models.Invitation{}).Error
}

func (r *MeetingGormRepository) ListInvitationsForMeeting(ctx context.Context, meetingID string) ([]models.Invitation, error) {
	var out []models.Invitation
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *MeetingGormRepository) ListPendingInvitations(
	ctx context.Context,
	userID, email string,
) ([]models.Invitation, error) {

	match := r.db.Where("1 = 0")
	if userID != "" {
		match = match.Or("invitee_user_id = ?", userID)
	}
	if email != "" {
		match = match.Or("invitee_email = ?", domain.NormalizeEmail(email))
	}

	var out []models.Invitation
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ParticipantPending)).
		Where(match).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *MeetingGormRepository) LinkInvitations(ctx context.Context, userID, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("invitee_email = ? AND (invitee_user_id = '' OR invitee_user_id IS NULL)", domain.NormalizeEmail(email)).
		Update("invitee_user_id", userID).Error
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *MeetingGormRepository) GetBooking(ctx context.Context, userID string) (*models.Booking, error) {
	return first(r.db.WithContext(ctx).Where("user_id = ?", userID), &models.Booking{})
}

// ReplaceBooking upserts the row and overwrites every list. No version check:
// concurrent rebuilds resolve to whichever write lands last.
func (r *MeetingGormRepository) ReplaceBooking(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(b).Error
}

var (
	_ domain.Repository  = (*MeetingGormRepository)(nil)
	_ booking.Repository = (*MeetingGormRepository)(nil)
)
