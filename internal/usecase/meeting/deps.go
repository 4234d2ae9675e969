package meeting

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	"github.com/BruksfildServices01/meeting-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/lock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// Refresher rebuilds the dashboards of the given users.
type Refresher interface {
	Refresh(ctx context.Context, userIDs ...string)
}

// Deps bundles the collaborators shared by the meeting use cases.
type Deps struct {
	Repo      domain.Repository
	Refresher Refresher
	Locker    lock.UserLocker
	Clock     clock.Clock
	Audit     *audit.Dispatcher
	Logger    *slog.Logger
	NewID     func() string
}

func (d Deps) withDefaults() Deps {
	if d.Locker == nil {
		d.Locker = lock.NoopLocker{}
	}
	d.Clock = clock.OrSystem(d.Clock)
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

func (d Deps) refresh(ctx context.Context, userIDs ...string) {
	if d.Refresher != nil {
		d.Refresher.Refresh(ctx, userIDs...)
	}
}

var validate = newValidator()

// newValidator adds the "clock" tag: "15:04" or "15:04:05", as timezone.ParseClock accepts.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timezone.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// validateInput runs struct tags and maps failures to invalid_input.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return httperr.ErrInvalidWithDetails("invalid_input", fields)
}

// loadHosted returns the meeting when actorID hosts it. Missing meetings are
// NotFound; existing meetings owned by someone else are Forbidden.
func loadHosted(ctx context.Context, repo domain.Repository, meetingID, actorID string) (*models.Meeting, error) {
	m, err := repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, httperr.ErrNotFound("meeting_not_found")
	}
	if !domain.IsHost(m, actorID) {
		return nil, httperr.ErrForbidden("not_meeting_host")
	}
	return m, nil
}

// affectedUsers lists every registered user linked to m through the meeting
// itself or one of its invitations.
func affectedUsers(ctx context.Context, repo domain.Repository, m *models.Meeting) ([]string, error) {
	ids := domain.UserIDs(m)

	invitations, err := repo.ListInvitationsForMeeting(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	for _, inv := range invitations {
		if inv.InviteeUserID != "" {
			ids = append(ids, inv.InviteeUserID)
		}
	}
	return ids, nil
}
