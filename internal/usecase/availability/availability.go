package availability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// Schedule reads and replaces a user's weekly availability. Every write
// loads the current days, applies one pure setter and saves the result.
type Schedule struct {
	users  meeting.UserRepository
	audit  *audit.Dispatcher
	logger *slog.Logger
}

func NewSchedule(users meeting.UserRepository, dispatcher *audit.Dispatcher, logger *slog.Logger) *Schedule {
	return &Schedule{users: users, audit: dispatcher, logger: logger}
}

func (uc *Schedule) Get(ctx context.Context, userID string) ([]models.AvailabilityDay, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Availability == nil {
		return []models.AvailabilityDay{}, nil
	}
	return user.Availability, nil
}

func (uc *Schedule) SetDay(ctx context.Context, userID, day string, in domain.DayUpdate) ([]models.AvailabilityDay, error) {
	return uc.apply(ctx, userID, "set_day", func(days []models.AvailabilityDay) ([]models.AvailabilityDay, error) {
		return domain.SetDay(days, day, in.IsAvailable, in.Slots)
	})
}

func (uc *Schedule) SetWeekend(ctx context.Context, userID string, in domain.WeekendUpdate) ([]models.AvailabilityDay, error) {
	return uc.apply(ctx, userID, "set_weekend", func(days []models.AvailabilityDay) ([]models.AvailabilityDay, error) {
		return domain.SetWeekend(days, in)
	})
}

func (uc *Schedule) CopySlots(ctx context.Context, userID, source string, targets []string) ([]models.AvailabilityDay, error) {
	return uc.apply(ctx, userID, "copy_slots", func(days []models.AvailabilityDay) ([]models.AvailabilityDay, error) {
		return domain.CopySlots(days, source, targets)
	})
}

func (uc *Schedule) apply(
	ctx context.Context,
	userID, op string,
	mutate func([]models.AvailabilityDay) ([]models.AvailabilityDay, error),
) ([]models.AvailabilityDay, error) {

	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	days, err := mutate(user.Availability)
	if err != nil {
		return nil, err
	}

	if err := uc.users.SaveAvailability(ctx, userID, days); err != nil {
		return nil, fmt.Errorf("save availability: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "availability_updated",
		Entity:   "user",
		EntityID: userID,
		Metadata: map[string]string{"op": op},
	})

	logging.For(ctx, uc.logger, "availability", "user_id", userID).Debug("availability saved", "op", op)
	return days, nil
}

func (uc *Schedule) load(ctx context.Context, userID string) (*models.User, error) {
	user, err := uc.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return user, nil
}
