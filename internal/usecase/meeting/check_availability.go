package meeting

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

const (
	ReasonDayUnavailable      = "day_unavailable"
	ReasonOutsideAvailability = "outside_availability"
	ReasonTimeConflict        = "time_conflict"
)

type AvailabilityInput struct {
	UserID    string
	Date      string
	StartTime string
	EndTime   string
}

type AvailabilityResult struct {
	Available bool         `json:"available"`
	Reason    string       `json:"reason,omitempty"`
	Day       string       `json:"day"`
	Conflict  *ConflictRef `json:"conflict,omitempty"`
}

// CheckAvailability tests a window against the user's weekly schedule and,
// when it fits, against existing commitments.
type CheckAvailability struct {
	repo     domain.Repository
	detector *ConflictDetector
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo, detector: NewConflictDetector(repo)}
}

func (uc *CheckAvailability) Execute(ctx context.Context, in AvailabilityInput) (*AvailabilityResult, error) {
	window, err := timezone.NewWindow(in.Date, in.StartTime, in.EndTime)
	if err != nil || !window.Valid() {
		return nil, httperr.ErrInvalid("invalid_time_window")
	}

	user, err := uc.repo.FindUserByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}

	date, _ := timezone.ParseDate(in.Date)
	dayKey := availability.WeekdayOf(date)
	out := &AvailabilityResult{Day: dayKey}

	day, ok := availability.Find(user.Availability, dayKey)
	if !ok {
		day = models.AvailabilityDay{Day: dayKey, IsAvailable: true, Slots: []models.Slot{availability.AllDay()}}
	}

	if !day.IsAvailable {
		out.Reason = ReasonDayUnavailable
		return out, nil
	}
	if !availability.Fits(day, in.Date, window) {
		out.Reason = ReasonOutsideAvailability
		return out, nil
	}

	conflict, err := uc.detector.HasConflict(ctx, user.ID, in.Date, in.StartTime, in.EndTime, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		out.Reason = ReasonTimeConflict
		out.Conflict = refOf(conflict)
		return out, nil
	}

	out.Available = true
	return out, nil
}
