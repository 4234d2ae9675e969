package meeting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// ConflictRef is the part of a conflicting meeting surfaced to callers.
type ConflictRef struct {
	MeetingID string `json:"meetingId"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func refOf(m *models.Meeting) *ConflictRef {
	if m == nil {
		return nil
	}
	return &ConflictRef{
		MeetingID: m.ID,
		Title:     m.Title,
		Date:      m.Date,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
}

// ======================================================
// DETECTOR
// ======================================================

// ConflictDetector finds an existing commitment overlapping a window.
type ConflictDetector struct {
	repo domain.Repository
}

func NewConflictDetector(repo domain.Repository) *ConflictDetector {
	return &ConflictDetector{repo: repo}
}

// HasConflict resolves userRef (user id or email) and returns the first
// meeting on date that the user hosts or accepted and whose window overlaps
// [start, end). Cancelled meetings never conflict. Candidates are scanned by
// start time, then id. An unknown user has no conflicts.
func (d *ConflictDetector) HasConflict(
	ctx context.Context,
	userRef, date, start, end, excludeID string,
) (*models.Meeting, error) {

	window, err := timezone.NewWindow(date, start, end)
	if err != nil || !window.Valid() {
		return nil, httperr.ErrInvalid("invalid_time_window")
	}

	user, err := d.resolve(ctx, userRef)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	candidates, err := d.repo.ListCommitmentsOnDate(ctx, user.ID, user.Email, date, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].StartTime != candidates[j].StartTime {
			return candidates[i].StartTime < candidates[j].StartTime
		}
		return candidates[i].ID < candidates[j].ID
	})

	for i := range candidates {
		m := &candidates[i]
		if domain.IsCancelled(m) {
			continue
		}
		other, err := domain.Window(m)
		if err != nil {
			continue
		}
		if window.Overlaps(other) {
			return m, nil
		}
	}
	return nil, nil
}

func (d *ConflictDetector) resolve(ctx context.Context, userRef string) (*models.User, error) {
	userRef = strings.TrimSpace(userRef)
	if userRef == "" {
		return nil, nil
	}

	if !strings.Contains(userRef, "@") {
		u, err := d.repo.FindUserByID(ctx, userRef)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		if u != nil {
			return u, nil
		}
	}

	u, err := d.repo.FindUserByEmail(ctx, domain.NormalizeEmail(userRef))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// ======================================================
// CHECK TIME CONFLICT
// ======================================================

type TimeConflictInput struct {
	UserID           string
	Date             string
	StartTime        string
	EndTime          string
	ExcludeMeetingID string
}

type TimeConflict struct {
	HasConflict bool         `json:"hasConflict"`
	Conflict    *ConflictRef `json:"conflict,omitempty"`
}

type CheckTimeConflict struct {
	detector *ConflictDetector
}

func NewCheckTimeConflict(repo domain.Repository) *CheckTimeConflict {
	return &CheckTimeConflict{detector: NewConflictDetector(repo)}
}

func (uc *CheckTimeConflict) Execute(ctx context.Context, in TimeConflictInput) (*TimeConflict, error) {
	m, err := uc.detector.HasConflict(ctx, in.UserID, in.Date, in.StartTime, in.EndTime, in.ExcludeMeetingID)
	if err != nil {
		return nil, err
	}
	return &TimeConflict{HasConflict: m != nil, Conflict: refOf(m)}, nil
}
