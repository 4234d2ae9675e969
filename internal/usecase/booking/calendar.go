package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	"github.com/BruksfildServices01/meeting-scheduler/internal/calendar"
	"github.com/BruksfildServices01/meeting-scheduler/internal/clock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
)

// FeedPublisher stores a rendered calendar feed and returns where it lives.
type FeedPublisher interface {
	Publish(ctx context.Context, userID string, data []byte, contentType string) (string, error)
}

// ======================================================
// EXPORT
// ======================================================

type ExportCalendar struct {
	dashboard *GetDashboard
	clock     clock.Clock
}

func NewExportCalendar(dashboard *GetDashboard, clk clock.Clock) *ExportCalendar {
	return &ExportCalendar{dashboard: dashboard, clock: clock.OrSystem(clk)}
}

func (uc *ExportCalendar) Execute(ctx context.Context, userID string) ([]byte, error) {
	b, err := uc.dashboard.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := calendar.Render(b, uc.clock.Now())
	if errors.Is(err, calendar.ErrNoEvents) {
		return nil, httperr.ErrNotFound("calendar_empty")
	}
	return data, err
}

// ======================================================
// PUBLISH
// ======================================================

type PublishCalendar struct {
	export    *ExportCalendar
	publisher FeedPublisher
	audit     *audit.Dispatcher
}

// NewPublishCalendar accepts a nil publisher when no bucket is configured.
func NewPublishCalendar(export *ExportCalendar, publisher FeedPublisher, dispatcher *audit.Dispatcher) *PublishCalendar {
	return &PublishCalendar{export: export, publisher: publisher, audit: dispatcher}
}

func (uc *PublishCalendar) Execute(ctx context.Context, userID string) (string, error) {
	if uc.publisher == nil {
		return "", httperr.ErrNotFound("calendar_publishing_disabled")
	}

	data, err := uc.export.Execute(ctx, userID)
	if err != nil {
		return "", err
	}

	key, err := uc.publisher.Publish(ctx, userID, data, calendar.ContentType)
	if err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "calendar_published",
		Entity:   "booking",
		EntityID: userID,
		Metadata: map[string]string{"key": key},
	})
	return key, nil
}
