package booking

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
)

// Refresher cascades rebuilds over every user a mutation touched. Rebuilds run
// one after another inside the caller's request; a failure is logged and the
// next user is still refreshed.
type Refresher struct {
	rebuild *RebuildBooking
	logger  *slog.Logger
}

func NewRefresher(rebuild *RebuildBooking, logger *slog.Logger) *Refresher {
	return &Refresher{rebuild: rebuild, logger: logger}
}

func (r *Refresher) Refresh(ctx context.Context, userIDs ...string) {
	if r == nil {
		return
	}

	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if _, err := r.rebuild.Execute(ctx, id); err != nil {
			log := logging.For(ctx, r.logger, "refresh_bookings", "user_id", id)
			log.Error("booking refresh failed", logging.ErrorAttrs(err)...)
		}
	}
}
