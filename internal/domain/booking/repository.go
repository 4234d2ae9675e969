package booking

import (
	"context"

	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

type Repository interface {
	// GetBooking returns (nil, nil) when no projection was stored yet.
	GetBooking(ctx context.Context, userID string) (*models.Booking, error)

	// ReplaceBooking overwrites all four lists. Last writer wins.
	ReplaceBooking(ctx context.Context, b *models.Booking) error
}
