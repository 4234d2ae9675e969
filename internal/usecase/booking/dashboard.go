package booking

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type DashboardQuery struct {
	UserID string
	Bucket string // one bucket, or "" / "all"
	Search string
	Page   int
	Limit  int
}

type DashboardItem struct {
	Bucket domain.Bucket `json:"bucket"`
	models.MeetingItem
}

type Dashboard struct {
	Items  []DashboardItem       `json:"items"`
	Counts map[domain.Bucket]int `json:"counts"`
	Page   int                   `json:"page"`
	Limit  int                   `json:"limit"`
	Total  int64                 `json:"total"`
}

// ======================================================
// USE CASE
// ======================================================

// GetDashboard searches and pages over the stored projection, building it on
// first access.
type GetDashboard struct {
	bookings domain.Repository
	rebuild  *RebuildBooking
}

func NewGetDashboard(bookings domain.Repository, rebuild *RebuildBooking) *GetDashboard {
	return &GetDashboard{bookings: bookings, rebuild: rebuild}
}

func (uc *GetDashboard) Execute(ctx context.Context, q DashboardQuery) (*Dashboard, error) {
	buckets, err := parseBuckets(q.Bucket)
	if err != nil {
		return nil, err
	}

	b, err := uc.Load(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePaging(q.Page, q.Limit)
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := &Dashboard{
		Items:  []DashboardItem{},
		Counts: make(map[domain.Bucket]int, len(domain.Buckets)),
		Page:   page,
		Limit:  limit,
	}

	var matched []DashboardItem
	for _, bucket := range domain.Buckets {
		out.Counts[bucket] = len(domain.List(b, bucket))
	}
	for _, bucket := range buckets {
		for _, item := range domain.List(b, bucket) {
			if needle != "" && !strings.Contains(strings.ToLower(item.Title), needle) {
				continue
			}
			matched = append(matched, DashboardItem{Bucket: bucket, MeetingItem: item})
		}
	}

	out.Total = int64(len(matched))
	// Pages past the end are empty; checked before multiplying so huge pages cannot overflow.
	if page-1 <= len(matched)/limit {
		start := (page - 1) * limit
		end := start + limit
		if end > len(matched) {
			end = len(matched)
		}
		if start < end {
			out.Items = matched[start:end]
		}
	}
	return out, nil
}

// Load returns the stored projection, rebuilding it when none exists yet.
func (uc *GetDashboard) Load(ctx context.Context, userID string) (*models.Booking, error) {
	b, err := uc.bookings.GetBooking(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b != nil {
		return b, nil
	}

	b, err = uc.rebuild.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return b, nil
}

func parseBuckets(raw string) ([]domain.Bucket, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" {
		return domain.Buckets, nil
	}
	bucket, ok := domain.ParseBucket(raw)
	if !ok {
		return nil, httperr.ErrInvalid("invalid_bucket")
	}
	return []domain.Bucket{bucket}, nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
