package booking

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

type Bucket string

const (
	BucketUpcoming Bucket = "upcoming"
	BucketPending  Bucket = "pending"
	BucketCanceled Bucket = "canceled"
	BucketPast     Bucket = "past"
)

// Buckets lists the dashboard lists in display order.
var Buckets = []Bucket{BucketUpcoming, BucketPending, BucketCanceled, BucketPast}

func ParseBucket(s string) (Bucket, bool) {
	for _, b := range Buckets {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

// Classify places a meeting in one bucket for a user. The first matching rule
// wins: past, cancelled/rejected, pending (non-host), accepted or host.
// p may be nil only for the host.
func Classify(m *models.Meeting, p *models.Participant, isHost bool, now time.Time) (Bucket, bool) {
	var status meeting.ParticipantStatus
	if p != nil {
		status = meeting.ParticipantStatus(p.Status)
	}

	switch {
	case meeting.IsPast(m, now):
		return BucketPast, true
	case meeting.IsCancelled(m) || status == meeting.ParticipantRejected:
		return BucketCanceled, true
	case status == meeting.ParticipantPending && !isHost:
		return BucketPending, true
	case status == meeting.ParticipantAccepted || isHost:
		return BucketUpcoming, true
	}
	return "", false
}

// Item snapshots m for the dashboard.
func Item(m *models.Meeting, participantStatus, invitationID string) models.MeetingItem {
	return models.MeetingItem{
		MeetingID:         m.ID,
		InvitationID:      invitationID,
		Title:             m.Title,
		Date:              m.Date,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		Status:            m.Status,
		ParticipantStatus: participantStatus,
		HostID:            m.HostID,
		IsActive:          m.IsActive,
	}
}

// New returns a booking with four empty lists.
func New(userID string) *models.Booking {
	return &models.Booking{
		UserID:   userID,
		Upcoming: []models.MeetingItem{},
		Pending:  []models.MeetingItem{},
		Canceled: []models.MeetingItem{},
		Past:     []models.MeetingItem{},
	}
}

func Add(b *models.Booking, bucket Bucket, item models.MeetingItem) {
	switch bucket {
	case BucketUpcoming:
		b.Upcoming = append(b.Upcoming, item)
	case BucketPending:
		b.Pending = append(b.Pending, item)
	case BucketCanceled:
		b.Canceled = append(b.Canceled, item)
	case BucketPast:
		b.Past = append(b.Past, item)
	}
}

// List returns the items of one bucket.
func List(b *models.Booking, bucket Bucket) []models.MeetingItem {
	switch bucket {
	case BucketUpcoming:
		return b.Upcoming
	case BucketPending:
		return b.Pending
	case BucketCanceled:
		return b.Canceled
	case BucketPast:
		return b.Past
	}
	return nil
}

// Sort orders every list: ascending by date, start, meeting and invitation id,
// except past which is most recent first.
func Sort(b *models.Booking) {
	sortItems(b.Upcoming, false)
	sortItems(b.Pending, false)
	sortItems(b.Canceled, false)
	sortItems(b.Past, true)
}

func sortItems(items []models.MeetingItem, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return itemLess(items[j], items[i])
		}
		return itemLess(items[i], items[j])
	})
}

func itemLess(a, b models.MeetingItem) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if a.StartTime != b.StartTime {
		return a.StartTime < b.StartTime
	}
	if a.MeetingID != b.MeetingID {
		return a.MeetingID < b.MeetingID
	}
	return a.InvitationID < b.InvitationID
}
