package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

var now = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func meetingOn(date string, status meeting.Status) *models.Meeting {
	return &models.Meeting{
		ID: "m", HostID: "host", Title: "Sync",
		Date: date, StartTime: "09:00", EndTime: "10:00",
		Status: string(status), IsActive: true,
	}
}

func participant(status meeting.ParticipantStatus) *models.Participant {
	return &models.Participant{UserID: "u", Email: "u@x.com", Status: string(status)}
}

func TestClassifyPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		m      *models.Meeting
		p      *models.Participant
		isHost bool
		want   Bucket
		ok     bool
	}{
		{"past beats rejected", meetingOn("2025-03-01", meeting.StatusScheduled), participant(meeting.ParticipantRejected), false, BucketPast, true},
		{"past beats cancelled", meetingOn("2025-03-01", meeting.StatusCancelled), participant(meeting.ParticipantAccepted), false, BucketPast, true},
		{"cancelled meeting", meetingOn("2025-03-10", meeting.StatusCancelled), participant(meeting.ParticipantAccepted), false, BucketCanceled, true},
		{"rejected participant", meetingOn("2025-03-10", meeting.StatusScheduled), participant(meeting.ParticipantRejected), false, BucketCanceled, true},
		{"cancelled beats pending", meetingOn("2025-03-10", meeting.StatusCancelled), participant(meeting.ParticipantPending), false, BucketCanceled, true},
		{"pending invitee", meetingOn("2025-03-10", meeting.StatusScheduled), participant(meeting.ParticipantPending), false, BucketPending, true},
		{"host never pending", meetingOn("2025-03-10", meeting.StatusScheduled), participant(meeting.ParticipantPending), true, BucketUpcoming, true},
		{"host without entry", meetingOn("2025-03-10", meeting.StatusScheduled), nil, true, BucketUpcoming, true},
		{"accepted", meetingOn("2025-03-10", meeting.StatusCompleted), participant(meeting.ParticipantAccepted), false, BucketUpcoming, true},
		{"unknown status dropped", meetingOn("2025-03-10", meeting.StatusScheduled), participant("maybe"), false, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.m, tc.p, tc.isHost, now)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSortOrdersListsDeterministically(t *testing.T) {
	b := New("u")
	Add(b, BucketUpcoming, models.MeetingItem{MeetingID: "b", Date: "2025-03-10", StartTime: "09:00"})
	Add(b, BucketUpcoming, models.MeetingItem{MeetingID: "a", Date: "2025-03-10", StartTime: "09:00"})
	Add(b, BucketUpcoming, models.MeetingItem{MeetingID: "c", Date: "2025-03-09", StartTime: "15:00"})
	Add(b, BucketPast, models.MeetingItem{MeetingID: "old", Date: "2025-01-01", StartTime: "09:00"})
	Add(b, BucketPast, models.MeetingItem{MeetingID: "recent", Date: "2025-03-01", StartTime: "09:00"})

	Sort(b)

	ids := func(items []models.MeetingItem) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.MeetingID)
		}
		return out
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids(b.Upcoming))
	assert.Equal(t, []string{"recent", "old"}, ids(b.Past))
	assert.Empty(t, List(b, BucketPending))
}

func TestParseBucket(t *testing.T) {
	b, ok := ParseBucket("canceled")
	assert.True(t, ok)
	assert.Equal(t, BucketCanceled, b)

	_, ok = ParseBucket("cancelled")
	assert.False(t, ok)
}
