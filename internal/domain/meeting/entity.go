package meeting

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	"github.com/BruksfildServices01/meeting-scheduler/internal/timezone"
)

// ===============================
// Participants
// ===============================

// NormalizeEmail is the identity key used for invitees.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindParticipant returns the index of the entry matching userID or email, or -1.
func FindParticipant(m *models.Meeting, userID, email string) int {
	email = NormalizeEmail(email)
	for i, p := range m.Participants {
		if userID != "" && p.UserID == userID {
			return i
		}
		if email != "" && NormalizeEmail(p.Email) == email {
			return i
		}
	}
	return -1
}

// AddParticipant inserts p unless an entry with the same email already exists.
func AddParticipant(m *models.Meeting, p models.Participant) bool {
	p.Email = NormalizeEmail(p.Email)
	if FindParticipant(m, "", p.Email) >= 0 {
		return false
	}
	m.Participants = append(m.Participants, p)
	return true
}

// RemoveParticipant drops the entry for email and returns it.
func RemoveParticipant(m *models.Meeting, email string) (models.Participant, bool) {
	idx := FindParticipant(m, "", email)
	if idx < 0 {
		return models.Participant{}, false
	}
	removed := m.Participants[idx]
	m.Participants = append(m.Participants[:idx:idx], m.Participants[idx+1:]...)
	return removed, true
}

// Respond records status on the entry for userID/email, inserting one when
// insert is set and none exists. The user id is back-filled.
func Respond(m *models.Meeting, userID, email string, status ParticipantStatus, at time.Time, insert bool) bool {
	idx := FindParticipant(m, userID, email)
	if idx < 0 {
		if !insert {
			return false
		}
		m.Participants = append(m.Participants, models.Participant{Email: NormalizeEmail(email)})
		idx = len(m.Participants) - 1
	}

	p := &m.Participants[idx]
	p.Status = string(status)
	p.ResponseAt = &at
	if p.UserID == "" {
		p.UserID = userID
	}
	return true
}

// AcceptedParticipants returns accepted entries other than the host.
func AcceptedParticipants(m *models.Meeting) []models.Participant {
	var out []models.Participant
	for _, p := range m.Participants {
		if p.Status == string(ParticipantAccepted) && p.UserID != m.HostID {
			out = append(out, p)
		}
	}
	return out
}

// UserIDs returns the host and every participant with a known user id.
func UserIDs(m *models.Meeting) []string {
	out := []string{m.HostID}
	for _, p := range m.Participants {
		if p.UserID != "" {
			out = append(out, p.UserID)
		}
	}
	return out
}

func IsHost(m *models.Meeting, userID string) bool {
	return userID != "" && m.HostID == userID
}

// ===============================
// Domain Actions
// ===============================

func Cancel(m *models.Meeting) error {
	if err := CanCancel(Status(m.Status)); err != nil {
		return err
	}
	m.Status = string(StatusCancelled)
	return nil
}

func CycleStatus(m *models.Meeting) {
	m.Status = string(NextStatus(Status(m.Status)))
}

func IsCancelled(m *models.Meeting) bool {
	return Status(m.Status) == StatusCancelled
}

// ===============================
// Time
// ===============================

func Window(m *models.Meeting) (timezone.Window, error) {
	return timezone.NewWindow(m.Date, m.StartTime, m.EndTime)
}

// IsPast compares naive wall-clock values: the date is before today, or it is
// today and the meeting has already ended.
func IsPast(m *models.Meeting, now time.Time) bool {
	now = timezone.Naive(now)
	date, err := timezone.ParseDate(m.Date)
	if err != nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return true
	}
	if !date.Equal(today) {
		return false
	}

	end, err := timezone.At(m.Date, m.EndTime)
	if err != nil {
		return false
	}
	return end.Before(now)
}
