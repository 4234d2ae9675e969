package meeting

import (
	"strings"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
)

// ===============================
// Meeting Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusScheduled
}

// NextStatus is the host's status cycle: scheduled -> completed -> cancelled -> scheduled.
func NextStatus(current Status) Status {
	switch current {
	case StatusScheduled:
		return StatusCompleted
	case StatusCompleted:
		return StatusCancelled
	default:
		return StatusScheduled
	}
}

// CanCancel rejects cancelling an already cancelled meeting.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrConflict("invalid_state", nil)
	}
	return nil
}

// ===============================
// Participant Status
// ===============================

type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "pending"
	ParticipantAccepted ParticipantStatus = "accepted"
	ParticipantRejected ParticipantStatus = "rejected"
)

// ParseResponse accepts only the two terminal answers.
func ParseResponse(s string) (ParticipantStatus, error) {
	switch ParticipantStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ParticipantAccepted:
		return ParticipantAccepted, nil
	case ParticipantRejected:
		return ParticipantRejected, nil
	}
	return "", httperr.ErrInvalid("invalid_response_status")
}

// CanRespond validates pending -> accepted|rejected. Repeating the current
// terminal answer reports noop; switching between terminal answers fails.
func CanRespond(current, next ParticipantStatus) (noop bool, err error) {
	switch current {
	case ParticipantPending, "":
		return false, nil
	case next:
		return true, nil
	default:
		return false, httperr.ErrConflict("invitation_already_resolved", map[string]string{
			"status": string(current),
		})
	}
}
