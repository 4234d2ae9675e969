package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking is a per-user projection of meetings and invitations. It is always
// rebuilt wholesale and can be discarded at any time.
type Booking struct {
	UserID string `gorm:"primaryKey;size:36" json:"user_id"`

	Upcoming MeetingItemList `gorm:"type:jsonb" json:"upcoming"`
	Pending  MeetingItemList `gorm:"type:jsonb" json:"pending"`
	Canceled MeetingItemList `gorm:"type:jsonb" json:"canceled"`
	Past     MeetingItemList `gorm:"type:jsonb" json:"past"`

	UpdatedAt time.Time `json:"updated_at"`
}

type MeetingItemList = datatypes.JSONSlice[MeetingItem]

type MeetingItem struct {
	MeetingID         string `json:"meetingId"`
	InvitationID      string `json:"invitationId,omitempty"`
	Title             string `json:"title"`
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Status            string `json:"status"`
	ParticipantStatus string `json:"participantStatus,omitempty"`
	HostID            string `json:"hostId"`
	IsActive          bool   `json:"isActive"`
}
