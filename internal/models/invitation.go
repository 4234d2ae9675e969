package models

import "time"

type Invitation struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	MeetingID string `gorm:"size:36;index;not null" json:"meeting_id"`
	InviterID string `gorm:"size:36" json:"inviter_id"`

	// Empty until the invitee email resolves to a registered user.
	InviteeUserID string `gorm:"size:36;index" json:"invitee_user_id,omitempty"`
	InviteeEmail  string `gorm:"size:100;index" json:"invitee_email"`

	Status      string     `gorm:"size:16;index;default:'pending'" json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
