package models

import (
	"time"

	"gorm.io/datatypes"
)

type Meeting struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	HostID string `gorm:"size:36;index;not null" json:"host_id"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Naive calendar date and wall-clock times; Timezone is only a label.
	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
	Duration  int    `json:"duration"`
	Timezone  string `gorm:"size:64" json:"timezone"`

	Status   string `gorm:"size:20;default:'scheduled'" json:"status"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Participants ParticipantList `gorm:"type:jsonb" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParticipantList is stored as a single jsonb column.
type ParticipantList = datatypes.JSONSlice[Participant]

type Participant struct {
	UserID     string     `json:"userId,omitempty"`
	Email      string     `json:"email"`
	Status     string     `json:"status"`
	ResponseAt *time.Time `json:"responseAt,omitempty"`
}
