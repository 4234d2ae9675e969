package models

import "gorm.io/datatypes"

// Slot bounds are naive wall-clock strings ("15:04"). An empty bound means unspecified.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AvailabilityDay struct {
	Day         string `json:"day"`
	IsAvailable bool   `json:"isAvailable"`
	Slots       []Slot `json:"slots"`
}

// AvailabilityDays is the weekly schedule stored on the user row.
type AvailabilityDays = datatypes.JSONSlice[AvailabilityDay]
