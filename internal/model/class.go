package model

import "time"

type ClassStatus string

const (
	StatusUpcoming  ClassStatus = "upcoming"
	StatusCompleted ClassStatus = "completed"
	StatusCancelled ClassStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ClassStatus) Valid() bool {
	return s == StatusUpcoming || s == StatusCompleted || s == StatusCancelled
}

// Terminal reports whether s ends the lifecycle. Terminal states are not
// reversible through the regular mark-status action.
func (s ClassStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Wire layouts for dates and times-of-day. Dates are plain calendar dates
// with no timezone; times are minute-precision times of day.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type ClassSchedule struct {
	ID              int64       `json:"id"`
	StudentID       int64       `json:"student_id"`
	ClassDate       string      `json:"class_date"` // YYYY-MM-DD
	StartTime       string      `json:"start_time"` // HH:MM
	DurationMinutes int         `json:"duration_minutes"`
	Status          ClassStatus `json:"status"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
