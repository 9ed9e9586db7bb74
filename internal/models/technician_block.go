package models

import "time"

// TechnicianBlock marks a technician as unavailable for an interval
// (time off, training, walk-in hold). Blocks are enforced when a new
// appointment is created; they do not invalidate existing bookings.
type TechnicianBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TechnicianID uint `json:"technician_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Reason string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
