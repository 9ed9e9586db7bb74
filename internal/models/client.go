package models

import "time"

// Client is identified by phone (digits-only canonical form).
// PhoneVerified and IsBlocked are server-owned and never accepted
// from client input. PaymentProfileID is set at most once.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Phone     string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`

	PhoneVerified bool   `json:"phone_verified"`
	IsBlocked     bool   `json:"is_blocked"`
	BlockReason   string `gorm:"size:255" json:"block_reason,omitempty"`

	PaymentProfileID string `gorm:"size:64" json:"payment_profile_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
