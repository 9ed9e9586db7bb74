package models

import "time"

// PhoneVerification is one sent code. Rows are never deleted: besides
// recording the verification itself, the unverified rows for a phone
// double as the attempt ledger for lockout counting, each row carrying
// the count of wrong guesses made against its code.
type PhoneVerification struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Phone string `gorm:"size:20;index;not null" json:"phone"`
	Code  string `gorm:"size:10;not null" json:"-"`

	Verified  bool      `json:"verified"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
