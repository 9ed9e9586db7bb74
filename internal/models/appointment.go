package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LocationID uint     `json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`

	TechnicianID uint `json:"technician_id"`
	Technician   User `gorm:"foreignKey:TechnicianID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"technician"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	DepositAmount float64    `json:"deposit_amount"`
	DepositPaidAt *time.Time `json:"deposit_paid_at"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	ConfirmedBy string     `gorm:"size:50" json:"confirmed_by"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
