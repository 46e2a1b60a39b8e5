package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckoutAttempt records every payment session obtained from the gateway.
// Written best-effort after the session is created; it is an audit trail,
// not part of the checkout contract.
type CheckoutAttempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CarID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"car_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID   string         `gorm:"size:255;not null" json:"session_id"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	Currency    string         `gorm:"size:10;not null" json:"currency"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (a *CheckoutAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
