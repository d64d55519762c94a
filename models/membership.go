package models

import (
	"time"
)

// Membership status constants
const (
	MembershipStatusActive    = "ACTIVE"
	MembershipStatusCancelled = "CANCELLED"
)

// Membership holds a user's subscription. One row per user; a renewal
// updates the existing row rather than inserting a second one.
type Membership struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"is_active"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
