package models

import (
	"time"
)

// PaymentConfig maps a payment type (and plan, for memberships) to its price.
// Only active rows are usable for intent creation.
type PaymentConfig struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"uniqueIndex:idx_payment_configs_type_plan"`
	Plan      string    `json:"plan" gorm:"uniqueIndex:idx_payment_configs_type_plan"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
