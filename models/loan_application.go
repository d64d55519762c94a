package models

import (
	"time"
)

// Loan application payment status constants
const (
	LoanPaymentStatusPending = "pending"
	LoanPaymentStatusPaid    = "paid"
)

// LoanApplication is the loan aggregate. The payment core only ever
// touches PaymentStatus; everything else belongs to the origination flow.
type LoanApplication struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"`
	Amount        float64   `json:"amount"`
	TenureMonths  int       `json:"tenure_months"`
	Purpose       string    `json:"purpose"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
