package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Payment status constants
const (
	PaymentStatusCreated  = "CREATED"
	PaymentStatusSuccess  = "SUCCESS"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// Payment type constants
const (
	PaymentTypeLoanFee     = "LOAN_FEE"
	PaymentTypeMembership  = "MEMBERSHIP"
	PaymentTypeDocumentFee = "DOCUMENT_FEE"
)

// Membership plan discriminators carried in payment notes
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// PaymentNotes carries the type-specific metadata for a payment.
// For MEMBERSHIP payments Plan holds the plan discriminator.
type PaymentNotes struct {
	Plan    string `json:"plan,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// Value implements driver.Valuer so notes persist as a JSON column.
func (n PaymentNotes) Value() (driver.Value, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading notes back from the database.
func (n *PaymentNotes) Scan(value interface{}) error {
	if value == nil {
		*n = PaymentNotes{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	default:
		return fmt.Errorf("unsupported type %T for PaymentNotes", value)
	}
}

type Payment struct {
	ID                uint         `json:"id" gorm:"primaryKey"`
	UserID            uint         `json:"user_id" gorm:"index"`
	LoanApplicationID *uint        `json:"loan_application_id,omitempty"`
	GatewayOrderID    string       `json:"gateway_order_id" gorm:"uniqueIndex"`
	PaymentSessionID  string       `json:"payment_session_id"`
	GatewayPaymentID  string       `json:"gateway_payment_id,omitempty"`
	Amount            float64      `json:"amount"`
	Currency          string       `json:"currency"`
	Type              string       `json:"type"`
	Receipt           string       `json:"receipt,omitempty"`
	Notes             PaymentNotes `json:"notes"`
	Status            string       `json:"status"`
	FailureReason     string       `json:"failure_reason,omitempty"`
	PaidAt            *time.Time   `json:"paid_at,omitempty"`
	RefundID          string       `json:"refund_id,omitempty"`
	RefundAmount      float64      `json:"refund_amount,omitempty"`
	RefundReason      string       `json:"refund_reason,omitempty"`
	RefundedAt        *time.Time   `json:"refunded_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// IsTerminal reports whether no further automatic transition applies.
// SUCCESS still admits the single manual SUCCESS -> REFUNDED edge.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess ||
		p.Status == PaymentStatusFailed ||
		p.Status == PaymentStatusRefunded
}

// ValidPaymentType reports whether t is one of the known payment types.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeLoanFee, PaymentTypeMembership, PaymentTypeDocumentFee:
		return true
	}
	return false
}
