package gateway

import (
	"context"
	"fmt"
)

// Payment status values reported by the gateway for an order.
const (
	StatusSuccess     = "SUCCESS"
	StatusFailed      = "FAILED"
	StatusPending     = "PENDING"
	StatusUserDropped = "USER_DROPPED"
)

// Customer identifies the payer on the hosted checkout page.
type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
	Phone string `json:"customer_phone"`
}

// CreateOrderRequest opens a hosted payment session for an order.
type CreateOrderRequest struct {
	OrderID  string
	Amount   float64
	Currency string
	Customer Customer
	Note     string
}

// OrderSession is the gateway's handle for a newly opened order.
type OrderSession struct {
	OrderID     string
	SessionID   string
	OrderStatus string
}

// PaymentDetail is one payment attempt recorded against an order.
// FetchPaymentsForOrder returns the most recent attempt first.
type PaymentDetail struct {
	Status           string
	GatewayPaymentID string
	Message          string
}

// RefundRequest issues a refund against a paid order.
type RefundRequest struct {
	OrderID  string
	RefundID string
	Amount   float64
	Note     string
}

// RefundResult is the gateway's acknowledgement of a refund.
type RefundResult struct {
	RefundID string
	Status   string
}

// Client is the narrow contract the payment core consumes. Concrete
// implementations adapt a specific payment provider behind it.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderSession, error)
	FetchPaymentsForOrder(ctx context.Context, orderID string) ([]PaymentDetail, error)
	CreateRefund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}

// Error wraps a provider failure. The provider's message is preserved
// verbatim so callers can surface it unchanged.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
