package services

import (
	"errors"
)

// Sentinel errors for the payment lifecycle. Controllers map these onto
// HTTP statuses; the services themselves never touch the transport layer.
var (
	ErrInvalidPaymentType          = errors.New("invalid payment type")
	ErrMissingLoanApplicationID    = errors.New("loan application id is required for this payment type")
	ErrLoanApplicationNotFound     = errors.New("loan application not found")
	ErrConfigNotFound              = errors.New("no active payment config for this type")
	ErrDuplicateActiveMembership   = errors.New("user already has an active membership")
	ErrUserNotFound                = errors.New("user not found")
	ErrPaymentNotFound             = errors.New("payment not found")
	ErrPaymentNotEligibleForRefund = errors.New("only successful payments can be refunded")
)
