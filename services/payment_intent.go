package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"gorm.io/gorm"
)

// IntentRequest is a validated request to open a payable order.
type IntentRequest struct {
	UserID            uint
	Type              string
	Amount            *float64
	Currency          string
	Notes             models.PaymentNotes
	LoanApplicationID *uint
}

// IntentResult carries back what the client needs to open the hosted
// checkout, plus the persisted CREATED payment.
type IntentResult struct {
	GatewayOrderID   string
	PaymentSessionID string
	Payment          *models.Payment
}

// PaymentIntentService resolves pricing, validates the request, opens a
// gateway session and persists the payment in CREATED state.
type PaymentIntentService struct {
	db      *gorm.DB
	gateway gateway.Client
	now     func() time.Time
}

func NewPaymentIntentService(db *gorm.DB, gw gateway.Client) *PaymentIntentService {
	return &PaymentIntentService{db: db, gateway: gw, now: time.Now}
}

// Initiate validates the intent, opens a gateway order and persists the
// payment. All validation happens before the gateway call, and nothing is
// persisted when the gateway call fails.
func (s *PaymentIntentService) Initiate(ctx context.Context, req IntentRequest) (*IntentResult, error) {
	if !models.ValidPaymentType(req.Type) {
		return nil, ErrInvalidPaymentType
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Type == models.PaymentTypeLoanFee || req.Type == models.PaymentTypeDocumentFee {
		if req.LoanApplicationID == nil {
			return nil, ErrMissingLoanApplicationID
		}
		var application models.LoanApplication
		if err := s.db.First(&application, *req.LoanApplicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLoanApplicationNotFound
			}
			return nil, err
		}
	}

	config, err := s.resolveConfig(req.Type, req.Notes.Plan)
	if err != nil {
		return nil, err
	}

	if req.Type == models.PaymentTypeMembership {
		var count int64
		if err := s.db.Model(&models.Membership{}).
			Where("user_id = ? AND is_active = ?", req.UserID, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateActiveMembership
		}
	}

	// A caller-supplied amount overrides the configured price. This is an
	// intentional pass-through for negotiated fees.
	amount := config.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	currency := req.Currency
	if currency == "" {
		currency = config.Currency
	}

	orderID := fmt.Sprintf("loannest_%d_%d", s.now().UnixNano(), req.UserID)
	session, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
		Customer: gateway.Customer{
			ID:    strconv.FormatUint(uint64(user.ID), 10),
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		Note: req.Notes.Purpose,
	})
	if err != nil {
		utils.LogError("Failed to create gateway order for user ID: %d: %v", req.UserID, err)
		return nil, err
	}

	// Some providers assign their own order id instead of echoing ours.
	// Verify and refund address the order by this id, so the provider's
	// value is the one that gets persisted.
	gatewayOrderID := session.OrderID
	if gatewayOrderID == "" {
		gatewayOrderID = orderID
	}
	utils.LogInfo("Created gateway order %s for user ID: %d", gatewayOrderID, req.UserID)

	payment := models.Payment{
		UserID:            req.UserID,
		LoanApplicationID: req.LoanApplicationID,
		GatewayOrderID:    gatewayOrderID,
		PaymentSessionID:  session.SessionID,
		Amount:            amount,
		Currency:          currency,
		Type:              req.Type,
		Receipt:           "rcpt_" + orderID,
		Notes:             req.Notes,
		Status:            models.PaymentStatusCreated,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Persisted payment ID: %d in CREATED state for order %s", payment.ID, gatewayOrderID)

	return &IntentResult{
		GatewayOrderID:   gatewayOrderID,
		PaymentSessionID: session.SessionID,
		Payment:          &payment,
	}, nil
}

// resolveConfig finds the active price row for the payment type. Membership
// pricing additionally keys on the plan discriminator.
func (s *PaymentIntentService) resolveConfig(paymentType, plan string) (*models.PaymentConfig, error) {
	query := s.db.Where("type = ? AND active = ?", paymentType, true)
	if paymentType == models.PaymentTypeMembership {
		query = query.Where("plan = ?", plan)
	}

	var config models.PaymentConfig
	if err := query.First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return &config, nil
}
