package services

import (
	"context"
	"errors"
	"time"

	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefundService reverses a successful payment: it issues the refund with
// the gateway and drives the REFUNDED transition plus side-effect reversal
// through one transaction.
type RefundService struct {
	db      *gorm.DB
	gateway gateway.Client
	effects *SideEffectCoordinator
	now     func() time.Time
}

func NewRefundService(db *gorm.DB, gw gateway.Client, effects *SideEffectCoordinator) *RefundService {
	return &RefundService{db: db, gateway: gw, effects: effects, now: time.Now}
}

// Refund refunds a SUCCESS payment. Any other status is rejected with no
// mutation, including an already refunded payment. When amount is nil the
// full original amount is refunded. A gateway failure leaves the payment
// untouched so the caller can retry.
func (s *RefundService) Refund(ctx context.Context, paymentID uint, amount *float64, reason string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.Status != models.PaymentStatusSuccess {
		return nil, ErrPaymentNotEligibleForRefund
	}

	refundAmount := payment.Amount
	if amount != nil {
		refundAmount = *amount
	}

	refundID := "rfnd_" + uuid.New().String()
	result, err := s.gateway.CreateRefund(ctx, gateway.RefundRequest{
		OrderID:  payment.GatewayOrderID,
		RefundID: refundID,
		Amount:   refundAmount,
		Note:     reason,
	})
	if err != nil {
		utils.LogError("Gateway refund failed for payment ID: %d: %v", payment.ID, err)
		return nil, err
	}
	utils.LogInfo("Gateway accepted refund %s for payment ID: %d", result.RefundID, payment.ID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusSuccess).
			Updates(map[string]interface{}{
				"status":        models.PaymentStatusRefunded,
				"refund_id":     result.RefundID,
				"refund_amount": refundAmount,
				"refund_reason": reason,
				"refunded_at":   &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPaymentNotEligibleForRefund
		}

		if err := tx.First(&payment, payment.ID).Error; err != nil {
			return err
		}
		return s.effects.Reverse(tx, &payment)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Payment ID: %d refunded, amount: %.2f", payment.ID, refundAmount)
	return &payment, nil
}
