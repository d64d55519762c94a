package services

import (
	"context"
	"errors"
	"time"

	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"gorm.io/gorm"
)

// Outcome is a gateway-reported result for an order, as delivered by
// either the client verify call or the gateway webhook.
type Outcome struct {
	Status           string
	GatewayPaymentID string
	Message          string
}

// VerificationReconciler applies a gateway outcome to a payment exactly
// once. It is invoked from two racing entry points (client verify and
// webhook) and must stay correct under arbitrary interleaving and
// duplication of both.
type VerificationReconciler struct {
	db      *gorm.DB
	effects *SideEffectCoordinator
	now     func() time.Time

	// afterRead runs between the initial read and the guarded update,
	// letting tests interleave a competing write at the race window.
	afterRead func(tx *gorm.DB)
}

func NewVerificationReconciler(db *gorm.DB, effects *SideEffectCoordinator) *VerificationReconciler {
	return &VerificationReconciler{db: db, effects: effects, now: time.Now}
}

// Reconcile looks up the payment by gateway order id and, if it is still
// in CREATED state, moves it to SUCCESS or FAILED and applies side effects
// in the same transaction. A payment already in a terminal state is
// returned untouched with transitioned=false; side effects never run
// twice. The status flip is a guarded UPDATE ... WHERE status='CREATED',
// so of two concurrent calls exactly one wins and the other observes the
// terminal row.
func (r *VerificationReconciler) Reconcile(ctx context.Context, gatewayOrderID string, outcome Outcome) (*models.Payment, bool, error) {
	var payment models.Payment
	transitioned := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gateway_order_id = ?", gatewayOrderID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.IsTerminal() {
			utils.LogInfo("Payment ID: %d already %s, reconcile is a no-op", payment.ID, payment.Status)
			return nil
		}

		if r.afterRead != nil {
			r.afterRead(tx)
		}

		updates := map[string]interface{}{}
		if outcome.Status == gateway.StatusSuccess {
			now := r.now()
			updates["status"] = models.PaymentStatusSuccess
			updates["paid_at"] = &now
			updates["gateway_payment_id"] = outcome.GatewayPaymentID
		} else {
			updates["status"] = models.PaymentStatusFailed
			updates["failure_reason"] = outcome.Message
		}

		result := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusCreated).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race: another reconcile made the payment terminal
			// between our read and the guarded update.
			utils.LogInfo("Payment ID: %d reconciled concurrently, rereading", payment.ID)
			return tx.First(&payment, payment.ID).Error
		}

		if err := tx.First(&payment, payment.ID).Error; err != nil {
			return err
		}
		transitioned = true

		if payment.Status != models.PaymentStatusSuccess {
			utils.LogInfo("Payment ID: %d marked FAILED: %s", payment.ID, payment.FailureReason)
			return nil
		}

		utils.LogInfo("Payment ID: %d marked SUCCESS, applying side effects", payment.ID)
		return r.effects.ApplySuccess(tx, &payment)
	})
	if err != nil {
		return nil, false, err
	}

	return &payment, transitioned, nil
}
