package services

import (
	"time"

	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"gorm.io/gorm"
)

// SideEffectCoordinator propagates a payment outcome into the dependent
// aggregates. ApplySuccess and Reverse run inside the caller's transaction
// so the payment status and its effects commit or roll back together.
type SideEffectCoordinator struct {
	now func() time.Time
}

func NewSideEffectCoordinator() *SideEffectCoordinator {
	return &SideEffectCoordinator{now: time.Now}
}

// effect is the closed set of aggregate mutations a payment can cause.
// A payment has exactly one type, so exactly one effect applies per call.
type effect interface {
	Apply(tx *gorm.DB) error
	Reverse(tx *gorm.DB) error
}

// ApplySuccess runs the success effect for the payment's type.
func (c *SideEffectCoordinator) ApplySuccess(tx *gorm.DB, payment *models.Payment) error {
	eff := c.effectFor(payment)
	if eff == nil {
		return nil
	}
	return eff.Apply(tx)
}

// Reverse undoes the success effect for the payment's type.
func (c *SideEffectCoordinator) Reverse(tx *gorm.DB, payment *models.Payment) error {
	eff := c.effectFor(payment)
	if eff == nil {
		return nil
	}
	return eff.Reverse(tx)
}

func (c *SideEffectCoordinator) effectFor(payment *models.Payment) effect {
	switch payment.Type {
	case models.PaymentTypeMembership:
		return &membershipEffect{payment: payment, now: c.now}
	case models.PaymentTypeLoanFee, models.PaymentTypeDocumentFee:
		if payment.LoanApplicationID == nil {
			return nil
		}
		return &loanFeeEffect{payment: payment}
	}
	return nil
}

// membershipEffect creates or renews the user's single membership row.
type membershipEffect struct {
	payment *models.Payment
	now     func() time.Time
}

func (e *membershipEffect) Apply(tx *gorm.DB) error {
	start := e.now()
	end := start.AddDate(0, 1, 0)
	if e.payment.Notes.Plan == models.PlanYearly {
		end = start.AddDate(1, 0, 0)
	}

	var membership models.Membership
	err := tx.Where("user_id = ?", e.payment.UserID).First(&membership).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		membership = models.Membership{
			UserID:    e.payment.UserID,
			Plan:      e.payment.Notes.Plan,
			Status:    models.MembershipStatusActive,
			IsActive:  true,
			StartDate: start,
			EndDate:   end,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		utils.LogInfo("Created membership for user ID: %d, plan: %s", e.payment.UserID, e.payment.Notes.Plan)
		return nil
	}

	if err := tx.Model(&membership).Updates(map[string]interface{}{
		"plan":       e.payment.Notes.Plan,
		"status":     models.MembershipStatusActive,
		"is_active":  true,
		"start_date": start,
		"end_date":   end,
	}).Error; err != nil {
		return err
	}
	utils.LogInfo("Renewed membership for user ID: %d, plan: %s", e.payment.UserID, e.payment.Notes.Plan)
	return nil
}

func (e *membershipEffect) Reverse(tx *gorm.DB) error {
	if err := tx.Model(&models.Membership{}).
		Where("user_id = ?", e.payment.UserID).
		Updates(map[string]interface{}{
			"status":    models.MembershipStatusCancelled,
			"is_active": false,
		}).Error; err != nil {
		return err
	}
	utils.LogInfo("Cancelled membership for user ID: %d", e.payment.UserID)
	return nil
}

// loanFeeEffect flips the linked loan application's payment status.
type loanFeeEffect struct {
	payment *models.Payment
}

func (e *loanFeeEffect) Apply(tx *gorm.DB) error {
	return e.setPaymentStatus(tx, models.LoanPaymentStatusPaid)
}

func (e *loanFeeEffect) Reverse(tx *gorm.DB) error {
	return e.setPaymentStatus(tx, models.LoanPaymentStatusPending)
}

func (e *loanFeeEffect) setPaymentStatus(tx *gorm.DB, status string) error {
	if err := tx.Model(&models.LoanApplication{}).
		Where("id = ?", *e.payment.LoanApplicationID).
		Update("payment_status", status).Error; err != nil {
		return err
	}
	utils.LogInfo("Set loan application ID: %d payment status to %s", *e.payment.LoanApplicationID, status)
	return nil
}
