package services

import (
	"testing"

	"github.com/Adarsh-234/LoanNest/models"
	"github.com/stretchr/testify/require"
)

func TestSideEffects_DocumentFeeFlipsApplication(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	app := seedLoanApplication(t, db, user.ID)

	payment := &models.Payment{
		UserID:            user.ID,
		LoanApplicationID: &app.ID,
		Type:              models.PaymentTypeDocumentFee,
	}

	c := newTestCoordinator()
	require.NoError(t, c.ApplySuccess(db, payment))

	var reloaded models.LoanApplication
	require.NoError(t, db.First(&reloaded, app.ID).Error)
	require.Equal(t, models.LoanPaymentStatusPaid, reloaded.PaymentStatus)

	require.NoError(t, c.Reverse(db, payment))
	require.NoError(t, db.First(&reloaded, app.ID).Error)
	require.Equal(t, models.LoanPaymentStatusPending, reloaded.PaymentStatus)
}

func TestSideEffects_LoanFeeWithoutLinkageIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	payment := &models.Payment{UserID: user.ID, Type: models.PaymentTypeLoanFee}

	c := newTestCoordinator()
	require.NoError(t, c.ApplySuccess(db, payment))
	require.NoError(t, c.Reverse(db, payment))
}

func TestSideEffects_MembershipReverseDoesNotResurrectDates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	start := fixedNow.AddDate(0, -1, 0)
	end := fixedNow.AddDate(0, 1, 0)
	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, Plan: models.PlanMonthly,
		Status: models.MembershipStatusActive, IsActive: true,
		StartDate: start, EndDate: end,
	}).Error)

	payment := &models.Payment{
		UserID: user.ID,
		Type:   models.PaymentTypeMembership,
		Notes:  models.PaymentNotes{Plan: models.PlanMonthly},
	}

	c := newTestCoordinator()
	require.NoError(t, c.Reverse(db, payment))

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	require.Equal(t, models.MembershipStatusCancelled, membership.Status)
	require.False(t, membership.IsActive)
}
