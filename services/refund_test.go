package services

import (
	"context"
	"testing"

	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefundService_PaymentNotFound(t *testing.T) {
	db := newTestDB(t)
	gw := new(GatewayMock)
	svc := NewRefundService(db, gw, newTestCoordinator())

	_, err := svc.Refund(context.Background(), 404, nil, "customer request")
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestRefundService_RejectsNonSuccessStatuses(t *testing.T) {
	for _, status := range []string{
		models.PaymentStatusCreated,
		models.PaymentStatusFailed,
		models.PaymentStatusRefunded,
	} {
		t.Run(status, func(t *testing.T) {
			db := newTestDB(t)
			user := seedUser(t, db)
			payment := seedPayment(t, db, &models.Payment{
				UserID:         user.ID,
				GatewayOrderID: "order_" + status,
				Amount:         299,
				Type:           models.PaymentTypeMembership,
				Notes:          models.PaymentNotes{Plan: models.PlanMonthly},
				Status:         status,
			})

			gw := new(GatewayMock)
			svc := NewRefundService(db, gw, newTestCoordinator())

			_, err := svc.Refund(context.Background(), payment.ID, nil, "customer request")
			require.ErrorIs(t, err, ErrPaymentNotEligibleForRefund)

			// No gateway call, no mutation
			gw.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything)
			var reloaded models.Payment
			require.NoError(t, db.First(&reloaded, payment.ID).Error)
			require.Equal(t, status, reloaded.Status)
		})
	}
}

func TestRefundService_GatewayFailureLeavesPaymentUntouched(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	paidAt := fixedNow
	payment := seedPayment(t, db, &models.Payment{
		UserID:         user.ID,
		GatewayOrderID: "order_gwfail",
		Amount:         299,
		Type:           models.PaymentTypeMembership,
		Notes:          models.PaymentNotes{Plan: models.PlanMonthly},
		Status:         models.PaymentStatusSuccess,
		PaidAt:         &paidAt,
	})
	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, Plan: models.PlanMonthly,
		Status: models.MembershipStatusActive, IsActive: true,
	}).Error)

	gw := new(GatewayMock)
	gw.On("CreateRefund", mock.Anything, mock.Anything).
		Return(nil, &gateway.Error{Op: "create refund", Message: "insufficient balance"})

	svc := NewRefundService(db, gw, newTestCoordinator())
	_, err := svc.Refund(context.Background(), payment.ID, nil, "customer request")
	require.Error(t, err)
	require.Contains(t, err.Error(), "insufficient balance")

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	require.Equal(t, models.PaymentStatusSuccess, reloaded.Status)
	require.Empty(t, reloaded.RefundID)

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	require.True(t, membership.IsActive)
}

func TestRefundService_MembershipRefundCancelsMembership(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	paidAt := fixedNow
	payment := seedPayment(t, db, &models.Payment{
		UserID:         user.ID,
		GatewayOrderID: "order_ref1",
		Amount:         2999,
		Type:           models.PaymentTypeMembership,
		Notes:          models.PaymentNotes{Plan: models.PlanYearly},
		Status:         models.PaymentStatusSuccess,
		PaidAt:         &paidAt,
	})
	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, Plan: models.PlanYearly,
		Status: models.MembershipStatusActive, IsActive: true,
		StartDate: fixedNow, EndDate: fixedNow.AddDate(1, 0, 0),
	}).Error)

	gw := new(GatewayMock)
	gw.On("CreateRefund", mock.Anything, mock.MatchedBy(func(req gateway.RefundRequest) bool {
		// Full original amount by default
		return req.OrderID == "order_ref1" && req.Amount == 2999 && req.RefundID != ""
	})).Return(&gateway.RefundResult{RefundID: "rf_1", Status: "SUCCESS"}, nil)

	svc := NewRefundService(db, gw, newTestCoordinator())
	refunded, err := svc.Refund(context.Background(), payment.ID, nil, "duplicate charge")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusRefunded, refunded.Status)
	require.Equal(t, "rf_1", refunded.RefundID)
	require.Equal(t, 2999.0, refunded.RefundAmount)
	require.Equal(t, "duplicate charge", refunded.RefundReason)
	require.NotNil(t, refunded.RefundedAt)

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	require.Equal(t, models.MembershipStatusCancelled, membership.Status)
	require.False(t, membership.IsActive)
	gw.AssertExpectations(t)
}

func TestRefundService_LoanFeeRefundRevertsApplication(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	app := seedLoanApplication(t, db, user.ID)
	require.NoError(t, db.Model(app).Update("payment_status", models.LoanPaymentStatusPaid).Error)

	paidAt := fixedNow
	payment := seedPayment(t, db, &models.Payment{
		UserID:            user.ID,
		LoanApplicationID: &app.ID,
		GatewayOrderID:    "order_ref2",
		Amount:            500,
		Type:              models.PaymentTypeLoanFee,
		Status:            models.PaymentStatusSuccess,
		PaidAt:            &paidAt,
	})

	partial := 250.0
	gw := new(GatewayMock)
	gw.On("CreateRefund", mock.Anything, mock.MatchedBy(func(req gateway.RefundRequest) bool {
		return req.Amount == partial
	})).Return(&gateway.RefundResult{RefundID: "rf_2", Status: "PENDING"}, nil)

	svc := NewRefundService(db, gw, newTestCoordinator())
	refunded, err := svc.Refund(context.Background(), payment.ID, &partial, "fee waiver")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusRefunded, refunded.Status)
	require.Equal(t, partial, refunded.RefundAmount)

	var reloaded models.LoanApplication
	require.NoError(t, db.First(&reloaded, app.ID).Error)
	require.Equal(t, models.LoanPaymentStatusPending, reloaded.PaymentStatus)
}

func TestRefundService_RefundedPaymentCannotBeRefundedAgain(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	paidAt := fixedNow
	payment := seedPayment(t, db, &models.Payment{
		UserID:         user.ID,
		GatewayOrderID: "order_ref3",
		Amount:         299,
		Type:           models.PaymentTypeMembership,
		Notes:          models.PaymentNotes{Plan: models.PlanMonthly},
		Status:         models.PaymentStatusSuccess,
		PaidAt:         &paidAt,
	})

	gw := new(GatewayMock)
	gw.On("CreateRefund", mock.Anything, mock.Anything).
		Return(&gateway.RefundResult{RefundID: "rf_3", Status: "SUCCESS"}, nil).Once()

	svc := NewRefundService(db, gw, newTestCoordinator())
	_, err := svc.Refund(context.Background(), payment.ID, nil, "first")
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), payment.ID, nil, "second")
	require.ErrorIs(t, err, ErrPaymentNotEligibleForRefund)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	require.Equal(t, "first", reloaded.RefundReason)
}
