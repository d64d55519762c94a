package controllers

import (
	"errors"

	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/services"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	intentService *services.PaymentIntentService
	reconciler    *services.VerificationReconciler
	refundService *services.RefundService
	gatewayClient gateway.Client
)

// Init wires the payment services into the controllers. Called once from
// main after config and database initialization.
func Init(db *gorm.DB, gw gateway.Client) {
	effects := services.NewSideEffectCoordinator()
	intentService = services.NewPaymentIntentService(db, gw)
	reconciler = services.NewVerificationReconciler(db, effects)
	refundService = services.NewRefundService(db, gw, effects)
	gatewayClient = gw
}

// respondServiceError maps a service error onto the matching HTTP response.
func respondServiceError(c *gin.Context, err error) {
	var gwErr *gateway.Error
	switch {
	case errors.Is(err, services.ErrInvalidPaymentType),
		errors.Is(err, services.ErrMissingLoanApplicationID),
		errors.Is(err, services.ErrPaymentNotEligibleForRefund):
		utils.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrLoanApplicationNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrConfigNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateActiveMembership):
		utils.Conflict(c, err.Error(), nil)
	case errors.As(err, &gwErr):
		utils.InternalServerError(c, "Payment gateway error", gwErr.Message)
	default:
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}
