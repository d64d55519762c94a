package controllers

import (
	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/services"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/payments/verify
//
// The client calls this after returning from the hosted checkout. When the
// request carries no reported_status the latest attempt is fetched from the
// gateway instead, then applied through the reconciler. A webhook for the
// same order may race this call; whichever lands second is a no-op.
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		OrderID          string `json:"order_id" binding:"required"`
		GatewayPaymentID string `json:"gateway_payment_id"`
		ReportedStatus   string `json:"reported_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}
	utils.LogInfo("Verifying payment for order: %s, user ID: %d", req.OrderID, user.ID)

	outcome := services.Outcome{
		Status:           req.ReportedStatus,
		GatewayPaymentID: req.GatewayPaymentID,
	}
	if outcome.Status == "" {
		// No status supplied by the client; the gateway is the source of
		// truth, and the first entry is the most recent attempt.
		attempts, err := gatewayClient.FetchPaymentsForOrder(c.Request.Context(), req.OrderID)
		if err != nil {
			utils.LogError("Failed to fetch payments for order %s: %v", req.OrderID, err)
			respondServiceError(c, err)
			return
		}
		if len(attempts) == 0 {
			utils.LogError("No payment attempts recorded for order: %s", req.OrderID)
			utils.BadRequest(c, "No payment recorded for this order yet", nil)
			return
		}
		latest := attempts[0]
		outcome = services.Outcome{
			Status:           latest.Status,
			GatewayPaymentID: latest.GatewayPaymentID,
			Message:          latest.Message,
		}
	}

	if outcome.Status == gateway.StatusPending {
		utils.LogInfo("Payment still pending for order: %s", req.OrderID)
		utils.Success(c, "Payment is still being processed", gin.H{"order_id": req.OrderID})
		return
	}

	payment, transitioned, err := reconciler.Reconcile(c.Request.Context(), req.OrderID, outcome)
	if err != nil {
		utils.LogError("Reconcile failed for order %s: %v", req.OrderID, err)
		respondServiceError(c, err)
		return
	}

	if transitioned && payment.Status == models.PaymentStatusSuccess {
		go func(email string, p models.Payment) {
			if err := utils.SendPaymentReceiptEmail(email, &p); err != nil {
				utils.LogError("Receipt email failed for payment ID: %d: %v", p.ID, err)
			}
		}(user.Email, *payment)
	}

	if payment.Status == models.PaymentStatusFailed {
		utils.LogInfo("Payment failed for order: %s: %s", req.OrderID, payment.FailureReason)
		utils.Success(c, "Payment was not successful", gin.H{"payment": payment})
		return
	}

	utils.LogInfo("Payment verified for order: %s, status: %s", req.OrderID, payment.Status)
	utils.Success(c, "Payment verified successfully", gin.H{"payment": payment})
}
