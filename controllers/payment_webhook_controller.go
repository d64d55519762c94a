package controllers

import (
	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/services"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// Webhook event type that triggers reconciliation. Other event types are
// acknowledged and ignored.
const webhookEventPaymentSuccess = "PAYMENT_SUCCESS_WEBHOOK"

// POST /v1/payments/webhook
//
// The gateway retries undelivered webhooks aggressively, so this endpoint
// always acknowledges with 200 and logs internal failures instead of
// propagating them. That asymmetry with the verify endpoint is deliberate.
func HandleGatewayWebhook(c *gin.Context) {
	utils.LogInfo("HandleGatewayWebhook called")

	var payload struct {
		Type string `json:"type"`
		Data struct {
			Order struct {
				OrderID string `json:"order_id"`
			} `json:"order"`
			Payment struct {
				GatewayPaymentID string `json:"cf_payment_id"`
				Status           string `json:"payment_status"`
				Message          string `json:"payment_message"`
			} `json:"payment"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.LogError("Unparseable webhook payload: %v", err)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	if payload.Type != webhookEventPaymentSuccess {
		utils.LogInfo("Ignoring webhook event type: %s", payload.Type)
		c.JSON(200, gin.H{"status": "ok"})
		return
	}

	utils.LogInfo("Processing success webhook for order: %s", payload.Data.Order.OrderID)
	_, _, err := reconciler.Reconcile(c.Request.Context(), payload.Data.Order.OrderID, services.Outcome{
		Status:           gateway.StatusSuccess,
		GatewayPaymentID: payload.Data.Payment.GatewayPaymentID,
		Message:          payload.Data.Payment.Message,
	})
	if err != nil {
		utils.LogError("Webhook reconcile failed for order %s: %v", payload.Data.Order.OrderID, err)
	}

	c.JSON(200, gin.H{"status": "ok"})
}
