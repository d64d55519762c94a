package controllers

import (
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/services"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/payments/initiate
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Type     string   `json:"type" binding:"required"`
		Amount   *float64 `json:"amount"`
		Currency string   `json:"currency"`
		Notes    struct {
			Plan    string `json:"plan"`
			Purpose string `json:"purpose"`
		} `json:"notes"`
		LoanApplicationID *uint `json:"loan_application_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid intent request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. type is required", err.Error())
		return
	}
	utils.LogInfo("Processing payment intent for user ID: %d, type: %s", user.ID, req.Type)

	result, err := intentService.Initiate(c.Request.Context(), services.IntentRequest{
		UserID:   user.ID,
		Type:     req.Type,
		Amount:   req.Amount,
		Currency: req.Currency,
		Notes: models.PaymentNotes{
			Plan:    req.Notes.Plan,
			Purpose: req.Notes.Purpose,
		},
		LoanApplicationID: req.LoanApplicationID,
	})
	if err != nil {
		utils.LogError("Payment intent failed for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.LogInfo("Payment intent created for user ID: %d, order: %s", user.ID, result.GatewayOrderID)
	utils.Created(c, "Payment initiated successfully", gin.H{
		"gateway_order_id":   result.GatewayOrderID,
		"payment_session_id": result.PaymentSessionID,
		"payment":            result.Payment,
	})
}
