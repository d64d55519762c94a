package controllers

import (
	"strconv"

	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/admin/payments/:id/refund
func RefundPayment(c *gin.Context) {
	utils.LogInfo("RefundPayment called")

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid payment ID in refund request: %v", err)
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var req struct {
		Amount *float64 `json:"amount"`
		Reason string   `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid refund request for payment ID: %d: %v", paymentID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Processing refund for payment ID: %d", paymentID)

	payment, err := refundService.Refund(c.Request.Context(), uint(paymentID), req.Amount, req.Reason)
	if err != nil {
		utils.LogError("Refund failed for payment ID: %d: %v", paymentID, err)
		respondServiceError(c, err)
		return
	}

	utils.LogInfo("Refund completed for payment ID: %d", paymentID)
	utils.Success(c, "Payment refunded successfully", gin.H{"payment": payment})
}
