package controllers

import (
	"strconv"

	"github.com/Adarsh-234/LoanNest/config"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/payments
func ListPayments(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var payments []models.Payment
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		utils.LogError("Failed to list payments for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}

	utils.Success(c, "Payments retrieved successfully", gin.H{"payments": payments})
}

// GET /v1/payments/:id
func GetPayment(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var payment models.Payment
	if err := config.DB.Where("id = ? AND user_id = ?", paymentID, user.ID).
		First(&payment).Error; err != nil {
		utils.LogError("Payment not found for ID: %d, user ID: %d", paymentID, user.ID)
		utils.NotFound(c, "Payment not found")
		return
	}

	utils.Success(c, "Payment retrieved successfully", gin.H{"payment": payment})
}
