package controllers

import (
	"github.com/Adarsh-234/LoanNest/config"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/membership
func GetMembership(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var membership models.Membership
	if err := config.DB.Where("user_id = ?", user.ID).First(&membership).Error; err != nil {
		utils.NotFound(c, "No membership found")
		return
	}

	utils.Success(c, "Membership retrieved successfully", gin.H{"membership": membership})
}
