package routes

import (
	"github.com/Adarsh-234/LoanNest/controllers"
	"github.com/Adarsh-234/LoanNest/middleware"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	api := router.Group("/v1")
	{
		// Webhook is unauthenticated; the gateway delivers it directly.
		api.POST("/payments/webhook", controllers.HandleGatewayWebhook)

		payments := api.Group("/payments")
		payments.Use(middleware.AuthMiddleware())
		{
			payments.POST("/initiate", controllers.InitiatePayment)
			payments.POST("/verify", controllers.VerifyPayment)
			payments.GET("", controllers.ListPayments)
			payments.GET("/:id", controllers.GetPayment)
			payments.GET("/:id/receipt", controllers.DownloadPaymentReceipt)
		}

		membership := api.Group("/membership")
		membership.Use(middleware.AuthMiddleware())
		{
			membership.GET("", controllers.GetMembership)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.POST("/payments/:id/refund", controllers.RefundPayment)
		}
	}

	return router
}
