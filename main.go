package main

import (
	"fmt"
	"log"

	"github.com/Adarsh-234/LoanNest/config"
	"github.com/Adarsh-234/LoanNest/controllers"
	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/Adarsh-234/LoanNest/routes"
	"github.com/Adarsh-234/LoanNest/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables; missing gateway credentials abort startup
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	if err := config.InitDB(cfg); err != nil {
		utils.LogError("Failed to initialize database: %v", err)
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed default payment configs so pricing works out of the box
	if err := config.SeedPaymentConfigs(); err != nil {
		utils.LogError("Failed to seed payment configs: %v", err)
		log.Fatal("Failed to seed payment configs:", err)
	}

	// Build the payment gateway client from config
	client, err := newGatewayClient(cfg.Gateway)
	if err != nil {
		utils.LogError("Failed to build gateway client: %v", err)
		log.Fatal("Failed to build gateway client:", err)
	}
	controllers.Init(config.DB, client)

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}

func newGatewayClient(cfg config.GatewayConfig) (gateway.Client, error) {
	switch cfg.Provider {
	case "cashfree":
		return gateway.NewCashfreeClient(gateway.CashfreeConfig{
			BaseURL:      cfg.BaseURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		}), nil
	case "razorpay":
		return gateway.NewRazorpayClient(cfg.ClientID, cfg.ClientSecret), nil
	default:
		return nil, fmt.Errorf("unknown gateway provider: %s", cfg.Provider)
	}
}
