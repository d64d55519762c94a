package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// GatewayConfig holds the payment gateway credentials. It is loaded once
// at startup and injected into the services that need it; nothing reads
// gateway environment variables at request time.
type GatewayConfig struct {
	Provider     string // "cashfree" or "razorpay"
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string
	Gateway    GatewayConfig
}

// LoadConfig loads configuration from environment variables. Missing
// gateway credentials are a startup error, not a per-request failure.
func LoadConfig() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		Gateway: GatewayConfig{
			Provider:     os.Getenv("GATEWAY_PROVIDER"),
			BaseURL:      os.Getenv("GATEWAY_BASE_URL"),
			ClientID:     os.Getenv("GATEWAY_CLIENT_ID"),
			ClientSecret: os.Getenv("GATEWAY_CLIENT_SECRET"),
		},
	}

	if config.Gateway.Provider == "" {
		config.Gateway.Provider = "cashfree"
	}
	if config.Gateway.ClientID == "" || config.Gateway.ClientSecret == "" {
		return nil, fmt.Errorf("GATEWAY_CLIENT_ID and GATEWAY_CLIENT_SECRET are required")
	}
	if config.Gateway.Provider == "cashfree" && config.Gateway.BaseURL == "" {
		return nil, fmt.Errorf("GATEWAY_BASE_URL is required for the cashfree provider")
	}

	return config, nil
}
