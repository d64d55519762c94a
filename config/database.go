package config

import (
	"fmt"

	"github.com/Adarsh-234/LoanNest/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB(config *Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.PaymentConfig{},
		&models.Payment{},
		&models.Membership{},
		&models.LoanApplication{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	return nil
}

// SeedPaymentConfigs inserts the default pricing rows when none exist yet.
func SeedPaymentConfigs() error {
	defaults := []models.PaymentConfig{
		{Type: models.PaymentTypeLoanFee, Amount: 500, Currency: "INR", Active: true},
		{Type: models.PaymentTypeDocumentFee, Amount: 150, Currency: "INR", Active: true},
		{Type: models.PaymentTypeMembership, Plan: models.PlanMonthly, Amount: 299, Currency: "INR", Active: true},
		{Type: models.PaymentTypeMembership, Plan: models.PlanYearly, Amount: 2999, Currency: "INR", Active: true},
	}

	for _, cfg := range defaults {
		var count int64
		if err := DB.Model(&models.PaymentConfig{}).
			Where("type = ? AND plan = ?", cfg.Type, cfg.Plan).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
