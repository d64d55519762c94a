package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Adarsh-234/LoanNest/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is the clock used by services under test.
var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PaymentConfig{},
		&models.Payment{},
		&models.Membership{},
		&models.LoanApplication{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Name: "Asha Nair", Email: "asha@example.com", Phone: "9876543210"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedConfigs(t *testing.T, db *gorm.DB) {
	t.Helper()
	configs := []models.PaymentConfig{
		{Type: models.PaymentTypeLoanFee, Amount: 500, Currency: "INR", Active: true},
		{Type: models.PaymentTypeDocumentFee, Amount: 150, Currency: "INR", Active: true},
		{Type: models.PaymentTypeMembership, Plan: models.PlanMonthly, Amount: 299, Currency: "INR", Active: true},
		{Type: models.PaymentTypeMembership, Plan: models.PlanYearly, Amount: 2999, Currency: "INR", Active: true},
	}
	for i := range configs {
		require.NoError(t, db.Create(&configs[i]).Error)
	}
}

func seedLoanApplication(t *testing.T, db *gorm.DB, userID uint) *models.LoanApplication {
	t.Helper()
	app := &models.LoanApplication{
		UserID:        userID,
		Amount:        200000,
		TenureMonths:  24,
		Purpose:       "working capital",
		Status:        "submitted",
		PaymentStatus: models.LoanPaymentStatusPending,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func seedPayment(t *testing.T, db *gorm.DB, payment *models.Payment) *models.Payment {
	t.Helper()
	if payment.Status == "" {
		payment.Status = models.PaymentStatusCreated
	}
	if payment.Currency == "" {
		payment.Currency = "INR"
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func newTestCoordinator() *SideEffectCoordinator {
	c := NewSideEffectCoordinator()
	c.now = func() time.Time { return fixedNow }
	return c
}
