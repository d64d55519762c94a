package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Adarsh-234/LoanNest/config"
	"github.com/Adarsh-234/LoanNest/models"
	"github.com/Adarsh-234/LoanNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// GET /v1/payments/:id/receipt
//
// DownloadPaymentReceipt generates and returns a PDF receipt for a
// settled payment.
func DownloadPaymentReceipt(c *gin.Context) {
	utils.LogInfo("Starting receipt download process")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var payment models.Payment
	if err := config.DB.Where("id = ? AND user_id = ?", paymentID, user.ID).
		First(&payment).Error; err != nil {
		utils.LogError("Payment not found for receipt - ID: %d, user ID: %d", paymentID, user.ID)
		utils.NotFound(c, "Payment not found")
		return
	}

	if payment.Status != models.PaymentStatusSuccess && payment.Status != models.PaymentStatusRefunded {
		utils.BadRequest(c, "Receipt is only available for settled payments", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "LoanNest")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@loannest.in")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Receipt: "+payment.Receipt)
	pdf.Ln(8)
	pdf.Cell(60, 8, "Order: "+payment.GatewayOrderID)
	pdf.Ln(8)
	pdf.Cell(60, 8, "Date: "+payment.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Type: "+payment.Type)
	pdf.Cell(60, 8, "Status: "+payment.Status)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, user.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, user.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(80, 8, payment.Type, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, payment.Currency+" "+strconv.FormatFloat(payment.Amount, 'f', 2, 64), "1", 0, "R", false, 0, "")
	pdf.Ln(8)

	if payment.Status == models.PaymentStatusRefunded {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(80, 8, "Refunded", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, payment.Currency+" "+strconv.FormatFloat(payment.RefundAmount, 'f', 2, 64), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF for payment ID: %d: %v", payment.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt_"+strconv.Itoa(paymentID)+".pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
