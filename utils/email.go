package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Adarsh-234/LoanNest/models"
	"gopkg.in/gomail.v2"
)

// SendPaymentReceiptEmail mails a payment confirmation to the payer. It is
// called after the reconcile transaction commits and is best-effort; a
// delivery failure never affects the payment state.
func SendPaymentReceiptEmail(to string, payment *models.Payment) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	body := fmt.Sprintf(`
		<h2>Payment Received</h2>
		<p>We have received your payment of %s %.2f.</p>
		<p>Receipt: %s</p>
		<p>Order reference: %s</p>
		<p>Thank you for using LoanNest.</p>
	`, payment.Currency, payment.Amount, payment.Receipt, payment.GatewayOrderID)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your LoanNest payment receipt")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %v", err)
	}
	return nil
}
