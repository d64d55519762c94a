package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayClient implements Client on top of the Razorpay SDK. Razorpay
// amounts are in the currency's minor unit, so values convert at the edge.
type RazorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(key, secret string) *RazorpayClient {
	return &RazorpayClient{client: razorpay.NewClient(key, secret)}
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderSession, error) {
	data := map[string]interface{}{
		"amount":          int(req.Amount * 100),
		"currency":        req.Currency,
		"receipt":         req.OrderID,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"order_id": req.OrderID,
			"note":     req.Note,
		},
	}

	order, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, &Error{Op: "create order", Message: err.Error(), Err: err}
	}

	// Razorpay checkout is keyed on the order id itself, so the session
	// handle and the provider order id are the same value.
	id := fmt.Sprintf("%v", order["id"])
	return &OrderSession{
		OrderID:     id,
		SessionID:   id,
		OrderStatus: fmt.Sprintf("%v", order["status"]),
	}, nil
}

func (c *RazorpayClient) FetchPaymentsForOrder(ctx context.Context, orderID string) ([]PaymentDetail, error) {
	resp, err := c.client.Order.Payments(orderID, nil, nil)
	if err != nil {
		return nil, &Error{Op: "fetch payments", Message: err.Error(), Err: err}
	}

	items, _ := resp["items"].([]interface{})
	return razorpayPaymentDetails(items), nil
}

func (c *RazorpayClient) CreateRefund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	// Razorpay refunds are issued against a payment, not an order, so the
	// captured payment for the order has to be resolved first.
	details, err := c.FetchPaymentsForOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	paymentID := capturedPaymentID(details)
	if paymentID == "" {
		return nil, &Error{Op: "create refund", Message: "no captured payment found for order " + req.OrderID}
	}

	data := map[string]interface{}{
		"notes": map[string]interface{}{
			"refund_id": req.RefundID,
			"note":      req.Note,
		},
	}
	refund, err := c.client.Payment.Refund(paymentID, int(req.Amount*100), data, nil)
	if err != nil {
		return nil, &Error{Op: "create refund", Message: err.Error(), Err: err}
	}

	return &RefundResult{
		RefundID: fmt.Sprintf("%v", refund["id"]),
		Status:   fmt.Sprintf("%v", refund["status"]),
	}, nil
}

// razorpayPaymentDetails converts an order's payment listing into
// gateway-neutral details, skipping entries that are not objects.
func razorpayPaymentDetails(items []interface{}) []PaymentDetail {
	details := make([]PaymentDetail, 0, len(items))
	for _, item := range items {
		p, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		detail := PaymentDetail{
			GatewayPaymentID: fmt.Sprintf("%v", p["id"]),
			Status:           razorpayStatus(fmt.Sprintf("%v", p["status"])),
		}
		if msg, ok := p["error_description"].(string); ok {
			detail.Message = msg
		}
		details = append(details, detail)
	}
	return details
}

// capturedPaymentID returns the first successful attempt's payment id,
// or "" when the order has no captured payment to refund against.
func capturedPaymentID(details []PaymentDetail) string {
	for _, d := range details {
		if d.Status == StatusSuccess {
			return d.GatewayPaymentID
		}
	}
	return ""
}

// razorpayStatus maps Razorpay payment states onto the gateway-neutral
// status values the reconciler understands.
func razorpayStatus(s string) string {
	switch s {
	case "captured":
		return StatusSuccess
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}
