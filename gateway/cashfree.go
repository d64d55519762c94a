package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const cashfreeAPIVersion = "2023-08-01"

// CashfreeConfig holds the credentials and endpoint for the Cashfree PG API.
type CashfreeConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// CashfreeClient implements Client against the Cashfree payment gateway
// REST API. Cashfree has no official Go SDK, so this talks to the API
// directly.
type CashfreeClient struct {
	cfg  CashfreeConfig
	http *http.Client
}

func NewCashfreeClient(cfg CashfreeConfig) *CashfreeClient {
	return &CashfreeClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type cashfreeOrderRequest struct {
	OrderID         string   `json:"order_id"`
	OrderAmount     float64  `json:"order_amount"`
	OrderCurrency   string   `json:"order_currency"`
	OrderNote       string   `json:"order_note,omitempty"`
	CustomerDetails Customer `json:"customer_details"`
}

type cashfreeOrderResponse struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	OrderStatus      string `json:"order_status"`
}

type cashfreePayment struct {
	CfPaymentID    json.Number `json:"cf_payment_id"`
	PaymentStatus  string      `json:"payment_status"`
	PaymentMessage string      `json:"payment_message"`
}

type cashfreeRefundResponse struct {
	RefundID     string `json:"refund_id"`
	RefundStatus string `json:"refund_status"`
}

type cashfreeError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *CashfreeClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderSession, error) {
	body := cashfreeOrderRequest{
		OrderID:         req.OrderID,
		OrderAmount:     req.Amount,
		OrderCurrency:   req.Currency,
		OrderNote:       req.Note,
		CustomerDetails: req.Customer,
	}

	var resp cashfreeOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", body, &resp); err != nil {
		return nil, &Error{Op: "create order", Message: err.Error(), Err: err}
	}

	return &OrderSession{
		OrderID:     resp.OrderID,
		SessionID:   resp.PaymentSessionID,
		OrderStatus: resp.OrderStatus,
	}, nil
}

func (c *CashfreeClient) FetchPaymentsForOrder(ctx context.Context, orderID string) ([]PaymentDetail, error) {
	var resp []cashfreePayment
	path := fmt.Sprintf("/orders/%s/payments", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, &Error{Op: "fetch payments", Message: err.Error(), Err: err}
	}

	details := make([]PaymentDetail, 0, len(resp))
	for _, p := range resp {
		details = append(details, PaymentDetail{
			Status:           p.PaymentStatus,
			GatewayPaymentID: p.CfPaymentID.String(),
			Message:          p.PaymentMessage,
		})
	}
	return details, nil
}

func (c *CashfreeClient) CreateRefund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	body := map[string]interface{}{
		"refund_id":     req.RefundID,
		"refund_amount": req.Amount,
		"refund_note":   req.Note,
	}

	var resp cashfreeRefundResponse
	path := fmt.Sprintf("/orders/%s/refunds", req.OrderID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, &Error{Op: "create refund", Message: err.Error(), Err: err}
	}

	return &RefundResult{RefundID: resp.RefundID, Status: resp.RefundStatus}, nil
}

func (c *CashfreeClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", cashfreeAPIVersion)
	req.Header.Set("x-client-id", c.cfg.ClientID)
	req.Header.Set("x-client-secret", c.cfg.ClientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr cashfreeError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
