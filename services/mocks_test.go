package services

import (
	"context"

	"github.com/Adarsh-234/LoanNest/gateway"
	"github.com/stretchr/testify/mock"
)

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.OrderSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.OrderSession), args.Error(1)
}

func (m *GatewayMock) FetchPaymentsForOrder(ctx context.Context, orderID string) ([]gateway.PaymentDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.PaymentDetail), args.Error(1)
}

func (m *GatewayMock) CreateRefund(ctx context.Context, req gateway.RefundRequest) (*gateway.RefundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.RefundResult), args.Error(1)
}
