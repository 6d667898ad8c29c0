package mocks

import (
	"context"

	stripeClient "github.com/aaravmahajanofficial/storefront-api/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

var _ stripeClient.Client = (*Client)(nil)

func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
},
) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Client) CreateCheckoutSession(ctx context.Context, req stripeClient.CheckoutSessionRequest) (*stripeClient.CheckoutSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*stripeClient.CheckoutSession)

	return session, args.Error(1)
}

func (m *Client) GetCheckoutSession(ctx context.Context, id string) (*stripeClient.CheckoutSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*stripeClient.CheckoutSession)

	return session, args.Error(1)
}

func (m *Client) VerifyWebhookSignature(payload []byte, signature string) (stripeClient.Event, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(stripeClient.Event)

	return event, args.Error(1)
}

func (m *Client) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
