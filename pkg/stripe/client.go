package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

var ErrWebhookSecretMissing = errors.New("webhook secret not configured")

// CheckoutSessionRequest describes one hosted payment page for an order.
// Amount is in minor units of Currency.
type CheckoutSessionRequest struct {
	OrderNumber   string
	Amount        int64
	Currency      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// CheckoutSession is what the gateway reports back about a session.
type CheckoutSession struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"order_number"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	URL           string `json:"url"`
}

type Client interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	api           *client.API
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &stripeClient{api: api, webhookSecret: webhookSecret}
}

// NewStripeClientWithURL talks to baseURL instead of api.stripe.com and never retries.
func NewStripeClientWithURL(apiKey, webhookSecret, baseURL string, httpClient *http.Client) Client {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(baseURL),
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	api := &client.API{}
	api.Init(apiKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &stripeClient{api: api, webhookSecret: webhookSecret}
}

func (s *stripeClient) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.OrderNumber),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Order " + req.OrderNumber),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	params.Context = ctx
	params.AddMetadata("order_number", req.OrderNumber)
	params.SetIdempotencyKey("checkout-" + req.OrderNumber)

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return fromStripeSession(session), nil
}

func (s *stripeClient) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := s.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session %s: %w", id, err)
	}

	return fromStripeSession(session), nil
}

// VerifyWebhookSignature checks the Stripe-Signature header. Events signed for
// another API version are still accepted since only session fields are read.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, ErrWebhookSecretMissing
	}

	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// Ping fetches the account balance; the health check uses it as a reachability probe.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	if _, err := s.api.Balance.Get(params); err != nil {
		return fmt.Errorf("failed to connect to stripe: %w", err)
	}

	return nil
}

// SessionFromEvent decodes the checkout session carried by a webhook event.
func SessionFromEvent(event Event) (*CheckoutSession, error) {
	if event.Data == nil {
		return nil, errors.New("event has no data")
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	return fromStripeSession(&session), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	orderNumber := s.ClientReferenceID
	if n, ok := s.Metadata["order_number"]; ok && n != "" {
		orderNumber = n
	}

	return &CheckoutSession{
		ID:            s.ID,
		OrderNumber:   orderNumber,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		URL:           s.URL,
	}
}

// ToMinorUnits converts an amount to the smallest currency unit, rounding half
// away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
