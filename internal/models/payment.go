package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// CanTransitionTo only lets a pending payment settle once.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentStatusPending && (next == PaymentStatusConfirmed || next == PaymentStatusCancelled)
}

// PaymentRecord is the local record of the gateway payment for one order.
// Amount is what the gateway reported, which can differ from the order total.
type PaymentRecord struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          PaymentStatus   `json:"status"`
	GatewayID       string          `json:"gateway_id,omitempty"`
	GatewayStatus   string          `json:"gateway_status,omitempty"`
	ConfirmationURL string          `json:"confirmation_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type PaymentAction string

const (
	PaymentActionConfirm PaymentAction = "confirm"
	PaymentActionCancel  PaymentAction = "cancel"
)

func (a PaymentAction) TargetStatus() (PaymentStatus, bool) {
	switch a {
	case PaymentActionConfirm:
		return PaymentStatusConfirmed, true
	case PaymentActionCancel:
		return PaymentStatusCancelled, true
	default:
		return "", false
	}
}
