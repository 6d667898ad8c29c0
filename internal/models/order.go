package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "created"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusAssembling      OrderStatus = "assembling"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusHandedToCourier OrderStatus = "handed_to_courier"
	OrderStatusAwaitingPickup  OrderStatus = "awaiting_pickup"
	OrderStatusReceived        OrderStatus = "received"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusFailed          OrderStatus = "failed"
)

// fulfilmentChain is the forward path of an order. Administrative states sit
// outside of it.
var fulfilmentChain = []OrderStatus{
	OrderStatusCreated,
	OrderStatusPaid,
	OrderStatusAssembling,
	OrderStatusShipped,
	OrderStatusHandedToCourier,
	OrderStatusAwaitingPickup,
	OrderStatusReceived,
}

func (s OrderStatus) Valid() bool {
	return slices.Contains(fulfilmentChain, s) || s == OrderStatusCancelled || s == OrderStatusFailed
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReceived || s == OrderStatusCancelled || s == OrderStatusFailed
}

// CanTransitionTo allows moving forward along the chain by one or more steps,
// cancelling any open order and failing an order that was never paid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() || s.IsTerminal() {
		return false
	}

	switch next {
	case OrderStatusCancelled:
		return true
	case OrderStatusFailed:
		return s == OrderStatusCreated
	}

	return slices.Index(fulfilmentChain, next) > slices.Index(fulfilmentChain, s)
}

// Contact is the buyer and delivery snapshot taken at checkout. It is never
// re-derived from the profile afterwards.
type Contact struct {
	FirstName       string `json:"first_name" validate:"required,max=255"`
	LastName        string `json:"last_name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=20"`
	City            string `json:"city" validate:"required,max=255"`
	DeliveryMethod  string `json:"delivery_method" validate:"required,max=255"`
	Street          string `json:"street" validate:"required,max=255"`
	House           string `json:"house" validate:"required,max=10"`
	ApartmentOffice string `json:"apartment_office" validate:"omitempty,max=10"`
	PostalCode      string `json:"postal_code" validate:"omitempty,max=10"`
	CourierComment  string `json:"courier_comment" validate:"omitempty,max=2000"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	ColorIDs    []int64         `json:"color_ids"`
	SizeIDs     []int64         `json:"size_ids"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

type Order struct {
	ID           int64           `json:"id"`
	Number       string          `json:"order_number"`
	ProfileID    *int64          `json:"profile_id,omitempty"`
	Status       OrderStatus     `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	Contact      Contact         `json:"contact"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	Items        []OrderItem     `json:"items,omitempty"`
	Payment      *PaymentRecord  `json:"payment,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CheckoutLine is one submitted line. Price is what the client displayed; the
// order is always priced from the catalog. Color and size come as a pair or
// not at all.
type CheckoutLine struct {
	ProductID int64            `json:"product_id" validate:"required,gt=0"`
	Quantity  int64            `json:"quantity" validate:"required,min=1,max=999"`
	ColorID   int64            `json:"color_id" validate:"required_with=SizeID,gte=0"`
	SizeID    int64            `json:"size_id" validate:"required_with=ColorID,gte=0"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type CheckoutRequest struct {
	Items   []CheckoutLine `json:"items" validate:"required,min=1,max=100,dive"`
	Contact Contact        `json:"contact" validate:"required"`
}

type CheckoutResult struct {
	Order      *Order `json:"order"`
	PaymentURL string `json:"payment_url"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=created paid assembling shipped handed_to_courier awaiting_pickup received cancelled failed"`
}

type UpdateDeliveryDateRequest struct {
	DeliveryDate string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
}
