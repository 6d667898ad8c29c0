package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ID          int64           `json:"id"`
	ProfileID   int64           `json:"profile_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Color       Color           `json:"color"`
	Size        Size            `json:"size"`
	Quantity    int64           `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// CartMode selects how a write combines with an existing line for the same
// product, color and size.
type CartMode int

const (
	// CartModeIncrement adds the submitted quantity to the stored one.
	CartModeIncrement CartMode = iota
	// CartModeSet replaces the stored quantity.
	CartModeSet
)

// MaxLineQuantity bounds the quantity of a single cart or order line.
const MaxLineQuantity = 999

type CartLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	ColorID   int64 `json:"color_id" validate:"required,gt=0"`
	SizeID    int64 `json:"size_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,min=1,max=999"`
}

type BulkAddRequest struct {
	Items []CartLineRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

type UpdateCartQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1,max=999"`
}

type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// BulkAddResult reports how far a bulk add got. FailedIndex and Error are set
// only when a line was rejected.
type BulkAddResult struct {
	Applied     int    `json:"applied"`
	Atomic      bool   `json:"atomic"`
	FailedIndex *int   `json:"failed_index,omitempty"`
	Error       string `json:"error,omitempty"`
}
