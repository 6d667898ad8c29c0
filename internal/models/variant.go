package models

// VariantLine is one stock row of a product: a color, an optional size, the
// quantity on hand and the images shot for that color.
type VariantLine struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	Color     Color    `json:"color"`
	Size      *Size    `json:"size,omitempty"`
	Quantity  *int64   `json:"quantity"`
	Images    []string `json:"images"`
}

type SizeStock struct {
	Size     Size   `json:"size"`
	Quantity *int64 `json:"quantity"`
}

type ColorVariant struct {
	Color  Color       `json:"color"`
	Images []string    `json:"images"`
	Sizes  []SizeStock `json:"sizes"`
}

type ResolveVariantRequest struct {
	ColorID int64 `validate:"required,gt=0"`
	SizeID  int64 `validate:"required,gt=0"`
}
