package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuCode string

const (
	MenuWomen  MenuCode = "women"
	MenuMen    MenuCode = "men"
	MenuHajj   MenuCode = "hajj"
	MenuBuyers MenuCode = "buyers"
)

var menuTitles = map[MenuCode]string{
	MenuWomen:  "Women",
	MenuMen:    "Men",
	MenuHajj:   "For Hajj and Umrah",
	MenuBuyers: "For buyers",
}

func (c MenuCode) Title() string {
	if t, ok := menuTitles[c]; ok {
		return t
	}

	return string(c)
}

type Menu struct {
	ID         int64    `json:"id"`
	Code       MenuCode `json:"code"`
	Title      string   `json:"title"`
	ShowInMenu bool     `json:"show_in_menu"`
	Categories []string `json:"categories"`
}

type Category struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	MenuItems []string `json:"menu_items"`
}

type Collection struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	VideoURL    string   `json:"video_url"`
}

type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Size struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Instructions struct {
	Details string `json:"details"`
	Care    string `json:"care"`
}

type Product struct {
	ID              int64            `json:"id"`
	CollectionID    *int64           `json:"collection_id,omitempty"`
	CollectionName  string           `json:"collection_name,omitempty"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	DeliveryInfo    string           `json:"delivery_info"`
	SKU             string           `json:"sku"`
	ModelParameters string           `json:"model_parameters"`
	SizeOnModel     string           `json:"size_on_model"`
	Description     string           `json:"description"`
	Instructions    Instructions     `json:"instructions"`
	Quantity        *int64           `json:"quantity"`
	CreatedAt       time.Time        `json:"created_at"`
	Views           int64            `json:"views"`
	Categories      []string         `json:"categories"`
	Colors          []ColorVariant   `json:"colors"`
	Related         []ProductSummary `json:"related"`
}

// ProductSummary is the list-card projection of a product.
type ProductSummary struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	CollectionName string          `json:"collection_name,omitempty"`
	Image          string          `json:"image,omitempty"`
	Views          int64           `json:"views"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Product orderings accepted by the list endpoint. A leading '-' sorts descending.
const (
	OrderingPriceAsc  = "price"
	OrderingPriceDesc = "-price"
	OrderingDateAsc   = "date"
	OrderingDateDesc  = "-date"
	OrderingViewsAsc  = "views"
	OrderingViewsDesc = "-views"
)

type ProductFilter struct {
	CategoryID   *int64
	CollectionID *int64
	ColorID      *int64
	SizeID       *int64
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Name         string
	Ordering     string
	Page         int
	PageSize     int
}

type Facets struct {
	Colors []Color `json:"colors"`
	Sizes  []Size  `json:"sizes"`
}

type HomePage struct {
	LatestCollections []Collection `json:"latest_collections"`
	Categories        []Category   `json:"categories"`
}
