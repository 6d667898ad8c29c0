package models

import "time"

type Favorite struct {
	ID        int64          `json:"id"`
	ProfileID int64          `json:"profile_id"`
	Product   ProductSummary `json:"product"`
	CreatedAt time.Time      `json:"created_at"`
}

type FavoriteRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type ToggleFavoriteResponse struct {
	ProductID int64 `json:"product_id"`
	Favorited bool  `json:"favorited"`
}
