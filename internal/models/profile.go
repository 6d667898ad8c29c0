package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID              int64      `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	ClothingSize    string     `json:"clothing_size"`
	Gender          string     `json:"gender"`
	Birthday        *time.Time `json:"birthday,omitempty"`
	City            string     `json:"city"`
	Street          string     `json:"street"`
	House           string     `json:"house"`
	ApartmentOffice string     `json:"apartment_office"`
	PostalCode      string     `json:"postal_code"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,max=255"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,max=255"`
	ClothingSize    *string `json:"clothing_size,omitempty" validate:"omitempty,max=10"`
	Gender          *string `json:"gender,omitempty" validate:"omitempty,max=10"`
	Birthday        *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	City            *string `json:"city,omitempty" validate:"omitempty,max=255"`
	Street          *string `json:"street,omitempty" validate:"omitempty,max=255"`
	House           *string `json:"house,omitempty" validate:"omitempty,max=10"`
	ApartmentOffice *string `json:"apartment_office,omitempty" validate:"omitempty,max=10"`
	PostalCode      *string `json:"postal_code,omitempty" validate:"omitempty,max=10"`
}
