package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the verified bearer token payload. Tokens are issued by the
// identity service; this API only verifies them.
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsStaff bool      `json:"is_staff,omitempty"`
	jwt.RegisteredClaims
}
