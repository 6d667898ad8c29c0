package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

// AuthMiddleware verifies bearer tokens issued by the identity service.
type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok && claims != nil
}

func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

// Authenticate rejects requests without a valid token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))

			return
		}

		claims, err := m.parse(authHeader)
		if err != nil {
			logger.Warn("Token rejected", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		next.ServeHTTP(w, m.withUser(r, claims))
	}
}

// Optional attaches the user when a valid token is present and lets anonymous
// requests through. A malformed or expired token is still rejected.
func (m *AuthMiddleware) Optional(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.parse(authHeader)
		if err != nil {
			LoggerFromContext(r.Context()).Warn("Token rejected", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		next.ServeHTTP(w, m.withUser(r, claims))
	}
}

// RequireStaff is Authenticate plus the staff flag.
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.HandlerFunc {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if !claims.IsStaff {
			LoggerFromContext(r.Context()).Warn("Staff route accessed by non-staff user")
			response.Error(w, errors.ForbiddenError("Staff access required"))

			return
		}

		next.ServeHTTP(w, r)
	}))
}

func (m *AuthMiddleware) parse(authHeader string) (*models.Claims, error) {
	// Token is of format : "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errors.UnauthorizedError("Invalid authorization format")
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(*jwt.Token) (any, error) {
		return m.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(err)
	}

	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}

func (m *AuthMiddleware) withUser(r *http.Request, claims *models.Claims) *http.Request {
	logger := LoggerFromContext(r.Context()).With(slog.String("userId", claims.UserID.String()))

	ctx := WithClaims(r.Context(), claims)
	ctx = WithLogger(ctx, logger)

	logger.Debug("User authenticated")

	return r.WithContext(ctx)
}
