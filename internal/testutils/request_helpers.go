package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/google/uuid"
)

// CreateTestRequestWithContext builds a request as it looks after the logging
// and auth middleware ran for a buyer.
func CreateTestRequestWithContext(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	return withClaims(CreateTestRequestWithoutContext(method, target, body, pathParams), &models.Claims{UserID: userID, Email: "test@example.com"})
}

// CreateStaffRequest is CreateTestRequestWithContext for a staff member.
func CreateStaffRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	return withClaims(CreateTestRequestWithoutContext(method, target, body, pathParams),
		&models.Claims{UserID: uuid.New(), Email: "staff@example.com", IsStaff: true})
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

func withClaims(req *http.Request, claims *models.Claims) *http.Request {
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}
