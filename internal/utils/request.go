package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and validates it. On
// failure the error response is already written and false is returned.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()), slog.String("endpoint", r.URL.Path))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()).WithError(err))

		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			slog.Warn("Validation failed", slog.String("error", validationErrs.Error()), slog.String("endpoint", r.URL.Path))
			response.ValidationError(w, validationErrs)

			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.Error(w, appErrors.InternalError("Unexpected validation error").WithError(err))

		return false
	}

	return true
}

// ParseID reads a positive integer path value.
func ParseID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.AddValidationError(name, "must be a positive integer")
	}

	return id, nil
}

// ParseOptionalID reads a positive integer query parameter; absent yields nil.
func ParseOptionalID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, appErrors.AddValidationError(name, "must be a positive integer")
	}

	return &id, nil
}

// MaxPage caps the page number so the row offset stays far from overflow.
const MaxPage = 10000

// ParsePagination reads page and size query parameters, falling back to
// page 1 and defaultSize and capping size at maxSize and page at MaxPage.
func ParsePagination(r *http.Request, defaultSize, maxSize int) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	if page > MaxPage {
		page = MaxPage
	}

	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	if size < 1 {
		size = defaultSize
	}

	if size > maxSize {
		size = maxSize
	}

	return page, size
}
