package utils

import (
	"html"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const maxSanitizePasses = 4

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips every tag from user supplied text and returns it as
// plain, unescaped text. Entities are decoded before each pass, so markup
// hidden behind one or more levels of encoding is stripped too. Text that
// does not settle within a few passes is dropped.
func SanitizeText(s string) string {
	current := s

	for range maxSanitizePasses {
		next := html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(current)))
		if next == current {
			return strings.TrimSpace(current)
		}

		current = next
	}

	return ""
}

// SanitizeContact returns a copy of c with every free-text field sanitised.
// A required field left empty by sanitising is a validation error.
func SanitizeContact(c models.Contact) (models.Contact, error) {
	clean := models.Contact{
		FirstName:       SanitizeText(c.FirstName),
		LastName:        SanitizeText(c.LastName),
		Email:           strings.TrimSpace(c.Email),
		Phone:           SanitizeText(c.Phone),
		City:            SanitizeText(c.City),
		DeliveryMethod:  SanitizeText(c.DeliveryMethod),
		Street:          SanitizeText(c.Street),
		House:           SanitizeText(c.House),
		ApartmentOffice: SanitizeText(c.ApartmentOffice),
		PostalCode:      SanitizeText(c.PostalCode),
		CourierComment:  SanitizeText(c.CourierComment),
	}

	required := []struct {
		field string
		value string
	}{
		{"first_name", clean.FirstName},
		{"last_name", clean.LastName},
		{"email", clean.Email},
		{"phone", clean.Phone},
		{"city", clean.City},
		{"delivery_method", clean.DeliveryMethod},
		{"street", clean.Street},
		{"house", clean.House},
	}

	for _, r := range required {
		if r.value == "" {
			return models.Contact{}, appErrors.AddValidationError(r.field, "must contain text")
		}
	}

	return clean, nil
}
