package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testProfileID int64 = 5

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// decodeResponse reads the envelope and decodes its data into dest when given.
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var envelope struct {
		response.APIResponse
		Data json.RawMessage `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	if dest != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, dest))
	}

	return envelope.APIResponse
}

// buyerProfile makes the profile service hand out the test profile for userID.
func buyerProfile(t *testing.T, userID uuid.UUID) *mocks.ProfileService {
	t.Helper()

	profiles := mocks.NewProfileService(t)
	profiles.On("GetOrCreate", mock.Anything, userID).Return(&models.Profile{ID: testProfileID, UserID: userID}, nil).Maybe()

	return profiles
}
