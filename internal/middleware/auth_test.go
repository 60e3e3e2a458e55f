package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mini-inventory/internal/auth"
	"mini-inventory/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokens accepts "admin-token" and "clerk-token".
type stubTokens struct{}

func (stubTokens) Parse(token string) (auth.Claims, error) {
	switch token {
	case "admin-token":
		return auth.Claims{UserID: 1, Username: "admin", Role: model.RoleAdmin}, nil
	case "clerk-token":
		return auth.Claims{UserID: 2, Username: "clerk", Role: model.RoleRegular}, nil
	default:
		return auth.Claims{}, errors.New("bad token")
	}
}

func TestRequireUserAndAdmin(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		admin          bool
		authorization  string
		expectedStatus int
		expectedCode   string
		expectedUser   string
	}{
		{
			name:           "User gate - missing header",
			authorization:  "",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "User gate - wrong scheme",
			authorization:  "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "User gate - invalid token",
			authorization:  "Bearer nope",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "User gate - regular user allowed",
			authorization:  "Bearer clerk-token",
			expectedStatus: http.StatusOK,
			expectedUser:   "clerk",
		},
		{
			name:           "User gate - scheme is case-insensitive",
			authorization:  "bearer admin-token",
			expectedStatus: http.StatusOK,
			expectedUser:   "admin",
		},
		{
			name:           "Admin gate - regular user forbidden",
			admin:          true,
			authorization:  "Bearer clerk-token",
			expectedStatus: http.StatusForbidden,
			expectedCode:   model.ErrCodeForbidden,
		},
		{
			name:           "Admin gate - admin allowed",
			admin:          true,
			authorization:  "Bearer admin-token",
			expectedStatus: http.StatusOK,
			expectedUser:   "admin",
		},
		{
			name:           "Admin gate - missing header",
			admin:          true,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenUser string
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, ok := UserFromContext(r.Context())
				require.True(t, ok)
				seenUser = user.Username
				w.WriteHeader(http.StatusOK)
			})

			gate := RequireUser(stubTokens{}, logger)
			if tt.admin {
				gate = RequireAdmin(stubTokens{}, logger)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			req = req.WithContext(WithRequestID(req.Context(), "req-1"))
			w := httptest.NewRecorder()

			gate(testHandler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedUser, seenUser)

			if tt.expectedCode != "" {
				var body model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedCode, body.Error)
				assert.Equal(t, "req-1", body.CorrelationID)
			}
		})
	}
}

func TestUserFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserFromContext(req.Context())
	assert.False(t, ok)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
