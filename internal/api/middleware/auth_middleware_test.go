package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	users map[string]*models.User
	err   error
}

func (f fakeSessions) Current(_ context.Context, deviceID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[deviceID], nil
}

func okHandler(t *testing.T, check func(r *http.Request)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"success": true}`))
		require.NoError(t, err)
	})
}

func TestRequireDevice(t *testing.T) {

	tests := []struct {
		name           string
		deviceID       string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Device Header",
			deviceID:       "ios-3F2A.9c",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Fail - Missing Header",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success": false, "error": {"code": "BAD_REQUEST", "message": "X-Device-ID header is required"}}`,
		},
		{
			name:           "Fail - Malformed Header",
			deviceID:       "has spaces/and slashes",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.deviceID != "" {
				req.Header.Set(middleware.DeviceIDHeader, tc.deviceID)
			}
			rr := httptest.NewRecorder()

			handler := middleware.RequireDevice(okHandler(t, func(r *http.Request) {
				deviceID, ok := middleware.DeviceIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, tc.deviceID, deviceID)
			}))

			// Act
			handler.ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {

	sessions := fakeSessions{users: map[string]*models.User{"device-1": {ID: 7, Email: "ann@example.com"}}}

	tests := []struct {
		name           string
		sessions       fakeSessions
		deviceID       string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success - Signed In",
			sessions:       sessions,
			deviceID:       "device-1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail - No Session",
			sessions:       sessions,
			deviceID:       "device-2",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "NOT_AUTHENTICATED",
		},
		{
			name:           "Fail - Session Store Down",
			sessions:       fakeSessions{err: errors.New("redis down")},
			deviceID:       "device-1",
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "THIRD_PARTY_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			// Arrange
			authMiddleware := middleware.NewAuthMiddleware(tc.sessions, "")
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.DeviceIDHeader, tc.deviceID)
			rr := httptest.NewRecorder()

			handler := middleware.RequireDevice(authMiddleware.Authenticate(okHandler(t, func(r *http.Request) {
				user, ok := middleware.UserFromContext(r.Context())
				require.True(t, ok, "User should be in context")
				assert.Equal(t, int64(7), user.ID)
				assert.NotNil(t, middleware.LoggerFromContext(r.Context()))
			})))

			// Act
			handler.ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedCode)
			}
		})
	}

	t.Run("Fail - Without Device Middleware", func(t *testing.T) {
		authMiddleware := middleware.NewAuthMiddleware(sessions, "")
		rr := httptest.NewRecorder()

		authMiddleware.Authenticate(okHandler(t, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRequireStaff(t *testing.T) {

	tests := []struct {
		name           string
		staffKey       string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Valid Key",
			staffKey:       "staff-secret",
			authHeader:     "Bearer staff-secret",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Fail - Missing Authorization Header",
			staffKey:       "staff-secret",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Authorization header is required"}}`,
		},
		{
			name:           "Fail - Invalid Authorization Header Format",
			staffKey:       "staff-secret",
			authHeader:     "staff-secret",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid authorization format"}}`,
		},
		{
			name:           "Fail - Wrong Key",
			staffKey:       "staff-secret",
			authHeader:     "Bearer guess",
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"success": false, "error": {"code": "FORBIDDEN", "message": "Invalid staff key"}}`,
		},
		{
			name:           "Fail - Staff Access Disabled",
			authHeader:     "Bearer anything",
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"success": false, "error": {"code": "FORBIDDEN", "message": "Staff access is disabled"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			// Arrange
			authMiddleware := middleware.NewAuthMiddleware(fakeSessions{}, tc.staffKey)
			req := httptest.NewRequest(http.MethodPatch, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			// Act
			authMiddleware.RequireStaff(okHandler(t, nil)).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
