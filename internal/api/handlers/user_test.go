package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/testutils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDevice = "device-1"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestRegister(t *testing.T) {

	t.Run("Success - User Created", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())

		reqBody := models.RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "Ann"}
		expected := &models.User{ID: 7, Email: reqBody.Email, Name: reqBody.Name}
		mockUserService.On("Register", mock.Anything, &reqBody).Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, reqBody), nil)

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)

		var user models.User
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, int64(7), user.ID)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Fail - Validation Error", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register",
			jsonBody(t, models.RegisterRequest{Email: "not-an-email", Password: "x"}), nil)

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, appErrors.ErrCodeValidation, env.Error.Code)
		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Fail - Email Taken", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())

		reqBody := models.RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "Ann"}
		mockUserService.On("Register", mock.Anything, &reqBody).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, reqBody), nil)

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, decodeEnvelope(t, rr).Error.Code)
	})
}

func TestLogin(t *testing.T) {

	credentials := models.LoginRequest{Email: "ann@example.com", Password: "secret1"}

	t.Run("Success - Session Started", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())

		mockUserService.On("Login", mock.Anything, testDevice, &credentials).
			Return(&models.User{ID: 7, Email: credentials.Email}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/session", jsonBody(t, credentials), testDevice, nil, nil)

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Fail - Rate Limited", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())

		mockUserService.On("Login", mock.Anything, testDevice, &credentials).
			Return(nil, appErrors.TooManyRequestsError("Too many login attempts").WithDetail("retry_after=42")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/session", jsonBody(t, credentials), testDevice, nil, nil)

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, []string{"retry_after=42"}, env.Error.Details)
	})

	t.Run("Fail - No Device", func(t *testing.T) {
		// Arrange
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session", jsonBody(t, credentials), nil)

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockUserService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSession(t *testing.T) {

	t.Run("Current - Signed In", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())
		mockUserService.On("Current", mock.Anything, testDevice).Return(&models.User{ID: 7}, nil).Once()

		rr := httptest.NewRecorder()
		handler.CurrentSession().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/session", nil, testDevice, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Current - Signed Out", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())
		mockUserService.On("Current", mock.Anything, testDevice).Return(nil, appErrors.NotAuthenticatedError()).Once()

		rr := httptest.NewRecorder()
		handler.CurrentSession().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/session", nil, testDevice, nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, appErrors.ErrCodeNotAuthenticated, decodeEnvelope(t, rr).Error.Code)
	})

	t.Run("Logout", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockUserService, utils.NewValidator())
		mockUserService.On("Logout", mock.Anything, testDevice).Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.Logout().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/session", nil, testDevice, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success": true, "data": {"signed_out": true}}`, rr.Body.String())
		mockUserService.AssertExpectations(t)
	})
}
