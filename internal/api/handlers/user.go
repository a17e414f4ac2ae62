package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{userService: userService, validator: validate}
}

// Register godoc
//
//	@Summary		Register a new customer
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.User
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Router			/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to register user", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered successfully", slog.Int64("userID", user.ID))
		response.Success(w, http.StatusCreated, user)
	}
}

// Login godoc
//
//	@Summary		Sign in on this device
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			X-Device-ID	header		string				true	"Device id"
//	@Param			credentials	body		models.LoginRequest	true	"Login credentials"
//	@Success		200			{object}	models.User
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router			/session [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		user, err := h.userService.Login(r.Context(), deviceID, &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User signed in", slog.Int64("userID", user.ID))
		response.Success(w, http.StatusOK, user)
	}
}

// CurrentSession returns the signed-in user of the device.
func (h *UserHandler) CurrentSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		user, err := h.userService.Current(r.Context(), deviceID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("No active session", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		if err := h.userService.Logout(r.Context(), deviceID); err != nil {
			logger.Error("Failed to sign out", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User signed out")
		response.Success(w, http.StatusOK, map[string]bool{"signed_out": true})
	}
}
