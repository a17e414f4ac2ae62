package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

// requireDevice reads the device id set by middleware.RequireDevice.
func requireDevice(w http.ResponseWriter, r *http.Request) (string, bool) {

	deviceID, ok := middleware.DeviceIDFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Warn("Request reached handler without a device id")
		response.Error(w, errors.BadRequestError("X-Device-ID header is required"))
		return "", false
	}

	return deviceID, true
}

// requireUser reads the user set by AuthMiddleware.Authenticate.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized request")
		response.Error(w, errors.NotAuthenticatedError())
		return nil, logger, false
	}

	return user, logger.With(slog.Int64("userID", user.ID)), true
}

// queryID parses an optional positive id from the query string. An empty value
// yields nil.
func queryID(r *http.Request, name string) (*int64, error) {

	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.AddValidationError(name, "must be a positive integer")
	}

	return &id, nil
}
