package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

type userContextKey struct{}

// SessionReader returns the signed-in user of a device, or nil.
type SessionReader interface {
	Current(ctx context.Context, deviceID string) (*models.User, error)
}

type AuthMiddleware struct {
	sessions SessionReader
	staffKey string
}

func NewAuthMiddleware(sessions SessionReader, staffKey string) *AuthMiddleware {

	return &AuthMiddleware{sessions: sessions, staffKey: strings.TrimSpace(staffKey)}

}

// Authenticate requires a signed-in session for the device set by
// RequireDevice and puts the user in the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		deviceID, ok := DeviceIDFromContext(r.Context())
		if !ok {
			logger.Warn("Authenticate used without a device id")
			response.Error(w, errors.BadRequestError("X-Device-ID header is required"))
			return
		}

		user, err := m.sessions.Current(r.Context(), deviceID)
		if err != nil {
			logger.Error("Session lookup failed", slog.Any("error", err))
			response.Error(w, errors.ThirdPartyError("Failed to read session").WithError(err))
			return
		}

		if user == nil {
			logger.Warn("No session for device")
			response.Error(w, errors.NotAuthenticatedError())
			return
		}

		ctx := ContextWithUser(r.Context(), user)

		requestScopedLogger := logger.With(slog.Int64("user_id", user.ID))
		ctx = ContextWithLogger(ctx, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireStaff checks the "Authorization: Bearer <key>" header against the
// configured staff key. Without a configured key every request is refused.
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		if m.staffKey == "" {
			response.Error(w, errors.ForbiddenError("Staff access is disabled"))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		if subtle.ConstantTimeCompare([]byte(tokenParts[1]), []byte(m.staffKey)) != 1 {
			logger.Warn("Invalid staff key")
			response.Error(w, errors.ForbiddenError("Invalid staff key"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok && user != nil
}
