package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

const DeviceIDHeader = "X-Device-ID"

type deviceContextKey struct{}

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequireDevice rejects requests without a usable X-Device-ID. The device id
// keys the cart and the session.
func RequireDevice(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		deviceID := r.Header.Get(DeviceIDHeader)
		if !deviceIDPattern.MatchString(deviceID) {
			LoggerFromContext(r.Context()).Warn("Missing or malformed device id")
			response.Error(w, errors.BadRequestError("X-Device-ID header is required"))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithDevice(r.Context(), deviceID)))
	}
}

func ContextWithDevice(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceContextKey{}, deviceID)
}

func DeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(deviceContextKey{}).(string)
	return deviceID, ok && deviceID != ""
}
