package checkout

import (
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

// ValidateCheckout reports the first unmet precondition, checked in the order
// cart, address, user.
func ValidateCheckout(items []models.CartLineItem, address *models.Address, user *models.User) error {

	if len(items) == 0 {
		return errors.EmptyCartError()
	}

	if address == nil {
		return errors.MissingAddressError()
	}

	if user == nil {
		return errors.NotAuthenticatedError()
	}

	return nil
}
