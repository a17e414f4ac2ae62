package checkout

import (
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/shopspring/decimal"
)

// Totals is the priced summary shown before an order is placed.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	Savings        decimal.Decimal `json:"savings"`
}

// SelectDefaultAddress returns the address flagged as default, else the first
// one. ok is false when there are no addresses.
func SelectDefaultAddress(addresses []models.Address) (models.Address, bool) {

	if len(addresses) == 0 {
		return models.Address{}, false
	}

	for _, address := range addresses {
		if address.IsDefault {
			return address, true
		}
	}

	return addresses[0], true
}

func PartitionVouchers(vouchers []models.Voucher) (discount, shipping []models.Voucher) {

	for _, v := range vouchers {
		switch v.Kind {
		case models.VoucherKindDiscount:
			discount = append(discount, v)
		case models.VoucherKindShipping:
			shipping = append(shipping, v)
		}
	}

	return discount, shipping
}

// IsVoucherEligible does not look at ExpiryDate. Expired vouchers are left to
// the data source to filter.
func IsVoucherEligible(v models.Voucher, subtotal decimal.Decimal) bool {
	return !v.IsUsed && subtotal.GreaterThanOrEqual(v.MinOrderValue)
}

func Subtotal(items []models.CartLineItem) decimal.Decimal {

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return subtotal
}

// ComputeTotals applies at most one voucher of each kind. Ineligible vouchers
// contribute nothing. DiscountAmount is capped at subtotal plus shipping so the
// total never drops below zero; Savings keeps the uncapped voucher sum.
func ComputeTotals(subtotal, shippingFee decimal.Decimal, discountVoucher, shippingVoucher *models.Voucher) Totals {

	savings := voucherValue(discountVoucher, subtotal).Add(voucherValue(shippingVoucher, subtotal))
	payable := subtotal.Add(shippingFee)
	discount := decimal.Min(savings, payable)

	return Totals{
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		DiscountAmount: discount,
		Total:          payable.Sub(discount),
		Savings:        savings,
	}
}

func voucherValue(v *models.Voucher, subtotal decimal.Decimal) decimal.Decimal {

	if v == nil || !IsVoucherEligible(*v, subtotal) {
		return decimal.Zero
	}

	return v.DiscountValue
}
