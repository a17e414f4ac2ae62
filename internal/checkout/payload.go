package checkout

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/shopspring/decimal"
)

const initialHistoryNote = "new order"

// Selection is everything the customer chose on the checkout screen, already
// resolved against the fetched addresses and vouchers.
type Selection struct {
	Address         *models.Address
	User            *models.User
	PaymentMethod   models.PaymentMethod
	Note            string
	DiscountVoucher *models.Voucher
	ShippingVoucher *models.Voucher
}

// GenerateOrderNumber derives a short code from the last six digits of the
// millisecond timestamp. Collisions are possible but unlikely.
func GenerateOrderNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%06d", prefix, now.UnixMilli()%1_000_000)
}

// BuildOrderPayload assembles a pending order from a validated selection. The
// result depends only on its inputs; the cart is not touched.
func BuildOrderPayload(items []models.CartLineItem, sel Selection, shippingFee decimal.Decimal, prefix string, now time.Time) models.Order {

	subtotal := Subtotal(items)
	totals := ComputeTotals(subtotal, shippingFee, sel.DiscountVoucher, sel.ShippingVoucher)

	order := models.Order{
		OrderNumber:    GenerateOrderNumber(prefix, now),
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		DiscountAmount: totals.DiscountAmount,
		TotalPrice:     totals.Total,
		PaymentMethod:  sel.PaymentMethod,
		Note:           sel.Note,
		Status:         models.OrderStatusPending,
		CreatedAt:      now,
	}

	if sel.User != nil {
		order.UserID = sel.User.ID
	}

	if sel.Address != nil {
		order.AddressID = sel.Address.ID
		order.DeliveryAddress = sel.Address.Detail
		order.Phone = sel.Address.Phone
	}

	if id, ok := appliedVoucherID(sel.DiscountVoucher, subtotal); ok {
		order.DiscountVoucherID = &id
	}

	if id, ok := appliedVoucherID(sel.ShippingVoucher, subtotal); ok {
		order.ShippingVoucherID = &id
	}

	order.Items = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			ImageRef:  item.ImageRef,
			Quantity:  item.Quantity,
		})
	}

	order.StatusHistory = []models.OrderStatusHistory{{
		Status:    models.OrderStatusPending,
		Note:      initialHistoryNote,
		Actor:     models.ActorCustomer,
		CreatedAt: now,
	}}

	return order
}

func appliedVoucherID(v *models.Voucher, subtotal decimal.Decimal) (int64, bool) {

	if v == nil || !IsVoucherEligible(*v, subtotal) {
		return 0, false
	}

	return v.ID, true
}
