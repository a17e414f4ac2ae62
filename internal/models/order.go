package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

const (
	ActorCustomer = "customer"
	ActorStaff    = "staff"
)

type OrderItem struct {
	ID        int64           `json:"id,omitempty"`
	OrderID   int64           `json:"order_id,omitempty"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageRef  string          `json:"image_ref,omitempty"`
	Quantity  int             `json:"quantity"`
}

type OrderStatusHistory struct {
	ID        int64       `json:"id,omitempty"`
	OrderID   int64       `json:"order_id,omitempty"`
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note"`
	Actor     string      `json:"actor"`
	CreatedAt time.Time   `json:"created_at"`
}

type Order struct {
	ID                int64                `json:"id,omitempty"`
	OrderNumber       string               `json:"order_number"`
	UserID            int64                `json:"user_id"`
	AddressID         int64                `json:"address_id"`
	DeliveryAddress   string               `json:"delivery_address"`
	Phone             string               `json:"phone"`
	Subtotal          decimal.Decimal      `json:"subtotal"`
	ShippingFee       decimal.Decimal      `json:"shipping_fee"`
	DiscountAmount    decimal.Decimal      `json:"discount_amount"`
	TotalPrice        decimal.Decimal      `json:"total_price"`
	PaymentMethod     PaymentMethod        `json:"payment_method"`
	Note              string               `json:"note,omitempty"`
	Status            OrderStatus          `json:"status"`
	DiscountVoucherID *int64               `json:"discount_voucher_id,omitempty"`
	ShippingVoucherID *int64               `json:"shipping_voucher_id,omitempty"`
	Items             []OrderItem          `json:"items"`
	StatusHistory     []OrderStatusHistory `json:"status_history"`
	CreatedAt         time.Time            `json:"created_at"`
}

type CheckoutRequest struct {
	AddressID         *int64        `json:"address_id,omitempty" validate:"omitempty,gt=0"`
	PaymentMethod     PaymentMethod `json:"payment_method" validate:"required,oneof=cash card wallet"`
	DiscountVoucherID *int64        `json:"discount_voucher_id,omitempty" validate:"omitempty,gt=0"`
	ShippingVoucherID *int64        `json:"shipping_voucher_id,omitempty" validate:"omitempty,gt=0"`
	Note              string        `json:"note,omitempty" validate:"max=500"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed preparing delivering completed cancelled"`
	Note   string      `json:"note,omitempty" validate:"max=500"`
}
