package repository

import (
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/shopspring/decimal"
)

// Row types mirror the record store tables by user field name. Requests are
// the write shapes and are validated before they are sent.

type userRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"password_hash"`
}

func (r userRow) toModel() *models.User {
	return &models.User{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone, PasswordHash: r.PasswordHash}
}

type createUserRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty" validate:"max=20"`
	PasswordHash string `json:"password_hash" validate:"required"`
}

type productRow struct {
	ID            int64                  `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Category      tablestore.SelectValue `json:"category"`
	Price         decimal.Decimal        `json:"price"`
	DiscountPrice decimal.NullDecimal    `json:"discount_price"`
	ImageURL      string                 `json:"image_url"`
	IsAvailable   bool                   `json:"is_available"`
}

func (r productRow) toModel() models.Product {
	return models.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      string(r.Category),
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		ImageURL:      r.ImageURL,
		IsAvailable:   r.IsAvailable,
	}
}

type addressRow struct {
	ID        int64              `json:"id"`
	User      tablestore.LinkRow `json:"user"`
	Label     string             `json:"label"`
	Detail    string             `json:"detail"`
	Phone     string             `json:"phone"`
	IsDefault bool               `json:"is_default"`
}

func (r addressRow) toModel() models.Address {
	userID, _ := r.User.First()
	return models.Address{ID: r.ID, UserID: userID, Label: r.Label, Detail: r.Detail, Phone: r.Phone, IsDefault: r.IsDefault}
}

type voucherRow struct {
	ID            int64                  `json:"id"`
	User          tablestore.LinkRow     `json:"user"`
	Code          string                 `json:"code"`
	Description   string                 `json:"description"`
	Type          tablestore.SelectValue `json:"type"`
	DiscountValue decimal.Decimal        `json:"discount_value"`
	MinOrderValue decimal.Decimal        `json:"min_order_value"`
	IsUsed        bool                   `json:"is_used"`
	ExpiryDate    *models.Date           `json:"expiry_date"`
}

func (r voucherRow) toModel() models.Voucher {
	userID, _ := r.User.First()
	return models.Voucher{
		ID:            r.ID,
		UserID:        userID,
		Code:          r.Code,
		Description:   r.Description,
		Kind:          models.VoucherKind(r.Type),
		DiscountValue: r.DiscountValue,
		MinOrderValue: r.MinOrderValue,
		IsUsed:        r.IsUsed,
		ExpiryDate:    r.ExpiryDate,
	}
}

type orderRow struct {
	ID              int64                  `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	User            tablestore.LinkRow     `json:"user"`
	Address         tablestore.LinkRow     `json:"address"`
	DeliveryAddress string                 `json:"delivery_address"`
	Phone           string                 `json:"phone"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	ShippingFee     decimal.Decimal        `json:"shipping_fee"`
	DiscountAmount  decimal.Decimal        `json:"discount_amount"`
	TotalPrice      decimal.Decimal        `json:"total_price"`
	PaymentMethod   tablestore.SelectValue `json:"payment_method"`
	Note            string                 `json:"note"`
	Status          tablestore.SelectValue `json:"status"`
	DiscountVoucher tablestore.LinkRow     `json:"discount_voucher"`
	ShippingVoucher tablestore.LinkRow     `json:"shipping_voucher"`
	CreatedAt       time.Time              `json:"created_at"`
}

func (r orderRow) toModel() *models.Order {
	order := &models.Order{
		ID:              r.ID,
		OrderNumber:     r.OrderNumber,
		DeliveryAddress: r.DeliveryAddress,
		Phone:           r.Phone,
		Subtotal:        r.Subtotal,
		ShippingFee:     r.ShippingFee,
		DiscountAmount:  r.DiscountAmount,
		TotalPrice:      r.TotalPrice,
		PaymentMethod:   models.PaymentMethod(r.PaymentMethod),
		Note:            r.Note,
		Status:          models.OrderStatus(r.Status),
		CreatedAt:       r.CreatedAt,
	}

	order.UserID, _ = r.User.First()
	order.AddressID, _ = r.Address.First()

	if id, ok := r.DiscountVoucher.First(); ok {
		order.DiscountVoucherID = &id
	}
	if id, ok := r.ShippingVoucher.First(); ok {
		order.ShippingVoucherID = &id
	}

	return order
}

type createOrderRequest struct {
	OrderNumber     string               `json:"order_number" validate:"required,max=32"`
	User            tablestore.LinkRow   `json:"user" validate:"len=1,dive,gt=0"`
	Address         tablestore.LinkRow   `json:"address" validate:"len=1,dive,gt=0"`
	DeliveryAddress string               `json:"delivery_address" validate:"required"`
	Phone           string               `json:"phone" validate:"max=20"`
	Subtotal        decimal.Decimal      `json:"subtotal" validate:"gte=0"`
	ShippingFee     decimal.Decimal      `json:"shipping_fee" validate:"gte=0"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount" validate:"gte=0"`
	TotalPrice      decimal.Decimal      `json:"total_price" validate:"gte=0"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash card wallet"`
	Note            string               `json:"note" validate:"max=500"`
	Status          models.OrderStatus   `json:"status" validate:"required"`
	DiscountVoucher tablestore.LinkRow   `json:"discount_voucher"`
	ShippingVoucher tablestore.LinkRow   `json:"shipping_voucher"`
	CreatedAt       time.Time            `json:"created_at" validate:"required"`
}

func newCreateOrderRequest(order *models.Order) createOrderRequest {
	req := createOrderRequest{
		OrderNumber:     order.OrderNumber,
		User:            tablestore.Link(order.UserID),
		Address:         tablestore.Link(order.AddressID),
		DeliveryAddress: order.DeliveryAddress,
		Phone:           order.Phone,
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		DiscountAmount:  order.DiscountAmount,
		TotalPrice:      order.TotalPrice,
		PaymentMethod:   order.PaymentMethod,
		Note:            order.Note,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt.UTC(),
	}

	if order.DiscountVoucherID != nil {
		req.DiscountVoucher = tablestore.Link(*order.DiscountVoucherID)
	}
	if order.ShippingVoucherID != nil {
		req.ShippingVoucher = tablestore.Link(*order.ShippingVoucherID)
	}

	return req
}

type orderItemRow struct {
	ID          int64              `json:"id"`
	Order       tablestore.LinkRow `json:"order"`
	Product     tablestore.LinkRow `json:"product"`
	ProductName string             `json:"product_name"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	ImageURL    string             `json:"image_url"`
	Quantity    int                `json:"quantity"`
}

func (r orderItemRow) toModel() *models.OrderItem {
	item := &models.OrderItem{
		ID:        r.ID,
		Name:      r.ProductName,
		UnitPrice: r.UnitPrice,
		ImageRef:  r.ImageURL,
		Quantity:  r.Quantity,
	}
	item.OrderID, _ = r.Order.First()
	item.ProductID, _ = r.Product.First()

	return item
}

type createOrderItemRequest struct {
	Order       tablestore.LinkRow `json:"order" validate:"len=1,dive,gt=0"`
	Product     tablestore.LinkRow `json:"product" validate:"len=1,dive,gt=0"`
	ProductName string             `json:"product_name" validate:"required"`
	UnitPrice   decimal.Decimal    `json:"unit_price" validate:"gte=0"`
	ImageURL    string             `json:"image_url"`
	Quantity    int                `json:"quantity" validate:"gt=0"`
}

type statusHistoryRow struct {
	ID        int64                  `json:"id"`
	Order     tablestore.LinkRow     `json:"order"`
	Status    tablestore.SelectValue `json:"status"`
	Note      string                 `json:"note"`
	Actor     string                 `json:"actor"`
	CreatedAt time.Time              `json:"created_at"`
}

func (r statusHistoryRow) toModel() *models.OrderStatusHistory {
	entry := &models.OrderStatusHistory{
		ID:        r.ID,
		Status:    models.OrderStatus(r.Status),
		Note:      r.Note,
		Actor:     r.Actor,
		CreatedAt: r.CreatedAt,
	}
	entry.OrderID, _ = r.Order.First()

	return entry
}

type createStatusHistoryRequest struct {
	Order     tablestore.LinkRow `json:"order" validate:"len=1,dive,gt=0"`
	Status    models.OrderStatus `json:"status" validate:"required"`
	Note      string             `json:"note" validate:"max=500"`
	Actor     string             `json:"actor" validate:"required,oneof=customer staff"`
	CreatedAt time.Time          `json:"created_at" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}
