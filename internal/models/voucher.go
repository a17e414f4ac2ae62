package models

import "github.com/shopspring/decimal"

type VoucherKind string

const (
	VoucherKindDiscount VoucherKind = "discount"
	VoucherKindShipping VoucherKind = "shipping"
)

// Voucher values are flat currency amounts. ExpiryDate is carried for display
// only; eligibility ignores it.
type Voucher struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Code          string          `json:"code"`
	Description   string          `json:"description,omitempty"`
	Kind          VoucherKind     `json:"kind"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	IsUsed        bool            `json:"is_used"`
	ExpiryDate    *Date           `json:"expiry_date,omitempty"`
}
