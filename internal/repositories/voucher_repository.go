package repository

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
)

type VoucherRepository interface {
	ListAvailableByUser(ctx context.Context, userID int64) ([]models.Voucher, error)
}

type voucherRepository struct {
	client  *tablestore.Client
	tableID int64
}

func NewVoucherRepo(client *tablestore.Client, tableID int64) VoucherRepository {
	return &voucherRepository{client: client, tableID: tableID}
}

// ListAvailableByUser returns the user's vouchers that have not been used.
// Expiry is not filtered here.
func (r *voucherRepository) ListAvailableByUser(ctx context.Context, userID int64) ([]models.Voucher, error) {

	filter := tablestore.And(
		tablestore.LinkRowHas("user", userID),
		tablestore.Equal("is_used", false),
	)

	rows, err := tablestore.ListRows[voucherRow](ctx, r.client, r.tableID, filter)
	if err != nil {
		return nil, err
	}

	vouchers := make([]models.Voucher, 0, len(rows))
	for _, row := range rows {
		vouchers = append(vouchers, row.toModel())
	}

	return vouchers, nil
}
