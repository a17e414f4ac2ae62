package repository

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Address, error)
}

type addressRepository struct {
	client  *tablestore.Client
	tableID int64
}

func NewAddressRepo(client *tablestore.Client, tableID int64) AddressRepository {
	return &addressRepository{client: client, tableID: tableID}
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {

	rows, err := tablestore.ListRows[addressRow](ctx, r.client, r.tableID, tablestore.LinkRowHas("user", userID))
	if err != nil {
		return nil, err
	}

	addresses := make([]models.Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, row.toModel())
	}

	return addresses, nil
}
