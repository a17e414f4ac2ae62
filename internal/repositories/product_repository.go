package repository

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type productRepository struct {
	client  *tablestore.Client
	tableID int64
}

func NewProductRepo(client *tablestore.Client, tableID int64) ProductRepository {
	return &productRepository{client: client, tableID: tableID}
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	row, err := tablestore.GetRow[productRow](ctx, r.client, r.tableID, id)
	if err != nil {
		return nil, err
	}

	product := row.toModel()
	return &product, nil
}

// ListProducts returns the whole catalog, unavailable products included.
func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {

	rows, err := tablestore.ListRows[productRow](ctx, r.client, r.tableID, nil)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}

	return products, nil
}
