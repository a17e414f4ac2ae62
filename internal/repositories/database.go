package repository

import (
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/go-playground/validator/v10"
)

// Repositories groups every record kind behind one table store client.
type Repositories struct {
	Client    *tablestore.Client
	Users     UserRepository
	Products  ProductRepository
	Addresses AddressRepository
	Vouchers  VoucherRepository
	Orders    OrderRepository
}

func New(cfg *config.TableStore, validate *validator.Validate, opts ...tablestore.Option) (*Repositories, error) {

	opts = append([]tablestore.Option{
		tablestore.WithTimeout(cfg.RequestTimeout),
		tablestore.WithPageSize(cfg.PageSize),
	}, opts...)

	client, err := tablestore.NewClient(cfg.BaseURL, cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create table store client: %w", err)
	}

	return &Repositories{
		Client:    client,
		Users:     NewUserRepo(client, cfg.Tables.Users, validate),
		Products:  NewProductRepo(client, cfg.Tables.Products),
		Addresses: NewAddressRepo(client, cfg.Tables.Addresses),
		Vouchers:  NewVoucherRepo(client, cfg.Tables.Vouchers),
		Orders:    NewOrderRepository(client, cfg.Tables, validate),
	}, nil
}
