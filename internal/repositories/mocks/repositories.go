package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t mock.TestingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t mock.TestingT) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)
	return m
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type AddressRepository struct {
	mock.Mock
}

func NewAddressRepository(t mock.TestingT) *AddressRepository {
	m := &AddressRepository{}
	m.Mock.Test(t)
	return m
}

func (m *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Address), args.Error(1)
}

type VoucherRepository struct {
	mock.Mock
}

func NewVoucherRepository(t mock.TestingT) *VoucherRepository {
	m := &VoucherRepository{}
	m.Mock.Test(t)
	return m
}

func (m *VoucherRepository) ListAvailableByUser(ctx context.Context, userID int64) ([]models.Voucher, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Voucher), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t mock.TestingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	return m
}

// CreateOrder also accepts a func(*models.Order) *models.Order return value so
// tests can echo the payload back with an id.
func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(*models.Order) *models.Order:
		return v(order), args.Error(1)
	default:
		return v.(*models.Order), args.Error(1)
	}
}

func (m *OrderRepository) CreateOrderItem(ctx context.Context, orderID int64, item *models.OrderItem) (*models.OrderItem, error) {
	args := m.Called(ctx, orderID, item)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(*models.OrderItem) *models.OrderItem:
		return v(item), args.Error(1)
	default:
		return v.(*models.OrderItem), args.Error(1)
	}
}

func (m *OrderRepository) CreateStatusHistory(ctx context.Context, orderID int64, entry *models.OrderStatusHistory) (*models.OrderStatusHistory, error) {
	args := m.Called(ctx, orderID, entry)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(*models.OrderStatusHistory) *models.OrderStatusHistory:
		return v(entry), args.Error(1)
	default:
		return v.(*models.OrderStatusHistory), args.Error(1)
	}
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderRepository) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

func (m *OrderRepository) ListHistory(ctx context.Context, orderID int64) ([]models.OrderStatusHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderStatusHistory), args.Error(1)
}
