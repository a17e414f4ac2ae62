package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func NewMockUserService(t mock.TestingT) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)
	return m
}

func (m *MockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, deviceID string, req *models.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, deviceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

func (m *MockUserService) Current(ctx context.Context, deviceID string) (*models.User, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func NewMockProductService(t mock.TestingT) *MockProductService {
	m := &MockProductService{}
	m.Mock.Test(t)
	return m
}

func (m *MockProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func NewMockCartService(t mock.TestingT) *MockCartService {
	m := &MockCartService{}
	m.Mock.Test(t)
	return m
}

func (m *MockCartService) GetCart(ctx context.Context, deviceID string) models.Cart {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(models.Cart)
}

func (m *MockCartService) AddItem(ctx context.Context, deviceID string, productID int64) (models.Cart, error) {
	args := m.Called(ctx, deviceID, productID)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, deviceID string, productID int64, quantity int) models.Cart {
	args := m.Called(ctx, deviceID, productID, quantity)
	return args.Get(0).(models.Cart)
}

func (m *MockCartService) RemoveItem(ctx context.Context, deviceID string, productID int64) models.Cart {
	args := m.Called(ctx, deviceID, productID)
	return args.Get(0).(models.Cart)
}

func (m *MockCartService) ClearCart(ctx context.Context, deviceID string) models.Cart {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(models.Cart)
}

type MockCheckoutService struct {
	mock.Mock
}

func NewMockCheckoutService(t mock.TestingT) *MockCheckoutService {
	m := &MockCheckoutService{}
	m.Mock.Test(t)
	return m
}

func (m *MockCheckoutService) Quote(ctx context.Context, deviceID string, req service.QuoteRequest) *service.Quote {
	args := m.Called(ctx, deviceID, req)
	return args.Get(0).(*service.Quote)
}

func (m *MockCheckoutService) PlaceOrder(ctx context.Context, deviceID string, req *models.CheckoutRequest) (*models.Order, error) {
	args := m.Called(ctx, deviceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService(t mock.TestingT) *MockOrderService {
	m := &MockOrderService{}
	m.Mock.Test(t)
	return m
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, userID, id int64) (*models.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest, actor string) (*models.Order, error) {
	args := m.Called(ctx, id, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, userID, id int64) (*models.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func NewMockRecommender(t mock.TestingT) *MockRecommender {
	m := &MockRecommender{}
	m.Mock.Test(t)
	return m
}

func (m *MockRecommender) Recommend(ctx context.Context, message string) (*models.Recommendation, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}
