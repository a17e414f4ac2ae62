package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/cart"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

// CartProvider hands out the cart of a device.
type CartProvider interface {
	Get(ctx context.Context, deviceID string) *cart.Store
}

type CartService interface {
	GetCart(ctx context.Context, deviceID string) models.Cart
	AddItem(ctx context.Context, deviceID string, productID int64) (models.Cart, error)
	UpdateQuantity(ctx context.Context, deviceID string, productID int64, quantity int) models.Cart
	RemoveItem(ctx context.Context, deviceID string, productID int64) models.Cart
	ClearCart(ctx context.Context, deviceID string) models.Cart
}

type cartService struct {
	carts    CartProvider
	products ProductService
}

func NewCartService(carts CartProvider, products ProductService) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) GetCart(ctx context.Context, deviceID string) models.Cart {
	return s.carts.Get(ctx, deviceID).Snapshot()
}

// AddItem looks the product up so the cart captures its current name, image
// and effective price. Unavailable products are refused.
func (s *cartService) AddItem(ctx context.Context, deviceID string, productID int64) (models.Cart, error) {

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return models.Cart{}, err
	}

	if !product.IsAvailable {
		return models.Cart{}, errors.BadRequestError("Product is not available")
	}

	store := s.carts.Get(ctx, deviceID)
	store.AddToCart(cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.EffectivePrice(),
		ImageRef:  product.ImageURL,
	})

	return store.Snapshot(), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, deviceID string, productID int64, quantity int) models.Cart {

	store := s.carts.Get(ctx, deviceID)
	store.UpdateQuantity(productID, quantity)

	return store.Snapshot()
}

func (s *cartService) RemoveItem(ctx context.Context, deviceID string, productID int64) models.Cart {

	store := s.carts.Get(ctx, deviceID)
	store.RemoveFromCart(productID)

	return store.Snapshot()
}

func (s *cartService) ClearCart(ctx context.Context, deviceID string) models.Cart {

	store := s.carts.Get(ctx, deviceID)
	store.ClearCart()

	return store.Snapshot()
}
