package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// OrderPlacer runs a guarded checkout attempt for one cart.
type OrderPlacer interface {
	Checkout(ctx context.Context, cartID string, cart checkout.Cart, sel checkout.Selection) (*models.Order, error)
}

// QuoteRequest carries the optional choices of the checkout screen.
type QuoteRequest struct {
	AddressID         *int64
	DiscountVoucherID *int64
	ShippingVoucherID *int64
}

type VoucherOption struct {
	models.Voucher
	Eligible bool `json:"eligible"`
}

type Quote struct {
	Cart             models.Cart      `json:"cart"`
	Authenticated    bool             `json:"authenticated"`
	Address          *models.Address  `json:"address"`
	Addresses        []models.Address `json:"addresses"`
	DiscountVouchers []VoucherOption  `json:"discount_vouchers"`
	ShippingVouchers []VoucherOption  `json:"shipping_vouchers"`
	DiscountVoucher  *models.Voucher  `json:"discount_voucher,omitempty"`
	ShippingVoucher  *models.Voucher  `json:"shipping_voucher,omitempty"`
	Totals           checkout.Totals  `json:"totals"`
}

type CheckoutService interface {
	Quote(ctx context.Context, deviceID string, req QuoteRequest) *Quote
	PlaceOrder(ctx context.Context, deviceID string, req *models.CheckoutRequest) (*models.Order, error)
}

type checkoutService struct {
	carts     CartProvider
	sessions  SessionStore
	addresses repository.AddressRepository
	vouchers  repository.VoucherRepository
	placer    OrderPlacer
	cfg       config.Checkout
	logger    *slog.Logger
}

func NewCheckoutService(
	carts CartProvider,
	sessions SessionStore,
	addresses repository.AddressRepository,
	vouchers repository.VoucherRepository,
	placer OrderPlacer,
	cfg config.Checkout,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutService{
		carts:     carts,
		sessions:  sessions,
		addresses: addresses,
		vouchers:  vouchers,
		placer:    placer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Quote prices the cart with the chosen or default address and vouchers. A
// signed-out device still gets cart totals with no addresses or vouchers.
func (s *checkoutService) Quote(ctx context.Context, deviceID string, req QuoteRequest) *Quote {

	snapshot := s.carts.Get(ctx, deviceID).Snapshot()

	user, err := s.sessions.Current(ctx, deviceID)
	if err != nil {
		s.logger.Warn("Failed to read session for quote", slog.String("device_id", deviceID), slog.Any("error", err))
	}

	addresses, vouchers := s.fetchCustomerData(ctx, user)
	discountVouchers, shippingVouchers := checkout.PartitionVouchers(vouchers)

	subtotal := checkout.Subtotal(snapshot.Items)
	discount := findVoucher(discountVouchers, req.DiscountVoucherID)
	shipping := findVoucher(shippingVouchers, req.ShippingVoucherID)

	return &Quote{
		Cart:             snapshot,
		Authenticated:    user != nil,
		Address:          resolveAddress(addresses, req.AddressID),
		Addresses:        addresses,
		DiscountVouchers: voucherOptions(discountVouchers, subtotal),
		ShippingVouchers: voucherOptions(shippingVouchers, subtotal),
		DiscountVoucher:  discount,
		ShippingVoucher:  shipping,
		Totals:           checkout.ComputeTotals(subtotal, s.cfg.ShippingFeeAmount(), discount, shipping),
	}
}

// PlaceOrder resolves the request against the customer's addresses and
// vouchers and hands it to the engine. An empty cart or a signed-out device
// fails before any record store call.
func (s *checkoutService) PlaceOrder(ctx context.Context, deviceID string, req *models.CheckoutRequest) (*models.Order, error) {

	store := s.carts.Get(ctx, deviceID)
	sel := checkout.Selection{
		PaymentMethod: req.PaymentMethod,
		Note:          utils.PlainText(req.Note),
	}

	if len(store.Items()) == 0 {
		return s.placer.Checkout(ctx, deviceID, store, sel)
	}

	user, err := s.sessions.Current(ctx, deviceID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to read session").WithError(err)
	}

	if user != nil {
		addresses, vouchers := s.fetchCustomerData(ctx, user)
		discountVouchers, shippingVouchers := checkout.PartitionVouchers(vouchers)

		sel.User = user
		sel.Address = resolveAddress(addresses, req.AddressID)
		sel.DiscountVoucher = findVoucher(discountVouchers, req.DiscountVoucherID)
		sel.ShippingVoucher = findVoucher(shippingVouchers, req.ShippingVoucherID)

		if req.DiscountVoucherID != nil && sel.DiscountVoucher == nil {
			s.logger.Warn("Discount voucher not available", slog.Int64("voucher_id", *req.DiscountVoucherID))
		}
		if req.ShippingVoucherID != nil && sel.ShippingVoucher == nil {
			s.logger.Warn("Shipping voucher not available", slog.Int64("voucher_id", *req.ShippingVoucherID))
		}
	}

	return s.placer.Checkout(ctx, deviceID, store, sel)
}

// fetchCustomerData loads addresses and vouchers concurrently. A failed fetch
// is logged and leaves its list empty.
func (s *checkoutService) fetchCustomerData(ctx context.Context, user *models.User) ([]models.Address, []models.Voucher) {

	if user == nil {
		return []models.Address{}, []models.Voucher{}
	}

	ctx, cancel := utils.WithFetchTimeout(ctx)
	defer cancel()

	addresses := []models.Address{}
	vouchers := []models.Voucher{}

	var g errgroup.Group

	g.Go(func() error {
		fetched, err := s.addresses.ListByUser(ctx, user.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch addresses", slog.Int64("user_id", user.ID), slog.Any("error", err))
			return nil
		}
		addresses = fetched
		return nil
	})

	g.Go(func() error {
		fetched, err := s.vouchers.ListAvailableByUser(ctx, user.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch vouchers", slog.Int64("user_id", user.ID), slog.Any("error", err))
			return nil
		}
		vouchers = fetched
		return nil
	})

	_ = g.Wait()

	return addresses, vouchers
}

// resolveAddress returns the address with id, or the default one when id is
// nil. An id that is not among the user's addresses resolves to nothing.
func resolveAddress(addresses []models.Address, id *int64) *models.Address {

	if id == nil {
		address, ok := checkout.SelectDefaultAddress(addresses)
		if !ok {
			return nil
		}
		return &address
	}

	for i := range addresses {
		if addresses[i].ID == *id {
			address := addresses[i]
			return &address
		}
	}

	return nil
}

func findVoucher(vouchers []models.Voucher, id *int64) *models.Voucher {

	if id == nil {
		return nil
	}

	for i := range vouchers {
		if vouchers[i].ID == *id {
			v := vouchers[i]
			return &v
		}
	}

	return nil
}

func voucherOptions(vouchers []models.Voucher, subtotal decimal.Decimal) []VoucherOption {

	options := make([]VoucherOption, 0, len(vouchers))
	for _, v := range vouchers {
		options = append(options, VoucherOption{Voucher: v, Eligible: checkout.IsVoucherEligible(v, subtotal)})
	}

	return options
}
