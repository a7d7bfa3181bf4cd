package app

import (
	"context"
	"time"

	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/usecase"
)

// StoreFacade aggregates the storefront use cases behind the surface the
// HTTP handlers and the sweeper consume.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	products *usecase.ProductUseCase
	carts    *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(
	auth *usecase.AuthUseCase,
	products *usecase.ProductUseCase,
	carts *usecase.CartUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
) *StoreFacade {
	return &StoreFacade{auth: auth, products: products, carts: carts, checkout: checkout, orders: orders}
}

func (f *StoreFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password, sessionID string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password, sessionID)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Products(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	return f.products.List(ctx, activeOnly)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StoreFacade) SetProductStock(ctx context.Context, id int64, stock int) error {
	return f.products.SetStock(ctx, id, stock)
}

func (f *StoreFacade) Cart(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	return f.carts.Get(ctx, owner)
}

func (f *StoreFacade) AddCartItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	return f.carts.AddItem(ctx, owner, productID, quantity)
}

func (f *StoreFacade) SetCartQuantity(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	return f.carts.SetQuantity(ctx, owner, productID, quantity)
}

func (f *StoreFacade) RemoveCartItem(ctx context.Context, owner model.CartOwner, productID int64) (*model.Cart, error) {
	return f.carts.RemoveItem(ctx, owner, productID)
}

func (f *StoreFacade) ClearCart(ctx context.Context, owner model.CartOwner) error {
	return f.carts.Clear(ctx, owner)
}

func (f *StoreFacade) CreateOrder(ctx context.Context, customerID int64, shippingAddress string) (*model.Order, error) {
	return f.checkout.CreateOrder(ctx, customerID, shippingAddress)
}

func (f *StoreFacade) InitiatePayment(ctx context.Context, customerID int64, orderID *int64, shippingAddress string, amount *int64) (*usecase.PaymentInitiation, error) {
	return f.checkout.InitiatePayment(ctx, customerID, orderID, shippingAddress, amount)
}

func (f *StoreFacade) ConfirmPayment(ctx context.Context, token string) (*usecase.ConfirmResult, error) {
	return f.checkout.ConfirmPayment(ctx, token)
}

func (f *StoreFacade) Refund(ctx context.Context, orderID, amount int64) (*model.GatewayRefundResponse, error) {
	return f.checkout.Refund(ctx, orderID, amount)
}

func (f *StoreFacade) ExpirePending(ttl time.Duration) int {
	return f.checkout.ExpirePending(ttl)
}

func (f *StoreFacade) Order(ctx context.Context, principal model.Principal, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, principal, orderID)
}

func (f *StoreFacade) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *StoreFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StoreFacade) OrderPayments(ctx context.Context, principal model.Principal, orderID int64) ([]model.Payment, error) {
	return f.orders.Payments(ctx, principal, orderID)
}

func (f *StoreFacade) UpdateFulfillment(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateFulfillment(ctx, orderID, to)
}
