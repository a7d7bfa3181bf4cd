package handlers

import (
	"context"

	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password, sessionID string) (string, error)
	ParseToken(token string) (model.Principal, error)
}

// ProductFacade exposes catalog reads and stock administration.
type ProductFacade interface {
	Products(ctx context.Context, activeOnly bool) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	SetProductStock(ctx context.Context, id int64, stock int) error
}

// CartFacade exposes cart operations for both anonymous and authenticated
// owners.
type CartFacade interface {
	Cart(ctx context.Context, owner model.CartOwner) (*model.Cart, error)
	AddCartItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error)
	SetCartQuantity(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, owner model.CartOwner, productID int64) (*model.Cart, error)
	ClearCart(ctx context.Context, owner model.CartOwner) error
}

// CheckoutFacade drives order creation and the gateway payment flow.
type CheckoutFacade interface {
	CreateOrder(ctx context.Context, customerID int64, shippingAddress string) (*model.Order, error)
	InitiatePayment(ctx context.Context, customerID int64, orderID *int64, shippingAddress string, amount *int64) (*usecase.PaymentInitiation, error)
	ConfirmPayment(ctx context.Context, token string) (*usecase.ConfirmResult, error)
	Refund(ctx context.Context, orderID, amount int64) (*model.GatewayRefundResponse, error)
}

// OrderFacade exposes order reads and fulfillment transitions.
type OrderFacade interface {
	Order(ctx context.Context, principal model.Principal, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, customerID int64) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	OrderPayments(ctx context.Context, principal model.Principal, orderID int64) ([]model.Payment, error)
	UpdateFulfillment(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	ProductFacade
	CartFacade
	CheckoutFacade
	OrderFacade
}
