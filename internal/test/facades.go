package test

import (
	"context"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	pkgAuth "github.com/sxtvrno/storefront/internal/pkg/auth"
	"github.com/sxtvrno/storefront/internal/usecase"
)

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Principal model.Principal
	Err       error
	ParseFn   func(string) (model.Principal, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Principal{}, s.Err
	}
	if s.Principal.UserID == 0 {
		return model.Principal{UserID: 1, Role: model.RoleCustomer}, nil
	}
	return s.Principal, nil
}

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string, string) (string, error)
	ParseFn        func(string) (model.Principal, error)
}

// Register delegates to provided function or returns a default token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return "token", nil
}

// Authenticate delegates to provided function or returns a default token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password, sessionID string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password, sessionID)
	}
	return "token", nil
}

// ParseToken delegates to override or accepts any token as customer 1.
func (s AuthFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return model.Principal{UserID: 1, Role: model.RoleCustomer}, nil
}

// ProductFacadeStub serves static catalog data.
type ProductFacadeStub struct {
	ProductsFn func(context.Context, bool) ([]model.Product, error)
	ProductFn  func(context.Context, int64) (*model.Product, error)
	SetStockFn func(context.Context, int64, int) error
}

// Products returns configured or default catalog.
func (s ProductFacadeStub) Products(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, activeOnly)
	}
	return []model.Product{{ID: 1, Name: "mug", Price: 500, Stock: 10, Active: true}}, nil
}

// Product returns configured or default product.
func (s ProductFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "mug", Price: 500, Stock: 10, Active: true}, nil
}

// SetProductStock delegates to override or succeeds.
func (s ProductFacadeStub) SetProductStock(ctx context.Context, id int64, stock int) error {
	if s.SetStockFn != nil {
		return s.SetStockFn(ctx, id, stock)
	}
	return nil
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	CartFn        func(context.Context, model.CartOwner) (*model.Cart, error)
	AddFn         func(context.Context, model.CartOwner, int64, int) (*model.Cart, error)
	SetQuantityFn func(context.Context, model.CartOwner, int64, int) (*model.Cart, error)
	RemoveFn      func(context.Context, model.CartOwner, int64) (*model.Cart, error)
	ClearFn       func(context.Context, model.CartOwner) error
}

func defaultCart() *model.Cart {
	return &model.Cart{ID: 1, Items: []model.CartItem{{ProductID: 1, Quantity: 2, LineTotal: 1000}}}
}

// Cart returns configured or default cart.
func (s CartFacadeStub) Cart(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, owner)
	}
	return defaultCart(), nil
}

// AddCartItem delegates to override or returns default cart.
func (s CartFacadeStub) AddCartItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, owner, productID, quantity)
	}
	return defaultCart(), nil
}

// SetCartQuantity delegates to override or returns default cart.
func (s CartFacadeStub) SetCartQuantity(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, owner, productID, quantity)
	}
	return defaultCart(), nil
}

// RemoveCartItem delegates to override or returns an empty cart.
func (s CartFacadeStub) RemoveCartItem(ctx context.Context, owner model.CartOwner, productID int64) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, owner, productID)
	}
	return &model.Cart{ID: 1}, nil
}

// ClearCart delegates to override or succeeds.
func (s CartFacadeStub) ClearCart(ctx context.Context, owner model.CartOwner) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, owner)
	}
	return nil
}

// CheckoutFacadeStub provides controllable behaviour for checkout endpoints.
type CheckoutFacadeStub struct {
	CreateOrderFn func(context.Context, int64, string) (*model.Order, error)
	InitiateFn    func(context.Context, int64, *int64, string, *int64) (*usecase.PaymentInitiation, error)
	ConfirmFn     func(context.Context, string) (*usecase.ConfirmResult, error)
	RefundFn      func(context.Context, int64, int64) (*model.GatewayRefundResponse, error)
}

// CreateOrder delegates to override or returns a fresh order.
func (s CheckoutFacadeStub) CreateOrder(ctx context.Context, customerID int64, shippingAddress string) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, customerID, shippingAddress)
	}
	return &model.Order{ID: 1, CustomerID: customerID, ShippingAddress: shippingAddress, Total: 1000, Status: model.OrderStatusCreated}, nil
}

// InitiatePayment delegates to override or returns redirect data.
func (s CheckoutFacadeStub) InitiatePayment(ctx context.Context, customerID int64, orderID *int64, shippingAddress string, amount *int64) (*usecase.PaymentInitiation, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, customerID, orderID, shippingAddress, amount)
	}
	return &usecase.PaymentInitiation{OrderID: 1, Token: "tok-1", URL: "https://gateway.test/pay"}, nil
}

// ConfirmPayment delegates to override or reports success.
func (s CheckoutFacadeStub) ConfirmPayment(ctx context.Context, token string) (*usecase.ConfirmResult, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, token)
	}
	return &usecase.ConfirmResult{
		Status:  usecase.ConfirmStatusSuccess,
		Order:   &model.Order{ID: 1, CustomerID: 1, Total: 1000, Status: model.OrderStatusPaid},
		Payment: &model.Payment{ID: 1, OrderID: 1, Amount: 1000, Status: model.PaymentStatusAuthorized, AuthorizationCode: "1213"},
		Amount:  1000,
	}, nil
}

// Refund delegates to override or nullifies the full amount.
func (s CheckoutFacadeStub) Refund(ctx context.Context, orderID, amount int64) (*model.GatewayRefundResponse, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, orderID, amount)
	}
	return &model.GatewayRefundResponse{Type: "REVERSED", NullifiedAmount: amount}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrderFn       func(context.Context, model.Principal, int64) (*model.Order, error)
	OrdersFn      func(context.Context, int64) ([]model.Order, error)
	AllOrdersFn   func(context.Context) ([]model.Order, error)
	PaymentsFn    func(context.Context, model.Principal, int64) ([]model.Payment, error)
	FulfillmentFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)
}

// Order returns configured or default order.
func (s OrderFacadeStub) Order(ctx context.Context, principal model.Principal, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, principal, orderID)
	}
	if orderID == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Order{ID: orderID, CustomerID: principal.UserID, Total: 1000, Status: model.OrderStatusPaid}, nil
}

// Orders returns configured or default listing.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []model.Order{{ID: 1, CustomerID: customerID, Total: 1000, Status: model.OrderStatusPaid}}, nil
}

// AllOrders returns configured or default listing.
func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: 1, CustomerID: 1, Total: 1000, Status: model.OrderStatusPaid}}, nil
}

// OrderPayments returns configured or default history.
func (s OrderFacadeStub) OrderPayments(ctx context.Context, principal model.Principal, orderID int64) ([]model.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, principal, orderID)
	}
	return []model.Payment{{ID: 1, OrderID: orderID, Amount: 1000, Status: model.PaymentStatusAuthorized}}, nil
}

// UpdateFulfillment delegates to override or applies the target status.
func (s OrderFacadeStub) UpdateFulfillment(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	if s.FulfillmentFn != nil {
		return s.FulfillmentFn(ctx, orderID, to)
	}
	return &model.Order{ID: orderID, CustomerID: 1, Total: 1000, Status: to}, nil
}

// StoreFacadeStub aggregates the facade stubs for router-level tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	ProductFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	OrderFacadeStub
}
