package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/domain/repository"
	"github.com/sxtvrno/storefront/internal/notify"
	"github.com/sxtvrno/storefront/internal/pending"
)

// PaymentGateway is the remote card gateway as seen by the checkout flow.
type PaymentGateway interface {
	Create(ctx context.Context, buyOrder, sessionID string, amount int64, returnURL string) (*model.GatewayCreateResponse, error)
	Commit(ctx context.Context, token string) (*model.GatewayCommitResponse, error)
	Refund(ctx context.Context, token string, amount int64) (*model.GatewayRefundResponse, error)
}

// PaymentInitiation is handed back to the client for the gateway redirect.
type PaymentInitiation struct {
	OrderID int64
	Token   string
	URL     string
}

// Confirmation outcomes.
const (
	ConfirmStatusSuccess  = "success"
	ConfirmStatusRejected = "rejected"
)

// ConfirmResult reports the outcome of a redirect-back confirmation.
type ConfirmResult struct {
	Status       string
	Order        *model.Order
	Payment      *model.Payment
	Amount       int64
	ResponseCode int
	// AlreadyPaid is set when the confirmation was a retry for an order
	// that had already been settled.
	AlreadyPaid bool
}

// CheckoutUseCase drives the order lifecycle: cart to order, order to the
// gateway, and the redirect-back settlement that must decrement stock at
// most once per order.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	products  repository.ProductRepository
	payments  repository.PaymentRepository
	gateway   PaymentGateway
	registry  *pending.Registry
	notifier  notify.ReceiptNotifier
	returnURL string
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	payments repository.PaymentRepository,
	gateway PaymentGateway,
	registry *pending.Registry,
	notifier notify.ReceiptNotifier,
	returnURL string,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:    orders,
		carts:     carts,
		products:  products,
		payments:  payments,
		gateway:   gateway,
		registry:  registry,
		notifier:  notifier,
		returnURL: returnURL,
		logger:    logger,
	}
}

// CreateOrder snapshots the customer's cart into an immutable order. Lines
// are repriced at the current catalog price; the cached cart totals are
// display data only. The cart is cleared in the same transaction that writes
// the order.
func (u *CheckoutUseCase) CreateOrder(ctx context.Context, customerID int64, shippingAddress string) (*model.Order, error) {
	owner := model.CustomerOwner(customerID)

	cart, err := u.carts.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	lines := make([]model.OrderLine, 0, len(cart.Items))
	var total int64
	for _, item := range cart.Items {
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrProductUnavailable
			}
			return nil, err
		}
		if !product.Active {
			return nil, domainErrors.ErrProductUnavailable
		}
		line := model.OrderLine{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		lines = append(lines, line)
		total += line.Subtotal()
	}

	order := &model.Order{
		CustomerID:      customerID,
		ShippingAddress: shippingAddress,
		Total:           total,
		Status:          model.OrderStatusCreated,
		Lines:           lines,
	}
	return u.orders.CreateWithLines(ctx, order, owner)
}

// InitiatePayment opens a gateway transaction for an order. When orderID is
// nil the customer's cart is turned into an order first. The expectedAmount,
// when provided, must match the order total recorded at creation time.
func (u *CheckoutUseCase) InitiatePayment(ctx context.Context, customerID int64, orderID *int64, shippingAddress string, expectedAmount *int64) (*PaymentInitiation, error) {
	var order *model.Order
	var err error

	if orderID == nil {
		order, err = u.CreateOrder(ctx, customerID, shippingAddress)
		if err != nil {
			return nil, err
		}
	} else {
		order, err = u.orders.GetByID(ctx, *orderID)
		if err != nil {
			return nil, err
		}
		if order.CustomerID != customerID {
			return nil, domainErrors.ErrForbidden
		}
		if order.Status != model.OrderStatusCreated {
			return nil, domainErrors.ErrOrderNotPayable
		}
	}

	if expectedAmount != nil && *expectedAmount != order.Total {
		return nil, domainErrors.ErrAmountMismatch
	}

	buyOrder := NewBuyOrder(order.ID)
	sessionID := fmt.Sprintf("S%d", order.CustomerID)

	created, err := u.gateway.Create(ctx, buyOrder, sessionID, order.Total, u.returnURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}

	u.registry.Put(created.Token, pending.Entry{
		OrderID:    order.ID,
		BuyOrder:   buyOrder,
		Amount:     order.Total,
		CustomerID: order.CustomerID,
	})

	return &PaymentInitiation{OrderID: order.ID, Token: created.Token, URL: created.URL}, nil
}

// ConfirmPayment settles a gateway transaction after the customer is
// redirected back with its token. The pending entry is consumed before the
// commit call and never reinserted, so each token is confirmed at most once
// from this process; retries and unknown tokens fall back to the buy-order
// embedded in the gateway's response.
func (u *CheckoutUseCase) ConfirmPayment(ctx context.Context, token string) (*ConfirmResult, error) {
	entry, tracked := u.registry.Take(token)

	resp, err := u.gateway.Commit(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrConfirmationFailed, err)
	}

	orderID := entry.OrderID
	if !tracked {
		parsed, ok := ParseBuyOrder(resp.BuyOrder)
		if !ok {
			return nil, domainErrors.ErrOrderNotResolved
		}
		orderID = parsed
	}

	if !resp.Authorized() {
		if _, err := u.orders.MarkCancelled(ctx, orderID); err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrConfirmationFailed, err)
		}
		order, err := u.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrConfirmationFailed, err)
		}
		return &ConfirmResult{
			Status:       ConfirmStatusRejected,
			Order:        order,
			Amount:       resp.Amount,
			ResponseCode: resp.ResponseCode,
		}, nil
	}

	payment := model.Payment{
		OrderID:           orderID,
		Token:             token,
		BuyOrder:          resp.BuyOrder,
		Amount:            resp.Amount,
		Status:            model.PaymentStatusAuthorized,
		AuthorizationCode: resp.AuthorizationCode,
	}

	applied, err := u.orders.MarkPaid(ctx, orderID, payment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrConfirmationFailed, err)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrConfirmationFailed, err)
	}

	result := &ConfirmResult{
		Status:       ConfirmStatusSuccess,
		Order:        order,
		Amount:       resp.Amount,
		ResponseCode: resp.ResponseCode,
		AlreadyPaid:  !applied,
	}

	// Retried confirmations report the original settlement, so the summary
	// carries the stored payment either way.
	if stored, perr := u.payments.GetAuthorizedByOrder(ctx, orderID); perr == nil {
		result.Payment = stored
	} else if applied {
		result.Payment = &payment
	}

	if applied {
		go u.notifier.PaymentConfirmed(context.WithoutCancel(ctx), order, result.Payment)
	} else {
		u.logger.Info("duplicate payment confirmation ignored",
			slog.Int64("order_id", orderID),
			slog.String("token", token),
		)
	}

	return result, nil
}

// Refund nullifies an order's authorized payment at the gateway and records
// it locally. The order keeps its status; stock is not restored.
func (u *CheckoutUseCase) Refund(ctx context.Context, orderID, amount int64) (*model.GatewayRefundResponse, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	payment, err := u.payments.GetAuthorizedByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if amount > payment.Amount {
		return nil, domainErrors.ErrInvalidAmount
	}

	resp, err := u.gateway.Refund(ctx, payment.Token, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}

	if err := u.payments.MarkRefunded(ctx, payment.ID); err != nil {
		return nil, err
	}

	u.logger.Info("payment refunded",
		slog.Int64("order_id", orderID),
		slog.Int64("amount", amount),
		slog.String("refund_type", resp.Type),
	)
	return resp, nil
}

// ExpirePending drops pending gateway transactions older than ttl and
// returns how many were evicted. Their orders stay CREATED; a late redirect
// is still honored through the buy-order fallback.
func (u *CheckoutUseCase) ExpirePending(ttl time.Duration) int {
	expired := u.registry.TakeExpired(ttl)
	for _, entry := range expired {
		u.logger.Info("pending payment expired",
			slog.Int64("order_id", entry.OrderID),
			slog.String("buy_order", entry.BuyOrder),
			slog.Int64("amount", entry.Amount),
		)
	}
	return len(expired)
}
