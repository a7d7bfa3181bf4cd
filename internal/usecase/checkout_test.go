package usecase_test

import (
	. "github.com/sxtvrno/storefront/internal/usecase"

	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/pending"
	testhelpers "github.com/sxtvrno/storefront/internal/test"
)

type checkoutEnv struct {
	uc       *CheckoutUseCase
	orders   *testhelpers.OrderRepositoryStub
	carts    *testhelpers.CartRepositoryStub
	products *testhelpers.ProductRepositoryStub
	payments *testhelpers.PaymentRepositoryStub
	gateway  *testhelpers.GatewayStub
	registry *pending.Registry
	notifier *testhelpers.NotifierStub
}

func newCheckoutEnv() *checkoutEnv {
	env := &checkoutEnv{
		orders:   testhelpers.NewOrderRepositoryStub(),
		carts:    testhelpers.NewCartRepositoryStub(),
		products: newCatalog(),
		payments: &testhelpers.PaymentRepositoryStub{Payments: map[int64][]model.Payment{}},
		gateway:  &testhelpers.GatewayStub{},
		registry: pending.NewRegistry(),
		notifier: &testhelpers.NotifierStub{Done: make(chan struct{}, 1)},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.uc = NewCheckoutUseCase(env.orders, env.carts, env.products, env.payments, env.gateway, env.registry, env.notifier, "https://shop.test/payment/return", logger)
	return env
}

func (env *checkoutEnv) seedCart(t *testing.T, customerID int64) {
	t.Helper()
	ctx := context.Background()
	owner := model.CustomerOwner(customerID)
	if _, err := env.carts.GetOrCreate(ctx, owner); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if err := env.carts.SetItem(ctx, owner, 1, 2, 999); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	if err := env.carts.SetItem(ctx, owner, 2, 1, 999); err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func TestCreateOrderSnapshotsCurrentPrices(t *testing.T) {
	env := newCheckoutEnv()
	env.seedCart(t, 1)

	order, err := env.uc.CreateOrder(context.Background(), 1, "742 Evergreen Terrace")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	// 2 * 500 + 1 * 1500, ignoring the stale cached cart totals.
	if order.Total != 2500 {
		t.Fatalf("expected total 2500, got %d", order.Total)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Lines))
	}
	if order.Status != model.OrderStatusCreated {
		t.Fatalf("expected CREATED, got %s", order.Status)
	}
	for _, line := range order.Lines {
		if line.UnitPrice != env.products.Products[line.ProductID].Price {
			t.Fatalf("line %d not repriced at catalog price", line.ProductID)
		}
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	env := newCheckoutEnv()

	if _, err := env.uc.CreateOrder(context.Background(), 1, ""); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for absent cart, got %v", err)
	}

	owner := model.CustomerOwner(1)
	if _, err := env.carts.GetOrCreate(context.Background(), owner); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := env.uc.CreateOrder(context.Background(), 1, ""); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for empty cart, got %v", err)
	}
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	env := newCheckoutEnv()
	ctx := context.Background()
	owner := model.CustomerOwner(1)
	if _, err := env.carts.GetOrCreate(ctx, owner); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := env.carts.SetItem(ctx, owner, 3, 1, 100); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := env.uc.CreateOrder(ctx, 1, ""); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestInitiatePaymentFromCart(t *testing.T) {
	env := newCheckoutEnv()
	env.seedCart(t, 1)

	initiation, err := env.uc.InitiatePayment(context.Background(), 1, nil, "pickup point", nil)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if initiation.Token == "" || initiation.URL == "" {
		t.Fatalf("expected redirect data, got %+v", initiation)
	}
	if env.registry.Len() != 1 {
		t.Fatalf("expected pending entry, registry has %d", env.registry.Len())
	}
	if len(env.gateway.CreateCalls) != 1 {
		t.Fatalf("expected one gateway create, got %d", len(env.gateway.CreateCalls))
	}
	call := env.gateway.CreateCalls[0]
	if call.Amount != 2500 {
		t.Fatalf("gateway amount %d, want 2500", call.Amount)
	}
	if len(call.BuyOrder) > BuyOrderMaxLen {
		t.Fatalf("buy order %q too long", call.BuyOrder)
	}
	if call.ReturnURL != "https://shop.test/payment/return" {
		t.Fatalf("unexpected return url %q", call.ReturnURL)
	}
}

func TestInitiatePaymentExistingOrder(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 10, CustomerID: 1, Total: 700, Status: model.OrderStatusCreated})

	orderID := int64(10)
	initiation, err := env.uc.InitiatePayment(context.Background(), 1, &orderID, "", nil)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if initiation.OrderID != 10 {
		t.Fatalf("expected order 10, got %d", initiation.OrderID)
	}
	entry, ok := env.registry.Take(initiation.Token)
	if !ok {
		t.Fatalf("expected registry entry for token")
	}
	if entry.OrderID != 10 || entry.Amount != 700 || entry.CustomerID != 1 {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestInitiatePaymentGuards(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 11, CustomerID: 2, Total: 700, Status: model.OrderStatusCreated})
	env.orders.Put(&model.Order{ID: 12, CustomerID: 1, Total: 700, Status: model.OrderStatusPaid})
	env.orders.Put(&model.Order{ID: 13, CustomerID: 1, Total: 700, Status: model.OrderStatusCreated})
	ctx := context.Background()

	otherCustomers := int64(11)
	if _, err := env.uc.InitiatePayment(ctx, 1, &otherCustomers, "", nil); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	alreadyPaid := int64(12)
	if _, err := env.uc.InitiatePayment(ctx, 1, &alreadyPaid, "", nil); !errors.Is(err, domainErrors.ErrOrderNotPayable) {
		t.Fatalf("expected ErrOrderNotPayable, got %v", err)
	}

	mismatched := int64(13)
	wrongAmount := int64(9999)
	if _, err := env.uc.InitiatePayment(ctx, 1, &mismatched, "", &wrongAmount); !errors.Is(err, domainErrors.ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}

	missing := int64(404)
	if _, err := env.uc.InitiatePayment(ctx, 1, &missing, "", nil); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInitiatePaymentGatewayDown(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 20, CustomerID: 1, Total: 100, Status: model.OrderStatusCreated})
	env.gateway.CreateFn = func(context.Context, string, string, int64, string) (*model.GatewayCreateResponse, error) {
		return nil, errors.New("connection refused")
	}

	orderID := int64(20)
	if _, err := env.uc.InitiatePayment(context.Background(), 1, &orderID, "", nil); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if env.registry.Len() != 0 {
		t.Fatalf("failed initiation must not leave a pending entry")
	}
	order, _ := env.orders.GetByID(context.Background(), 20)
	if order.Status != model.OrderStatusCreated {
		t.Fatalf("order must stay CREATED, got %s", order.Status)
	}
}

func (env *checkoutEnv) initiate(t *testing.T, orderID int64) *PaymentInitiation {
	t.Helper()
	initiation, err := env.uc.InitiatePayment(context.Background(), 1, &orderID, "", nil)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	return initiation
}

func waitNotified(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("receipt notification never fired")
	}
}

func TestConfirmPaymentSuccess(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 30, CustomerID: 1, Total: 2500, Status: model.OrderStatusCreated})
	initiation := env.initiate(t, 30)

	env.gateway.CommitFn = func(_ context.Context, token string) (*model.GatewayCommitResponse, error) {
		return &model.GatewayCommitResponse{
			Status:            model.GatewayStatusAuthorized,
			BuyOrder:          env.gateway.CreateCalls[0].BuyOrder,
			Amount:            2500,
			AuthorizationCode: "1213",
		}, nil
	}

	result, err := env.uc.ConfirmPayment(context.Background(), initiation.Token)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if result.Status != ConfirmStatusSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	if result.AlreadyPaid {
		t.Fatalf("first confirmation must not be flagged as duplicate")
	}
	if result.Order.Status != model.OrderStatusPaid {
		t.Fatalf("order status %s, want PAID", result.Order.Status)
	}
	if len(env.orders.PaidCalls) != 1 {
		t.Fatalf("expected one MarkPaid, got %d", len(env.orders.PaidCalls))
	}
	paid := env.orders.PaidCalls[0]
	if paid.Payment.Amount != 2500 || paid.Payment.AuthorizationCode != "1213" {
		t.Fatalf("unexpected payment %+v", paid.Payment)
	}
	if result.Amount != 2500 {
		t.Fatalf("summary amount %d, want 2500", result.Amount)
	}
	if result.Payment == nil || result.Payment.AuthorizationCode != "1213" {
		t.Fatalf("summary must carry the settled payment, got %+v", result.Payment)
	}
	if env.registry.Len() != 0 {
		t.Fatalf("entry must be consumed")
	}
	waitNotified(t, env.notifier.Done)
}

func TestConfirmPaymentDuplicateToken(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 31, CustomerID: 1, Total: 500, Status: model.OrderStatusCreated})
	initiation := env.initiate(t, 31)

	buyOrder := env.gateway.CreateCalls[0].BuyOrder
	env.gateway.CommitFn = func(context.Context, string) (*model.GatewayCommitResponse, error) {
		return &model.GatewayCommitResponse{Status: model.GatewayStatusAuthorized, BuyOrder: buyOrder, Amount: 500}, nil
	}

	ctx := context.Background()
	first, err := env.uc.ConfirmPayment(ctx, initiation.Token)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if first.AlreadyPaid {
		t.Fatalf("first confirm flagged as duplicate")
	}
	waitNotified(t, env.notifier.Done)

	second, err := env.uc.ConfirmPayment(ctx, initiation.Token)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if second.Status != ConfirmStatusSuccess {
		t.Fatalf("duplicate must still report success, got %s", second.Status)
	}
	if !second.AlreadyPaid {
		t.Fatalf("duplicate must be flagged")
	}
	if len(env.orders.PaidCalls) != 1 {
		t.Fatalf("stock-decrementing MarkPaid ran %d times, want exactly once", len(env.orders.PaidCalls))
	}
	if env.notifier.CallCount() != 1 {
		t.Fatalf("duplicate confirmation must not re-notify, got %d calls", env.notifier.CallCount())
	}
}

func TestConfirmPaymentRejected(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 32, CustomerID: 1, Total: 500, Status: model.OrderStatusCreated})
	initiation := env.initiate(t, 32)

	env.gateway.CommitFn = func(context.Context, string) (*model.GatewayCommitResponse, error) {
		return &model.GatewayCommitResponse{Status: "FAILED", BuyOrder: env.gateway.CreateCalls[0].BuyOrder, ResponseCode: -1}, nil
	}

	result, err := env.uc.ConfirmPayment(context.Background(), initiation.Token)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if result.Status != ConfirmStatusRejected {
		t.Fatalf("expected rejected, got %s", result.Status)
	}
	if result.Order.Status != model.OrderStatusCancelled {
		t.Fatalf("order status %s, want CANCELLED", result.Order.Status)
	}
	if len(env.orders.PaidCalls) != 0 {
		t.Fatalf("rejected payment must not mark paid")
	}
	if env.notifier.CallCount() != 0 {
		t.Fatalf("rejected payment must not notify")
	}
}

func TestConfirmPaymentSettleFailure(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 35, CustomerID: 1, Total: 500, Status: model.OrderStatusCreated})
	initiation := env.initiate(t, 35)

	buyOrder := env.gateway.CreateCalls[0].BuyOrder
	env.gateway.CommitFn = func(context.Context, string) (*model.GatewayCommitResponse, error) {
		return &model.GatewayCommitResponse{Status: model.GatewayStatusAuthorized, BuyOrder: buyOrder, Amount: 500}, nil
	}
	env.orders.MarkPaidFn = func(context.Context, int64, model.Payment) (bool, error) {
		return false, errors.New("connection reset")
	}

	_, err := env.uc.ConfirmPayment(context.Background(), initiation.Token)
	if !errors.Is(err, domainErrors.ErrConfirmationFailed) {
		t.Fatalf("a settlement write failure must surface as a confirmation failure, got %v", err)
	}
	if env.notifier.CallCount() != 0 {
		t.Fatalf("failed settlement must not notify")
	}
}

func TestConfirmPaymentUntrackedTokenFallsBackToBuyOrder(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 33, CustomerID: 1, Total: 500, Status: model.OrderStatusCreated})

	env.gateway.CommitFn = func(context.Context, string) (*model.GatewayCommitResponse, error) {
		return &model.GatewayCommitResponse{Status: model.GatewayStatusAuthorized, BuyOrder: "O33-beef", Amount: 500}, nil
	}

	result, err := env.uc.ConfirmPayment(context.Background(), "tok-after-restart")
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if result.Status != ConfirmStatusSuccess {
		t.Fatalf("expected success via fallback, got %s", result.Status)
	}
	if result.Order.ID != 33 {
		t.Fatalf("resolved order %d, want 33", result.Order.ID)
	}
}

func TestConfirmPaymentUnresolvableToken(t *testing.T) {
	env := newCheckoutEnv()
	env.gateway.CommitFn = func(context.Context, string) (*model.GatewayCommitResponse, error) {
		return &model.GatewayCommitResponse{Status: model.GatewayStatusAuthorized, BuyOrder: "garbage"}, nil
	}

	if _, err := env.uc.ConfirmPayment(context.Background(), "tok-unknown"); !errors.Is(err, domainErrors.ErrOrderNotResolved) {
		t.Fatalf("expected ErrOrderNotResolved, got %v", err)
	}
}

func TestConfirmPaymentCommitFailureConsumesEntry(t *testing.T) {
	env := newCheckoutEnv()
	env.orders.Put(&model.Order{ID: 34, CustomerID: 1, Total: 500, Status: model.OrderStatusCreated})
	initiation := env.initiate(t, 34)

	env.gateway.CommitFn = func(context.Context, string) (*model.GatewayCommitResponse, error) {
		return nil, errors.New("timeout")
	}

	if _, err := env.uc.ConfirmPayment(context.Background(), initiation.Token); !errors.Is(err, domainErrors.ErrConfirmationFailed) {
		t.Fatalf("expected ErrConfirmationFailed, got %v", err)
	}
	if env.registry.Len() != 0 {
		t.Fatalf("entry must be consumed even on commit failure")
	}
	order, _ := env.orders.GetByID(context.Background(), 34)
	if order.Status != model.OrderStatusCreated {
		t.Fatalf("order must stay CREATED after failed commit, got %s", order.Status)
	}
}

func TestRefund(t *testing.T) {
	env := newCheckoutEnv()
	env.payments.Payments[40] = []model.Payment{{ID: 7, OrderID: 40, Token: "tok-40", Amount: 1000, Status: model.PaymentStatusAuthorized}}

	resp, err := env.uc.Refund(context.Background(), 40, 1000)
	if err != nil {
		t.Fatalf("refund returned error: %v", err)
	}
	if resp.NullifiedAmount != 1000 {
		t.Fatalf("unexpected refund response %+v", resp)
	}
	if len(env.gateway.RefundCalls) != 1 || env.gateway.RefundCalls[0].Token != "tok-40" {
		t.Fatalf("gateway refund not called with stored token")
	}
	if len(env.payments.RefundedCalls) != 1 || env.payments.RefundedCalls[0] != 7 {
		t.Fatalf("payment not marked refunded")
	}
}

func TestRefundValidation(t *testing.T) {
	env := newCheckoutEnv()
	env.payments.Payments[41] = []model.Payment{{ID: 8, OrderID: 41, Token: "tok-41", Amount: 500, Status: model.PaymentStatusAuthorized}}
	ctx := context.Background()

	if _, err := env.uc.Refund(ctx, 41, 0); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := env.uc.Refund(ctx, 41, 501); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount above payment amount, got %v", err)
	}
	if _, err := env.uc.Refund(ctx, 99, 100); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unpaid order, got %v", err)
	}
}

func TestExpirePending(t *testing.T) {
	env := newCheckoutEnv()
	env.registry.Put("tok-old", pending.Entry{OrderID: 1, CreatedAt: time.Now().Add(-time.Hour)})
	env.registry.Put("tok-new", pending.Entry{OrderID: 2})

	if n := env.uc.ExpirePending(15 * time.Minute); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if env.registry.Len() != 1 {
		t.Fatalf("fresh entry must survive, registry has %d", env.registry.Len())
	}
	if _, ok := env.registry.Take("tok-new"); !ok {
		t.Fatalf("fresh entry missing")
	}
}
