package test

import (
	"context"
	"sync"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// GatewayStub simulates the remote card gateway via function overrides.
type GatewayStub struct {
	CreateFn func(context.Context, string, string, int64, string) (*model.GatewayCreateResponse, error)
	CommitFn func(context.Context, string) (*model.GatewayCommitResponse, error)
	RefundFn func(context.Context, string, int64) (*model.GatewayRefundResponse, error)

	mu          sync.Mutex
	CreateCalls []GatewayCreateCall
	CommitCalls []string
	RefundCalls []GatewayRefundCall
}

// GatewayCreateCall records one Create invocation.
type GatewayCreateCall struct {
	BuyOrder  string
	SessionID string
	Amount    int64
	ReturnURL string
}

// GatewayRefundCall records one Refund invocation.
type GatewayRefundCall struct {
	Token  string
	Amount int64
}

// Create delegates to the override or returns a deterministic token.
func (s *GatewayStub) Create(ctx context.Context, buyOrder, sessionID string, amount int64, returnURL string) (*model.GatewayCreateResponse, error) {
	s.mu.Lock()
	s.CreateCalls = append(s.CreateCalls, GatewayCreateCall{BuyOrder: buyOrder, SessionID: sessionID, Amount: amount, ReturnURL: returnURL})
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, buyOrder, sessionID, amount, returnURL)
	}
	return &model.GatewayCreateResponse{Token: "tok-" + buyOrder, URL: "https://gateway.test/pay"}, nil
}

// Commit delegates to the override or authorizes unconditionally.
func (s *GatewayStub) Commit(ctx context.Context, token string) (*model.GatewayCommitResponse, error) {
	s.mu.Lock()
	s.CommitCalls = append(s.CommitCalls, token)
	s.mu.Unlock()
	if s.CommitFn != nil {
		return s.CommitFn(ctx, token)
	}
	return &model.GatewayCommitResponse{Status: model.GatewayStatusAuthorized, AuthorizationCode: "1213"}, nil
}

// Refund delegates to the override or nullifies the full amount.
func (s *GatewayStub) Refund(ctx context.Context, token string, amount int64) (*model.GatewayRefundResponse, error) {
	s.mu.Lock()
	s.RefundCalls = append(s.RefundCalls, GatewayRefundCall{Token: token, Amount: amount})
	s.mu.Unlock()
	if s.RefundFn != nil {
		return s.RefundFn(ctx, token, amount)
	}
	return &model.GatewayRefundResponse{Type: "REVERSED", NullifiedAmount: amount}, nil
}

// NotifierStub records receipt notifications.
type NotifierStub struct {
	mu    sync.Mutex
	Calls []NotifyCall
	Done  chan struct{}
}

// NotifyCall records one PaymentConfirmed invocation.
type NotifyCall struct {
	OrderID int64
	Amount  int64
}

// PaymentConfirmed records the call and signals Done when configured.
func (s *NotifierStub) PaymentConfirmed(ctx context.Context, order *model.Order, payment *model.Payment) {
	s.mu.Lock()
	s.Calls = append(s.Calls, NotifyCall{OrderID: order.ID, Amount: payment.Amount})
	s.mu.Unlock()
	if s.Done != nil {
		select {
		case s.Done <- struct{}{}:
		default:
		}
	}
}

// CallCount reports how many notifications were recorded.
func (s *NotifierStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
