package test

import (
	"context"
	"sync"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub serves catalog data from configured maps.
type ProductRepositoryStub struct {
	GetByIDFn     func(context.Context, int64) (*model.Product, error)
	ListFn        func(context.Context, bool) ([]model.Product, error)
	UpdateStockFn func(context.Context, int64, int) error

	Products    map[int64]*model.Product
	StockCalls  []StockCall
	UpdateError error
}

// StockCall records one UpdateStock invocation.
type StockCall struct {
	ProductID int64
	Stock     int
}

// GetByID returns the configured product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if p, ok := s.Products[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns products from the configured map.
func (s *ProductRepositoryStub) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, activeOnly)
	}
	var out []model.Product
	for _, p := range s.Products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// UpdateStock records the call and mutates the stored product.
func (s *ProductRepositoryStub) UpdateStock(ctx context.Context, id int64, stock int) error {
	if s.UpdateStockFn != nil {
		return s.UpdateStockFn(ctx, id, stock)
	}
	if s.UpdateError != nil {
		return s.UpdateError
	}
	s.StockCalls = append(s.StockCalls, StockCall{ProductID: id, Stock: stock})
	if p, ok := s.Products[id]; ok {
		p.Stock = stock
		return nil
	}
	return domainErrors.ErrNotFound
}

// CartRepositoryStub keeps per-owner carts in memory.
type CartRepositoryStub struct {
	GetOrCreateFn func(context.Context, model.CartOwner) (*model.Cart, error)
	GetFn         func(context.Context, model.CartOwner) (*model.Cart, error)
	SetItemFn     func(context.Context, model.CartOwner, int64, int, int64) error
	ClearFn       func(context.Context, model.CartOwner) error
	MergeFn       func(context.Context, string, int64) error

	Carts      map[model.CartOwner]*model.Cart
	Next       int64
	MergeCalls []MergeCall
}

// MergeCall records one Merge invocation.
type MergeCall struct {
	SessionID  string
	CustomerID int64
}

// NewCartRepositoryStub constructs the stub with initialized storage.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Carts: make(map[model.CartOwner]*model.Cart), Next: 1}
}

func (s *CartRepositoryStub) cart(owner model.CartOwner) *model.Cart {
	if s.Carts == nil {
		s.Carts = make(map[model.CartOwner]*model.Cart)
	}
	if c, ok := s.Carts[owner]; ok {
		return c
	}
	if s.Next == 0 {
		s.Next = 1
	}
	c := &model.Cart{ID: s.Next}
	s.Next++
	if owner.Anonymous() {
		sid := owner.SessionID
		c.SessionID = &sid
	} else {
		cid := owner.CustomerID
		c.CustomerID = &cid
	}
	s.Carts[owner] = c
	return c
}

// GetOrCreate returns the owner's cart, creating it lazily.
func (s *CartRepositoryStub) GetOrCreate(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if s.GetOrCreateFn != nil {
		return s.GetOrCreateFn(ctx, owner)
	}
	return s.cart(owner), nil
}

// Get returns the owner's cart or not found.
func (s *CartRepositoryStub) Get(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, owner)
	}
	if c, ok := s.Carts[owner]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetItem upserts or removes a cart line.
func (s *CartRepositoryStub) SetItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int, lineTotal int64) error {
	if s.SetItemFn != nil {
		return s.SetItemFn(ctx, owner, productID, quantity, lineTotal)
	}
	c := s.cart(owner)
	for i, it := range c.Items {
		if it.ProductID == productID {
			if quantity == 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i] = model.CartItem{ProductID: productID, Quantity: quantity, LineTotal: lineTotal}
			}
			return nil
		}
	}
	if quantity > 0 {
		c.Items = append(c.Items, model.CartItem{ProductID: productID, Quantity: quantity, LineTotal: lineTotal})
	}
	return nil
}

// Clear removes every line from the owner's cart.
func (s *CartRepositoryStub) Clear(ctx context.Context, owner model.CartOwner) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, owner)
	}
	s.cart(owner).Items = nil
	return nil
}

// Merge records the call and moves session items to the customer's cart.
func (s *CartRepositoryStub) Merge(ctx context.Context, sessionID string, customerID int64) error {
	if s.MergeFn != nil {
		return s.MergeFn(ctx, sessionID, customerID)
	}
	s.MergeCalls = append(s.MergeCalls, MergeCall{SessionID: sessionID, CustomerID: customerID})
	src, ok := s.Carts[model.SessionOwner(sessionID)]
	if !ok {
		return domainErrors.ErrNotFound
	}
	dst := s.cart(model.CustomerOwner(customerID))
	dst.Items = append(dst.Items, src.Items...)
	delete(s.Carts, model.SessionOwner(sessionID))
	return nil
}

// PaidCall records one MarkPaid invocation.
type PaidCall struct {
	OrderID int64
	Payment model.Payment
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateWithLinesFn func(context.Context, *model.Order, model.CartOwner) (*model.Order, error)
	GetByIDFn         func(context.Context, int64) (*model.Order, error)
	ListByCustomerFn  func(context.Context, int64) ([]model.Order, error)
	ListAllFn         func(context.Context) ([]model.Order, error)
	MarkPaidFn        func(context.Context, int64, model.Payment) (bool, error)
	MarkCancelledFn   func(context.Context, int64) (bool, error)
	SetFulfillmentFn  func(context.Context, int64, model.OrderStatus, model.OrderStatus) (bool, error)

	mu             sync.Mutex
	Orders         map[int64]*model.Order
	Next           int64
	PaidCalls      []PaidCall
	CancelledCalls []int64
}

// NewOrderRepositoryStub constructs the stub with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Put seeds an order into the stub.
func (s *OrderRepositoryStub) Put(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	s.Orders[order.ID] = order
}

// CreateWithLines assigns an id and stores the order.
func (s *OrderRepositoryStub) CreateWithLines(ctx context.Context, order *model.Order, owner model.CartOwner) (*model.Order, error) {
	if s.CreateWithLinesFn != nil {
		return s.CreateWithLinesFn(ctx, order, owner)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	s.Orders[stored.ID] = &stored
	return &stored, nil
}

// GetByID returns the stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		copy := *o
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer filters stored orders by customer.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.ListByCustomerFn != nil {
		return s.ListByCustomerFn(ctx, customerID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

// ListAll returns every stored order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		out = append(out, *o)
	}
	return out, nil
}

// MarkPaid flips CREATED to PAID once, mimicking the conditional update.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID int64, payment model.Payment) (bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID, payment)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if o.Status != model.OrderStatusCreated {
		return false, nil
	}
	o.Status = model.OrderStatusPaid
	s.PaidCalls = append(s.PaidCalls, PaidCall{OrderID: orderID, Payment: payment})
	return true, nil
}

// MarkCancelled flips CREATED to CANCELLED once.
func (s *OrderRepositoryStub) MarkCancelled(ctx context.Context, orderID int64) (bool, error) {
	if s.MarkCancelledFn != nil {
		return s.MarkCancelledFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if o.Status != model.OrderStatusCreated {
		return false, nil
	}
	o.Status = model.OrderStatusCancelled
	s.CancelledCalls = append(s.CancelledCalls, orderID)
	return true, nil
}

// SetFulfillment applies the guarded transition against the stored order.
func (s *OrderRepositoryStub) SetFulfillment(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	if s.SetFulfillmentFn != nil {
		return s.SetFulfillmentFn(ctx, orderID, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

// PaymentRepositoryStub serves payment history from configured data.
type PaymentRepositoryStub struct {
	GetAuthorizedFn func(context.Context, int64) (*model.Payment, error)
	ListByOrderFn   func(context.Context, int64) ([]model.Payment, error)
	MarkRefundedFn  func(context.Context, int64) error

	Payments      map[int64][]model.Payment
	RefundedCalls []int64
}

// GetAuthorizedByOrder returns the first authorized payment for the order.
func (s *PaymentRepositoryStub) GetAuthorizedByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.GetAuthorizedFn != nil {
		return s.GetAuthorizedFn(ctx, orderID)
	}
	for _, p := range s.Payments[orderID] {
		if p.Status == model.PaymentStatusAuthorized {
			copy := p
			return &copy, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByOrder returns the configured history.
func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	return s.Payments[orderID], nil
}

// MarkRefunded records the call and flips the stored payment status.
func (s *PaymentRepositoryStub) MarkRefunded(ctx context.Context, paymentID int64) error {
	if s.MarkRefundedFn != nil {
		return s.MarkRefundedFn(ctx, paymentID)
	}
	s.RefundedCalls = append(s.RefundedCalls, paymentID)
	for orderID, list := range s.Payments {
		for i, p := range list {
			if p.ID == paymentID {
				s.Payments[orderID][i].Status = model.PaymentStatusRefunded
				return nil
			}
		}
	}
	return domainErrors.ErrNotFound
}
