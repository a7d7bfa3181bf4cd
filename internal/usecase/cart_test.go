package usecase_test

import (
	. "github.com/sxtvrno/storefront/internal/usecase"

	"context"
	"errors"
	"testing"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	testhelpers "github.com/sxtvrno/storefront/internal/test"
)

func newCatalog() *testhelpers.ProductRepositoryStub {
	return &testhelpers.ProductRepositoryStub{
		Products: map[int64]*model.Product{
			1: {ID: 1, Name: "mug", Price: 500, Stock: 10, Active: true},
			2: {ID: 2, Name: "shirt", Price: 1500, Stock: 3, Active: true},
			3: {ID: 3, Name: "discontinued", Price: 100, Stock: 4, Active: false},
			4: {ID: 4, Name: "sold out", Price: 900, Stock: 0, Active: true},
		},
	}
}

func TestCartUseCaseAddItem(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.CustomerOwner(1)

	cart, err := uc.AddItem(context.Background(), owner, 1, 2)
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	line, ok := cart.Item(1)
	if !ok {
		t.Fatalf("expected line for product 1")
	}
	if line.Quantity != 2 || line.LineTotal != 1000 {
		t.Fatalf("unexpected line %+v", line)
	}
}

func TestCartUseCaseAddItemAccumulates(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.SessionOwner("sess-9")
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, owner, 2, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := uc.AddItem(ctx, owner, 2, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	line, _ := cart.Item(2)
	if line.Quantity != 2 || line.LineTotal != 3000 {
		t.Fatalf("unexpected accumulated line %+v", line)
	}
}

func TestCartUseCaseAddItemClampsToStock(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.CustomerOwner(2)

	cart, err := uc.AddItem(context.Background(), owner, 2, 50)
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	line, _ := cart.Item(2)
	if line.Quantity != 3 {
		t.Fatalf("expected clamp to stock 3, got %d", line.Quantity)
	}
	if line.LineTotal != 4500 {
		t.Fatalf("line total must follow clamped quantity, got %d", line.LineTotal)
	}
}

func TestCartUseCaseAddItemValidation(t *testing.T) {
	uc := NewCartUseCase(testhelpers.NewCartRepositoryStub(), newCatalog())
	owner := model.CustomerOwner(3)
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, owner, 1, 0); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if _, err := uc.AddItem(ctx, owner, 1, -2); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative, got %v", err)
	}
	if _, err := uc.AddItem(ctx, owner, 99, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
	if _, err := uc.AddItem(ctx, owner, 3, 1); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable for inactive product, got %v", err)
	}
}

func TestCartUseCaseAddItemSoldOutClampsToZero(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.CustomerOwner(6)

	cart, err := uc.AddItem(context.Background(), owner, 4, 1)
	if err != nil {
		t.Fatalf("sold-out add must clamp, not fail: %v", err)
	}
	if _, ok := cart.Item(4); ok {
		t.Fatalf("expected no line for a sold-out product, got %+v", cart.Items)
	}
}

func TestCartUseCaseSetQuantity(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.CustomerOwner(4)
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, owner, 1, 5); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cart, err := uc.SetQuantity(ctx, owner, 1, 2)
	if err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	line, _ := cart.Item(1)
	if line.Quantity != 2 || line.LineTotal != 1000 {
		t.Fatalf("unexpected line after set %+v", line)
	}

	if _, err := uc.SetQuantity(ctx, owner, 1, -1); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartUseCaseSetQuantityZeroRemoves(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.CustomerOwner(5)
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, owner, 1, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cart, err := uc.SetQuantity(ctx, owner, 1, 0)
	if err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	if _, ok := cart.Item(1); ok {
		t.Fatalf("expected line removed")
	}
}

func TestCartUseCaseClear(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCartUseCase(carts, newCatalog())
	owner := model.SessionOwner("sess-clear")
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, owner, 1, 2); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := uc.Clear(ctx, owner); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
	cart, err := uc.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}
