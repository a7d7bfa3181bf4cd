package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sxtvrno/storefront/internal/config"
	"github.com/sxtvrno/storefront/internal/domain/repository"
	"github.com/sxtvrno/storefront/internal/notify"
	"github.com/sxtvrno/storefront/internal/pending"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCartUseCase,
	NewProductUseCase,
	NewOrderUseCase,
	newCheckoutUseCase,
)

func newCheckoutUseCase(
	cfg *config.Config,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	payments repository.PaymentRepository,
	gateway PaymentGateway,
	registry *pending.Registry,
	notifier notify.ReceiptNotifier,
	logger *slog.Logger,
) *CheckoutUseCase {
	return NewCheckoutUseCase(orders, carts, products, payments, gateway, registry, notifier, cfg.ReturnURL, logger)
}
