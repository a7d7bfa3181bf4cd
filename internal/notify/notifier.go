package notify

import (
	"context"
	"log/slog"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// ReceiptNotifier delivers a purchase receipt after a confirmed payment.
// Delivery is fire-and-forget; implementations must not block the checkout
// path or surface errors into it.
type ReceiptNotifier interface {
	PaymentConfirmed(ctx context.Context, order *model.Order, payment *model.Payment)
}

// LogNotifier records the notification instead of sending mail. The real
// mail sender is an external collaborator behind the same interface.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) PaymentConfirmed(ctx context.Context, order *model.Order, payment *model.Payment) {
	n.logger.Info("receipt notification queued",
		slog.Int64("order_id", order.ID),
		slog.Int64("customer_id", order.CustomerID),
		slog.Int64("amount", payment.Amount),
		slog.String("authorization_code", payment.AuthorizationCode),
	)
}
