package repository

import (
	"context"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// PaymentRepository reads the append-only payment history. Inserts happen
// inside OrderRepository.MarkPaid to keep them atomic with the status flip.
type PaymentRepository interface {
	GetAuthorizedByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error)
	// MarkRefunded records that the payment was nullified at the gateway.
	MarkRefunded(ctx context.Context, paymentID int64) error
}
