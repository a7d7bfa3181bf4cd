package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

func TestLogNotifierPaymentConfirmed(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	order := &model.Order{ID: 20, CustomerID: 7, Total: 2500, Status: model.OrderStatusPaid}
	payment := &model.Payment{ID: 5, OrderID: 20, Amount: 2500, AuthorizationCode: "1213"}
	notifier.PaymentConfirmed(context.Background(), order, payment)

	logged := buf.String()
	for _, want := range []string{`"order_id":20`, `"customer_id":7`, `"amount":2500`, `"authorization_code":"1213"`} {
		if !strings.Contains(logged, want) {
			t.Fatalf("log line missing %s: %s", want, logged)
		}
	}
}
