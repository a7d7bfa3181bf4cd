package notify

import "go.uber.org/fx"

// Module wires the receipt notifier implementation.
var Module = fx.Provide(
	fx.Annotate(NewLogNotifier, fx.As(new(ReceiptNotifier))),
)
