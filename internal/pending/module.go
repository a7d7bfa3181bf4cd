package pending

import "go.uber.org/fx"

// Module provides the shared pending-transaction registry.
var Module = fx.Provide(NewRegistry)
