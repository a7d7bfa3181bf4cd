package test

import "go.uber.org/fx"

// LifecycleRecorder collects appended hooks so tests can run OnStart and
// OnStop by hand instead of spinning up a full fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when the app requests termination.
type ShutdownerStub struct {
	Called chan struct{}
}

func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
