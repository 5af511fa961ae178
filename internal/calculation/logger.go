package calculation

import "go.uber.org/zap"

// Logger receives the engine's per-regime trace, break-even search warnings
// and run failures. A *zap.SugaredLogger fits directly.
type Logger interface {
	Debugf(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
}

var _ Logger = (*zap.SugaredLogger)(nil)

// NopLogger discards everything; engines start with it.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
