package engine

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the engine's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the engine's logger. Call before any context is
// created.
func SetLogger(l *zap.Logger) {
	logger = l
}

// debug gates the lifecycle trace. Precondition violations the engine
// does not enforce are reported here and nowhere else.
var debug = false

// SetDebug toggles lifecycle tracing through the configured logger.
func SetDebug(on bool) {
	debug = on
}

func debugf(format string, args ...any) {
	if debug {
		Logger().Sugar().Debugf(format, args...)
	}
}
