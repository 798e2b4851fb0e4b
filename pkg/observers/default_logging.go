package observers

import "log/slog"

// NewDefaultLoggingObserver creates a logging observer on slog.Default()
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(slog.Default().With(slog.String("component", "controller")))
}
