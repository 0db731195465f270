package odata

import (
	"fmt"
	"log/slog"
)

// restyLogger routes resty's own diagnostics into the service logger at debug level.
type restyLogger struct {
	logger *slog.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Debug("resty_error", "message", fmt.Sprintf(format, v...))
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Debug("resty_warning", "message", fmt.Sprintf(format, v...))
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug("resty_debug", "message", fmt.Sprintf(format, v...))
}
