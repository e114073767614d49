package configcat

import (
	"fmt"
	"log/slog"

	sdk "github.com/configcat/go-sdk/v9"
)

// slogSDKLogger adapts a *slog.Logger to the ConfigCat SDK's logger
// interface, so the wrapped client logs through the same sink as the
// provider. The SDK's level filter still applies before messages reach
// the adapter; set it via [WithSDKLogLevel].
type slogSDKLogger struct {
	logger *slog.Logger
}

// NewSDKLogger creates a ConfigCat SDK logger backed by the given
// slog.Logger. If logger is nil, slog.Default() is used.
func NewSDKLogger(logger *slog.Logger) sdk.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogSDKLogger{logger: logger}
}

func (l *slogSDKLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *slogSDKLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *slogSDKLogger) Warnf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *slogSDKLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}
