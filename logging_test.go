package configcat

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSDKLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sdkLogger := NewSDKLogger(logger)

	sdkLogger.Debugf("fetching config from %s", "cdn")
	sdkLogger.Infof("config fetched in %dms", 12)
	sdkLogger.Warnf("stale config, age %s", "2m")
	sdkLogger.Errorf("fetch failed: %s", "timeout")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "fetching config from cdn")
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "config fetched in 12ms")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "stale config, age 2m")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "fetch failed: timeout")
}

func TestNewSDKLogger_NilLogger(t *testing.T) {
	sdkLogger := NewSDKLogger(nil)
	assert.NotNil(t, sdkLogger)
	// Must not panic when logging through the default logger.
	sdkLogger.Infof("provider starting")
}
