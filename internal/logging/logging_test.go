package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pdf3md/profilectl/internal/logging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewCLILevels(t *testing.T) {
	var buf bytes.Buffer
	quiet := logging.NewCLI(&buf, false)
	quiet.Debug("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	verbose := logging.NewCLI(&buf, true)
	verbose.Debug("request", zap.String("path", "/api/profiles"))
	assert.Contains(t, buf.String(), "request")
	assert.Contains(t, buf.String(), "/api/profiles")
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	ctx := logging.WithLogger(context.Background(), logger)
	logging.FromContext(ctx, nil).Info("from context")
	assert.Equal(t, 1, logs.Len())

	fallback := logging.FromContext(context.Background(), logger)
	assert.Same(t, logger, fallback)

	assert.NotNil(t, logging.FromContext(nil, nil)) //nolint:staticcheck
}
