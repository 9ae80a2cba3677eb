package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"catalog/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("logger-test", false, &buf)
	defer func() { logger.Logger = zerolog.Nop() }()

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("logger-test").Start(context.Background(), "operation")
	defer span.End()

	logger.Info(ctx).Str("product_id", "42").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "logger-test", entry["service"])
	assert.Equal(t, "42", entry["product_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestWithContextWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("logger-test", false, &buf)
	defer func() { logger.Logger = zerolog.Nop() }()

	logger.Warn(context.Background()).Msg("no span")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.NotContains(t, entry, "trace_id")
}

func TestSetLevel(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)

	logger.SetLevel("error")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	logger.SetLevel("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger.SetLevel("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
