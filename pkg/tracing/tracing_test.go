package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

func TestNewTracerProviderWithoutEndpoint(t *testing.T) {
	tp, err := NewTracerProvider(config.Config{}, logger.NewNopLogger(), "solver-test")
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
