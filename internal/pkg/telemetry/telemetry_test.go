package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"fulfillment/internal/pkg/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {
	ctx := context.Background()

	t.Run("none installs only the propagator", func(t *testing.T) {
		shutdown, err := telemetry.Setup(ctx, telemetry.Config{Exporter: telemetry.ExporterNone})
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
		assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	})

	t.Run("stdout exports finished spans", func(t *testing.T) {
		var out bytes.Buffer
		shutdown, err := telemetry.Setup(ctx, telemetry.Config{
			ServiceName: "fulfillment-test",
			Exporter:    telemetry.ExporterStdout,
			Output:      &out,
		})
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(ctx, "place order")
		span.End()
		require.NoError(t, shutdown(ctx))

		assert.Contains(t, out.String(), "place order")
		assert.Contains(t, out.String(), "fulfillment-test")
	})

	t.Run("otlp needs an endpoint", func(t *testing.T) {
		_, err := telemetry.Setup(ctx, telemetry.Config{Exporter: telemetry.ExporterOTLP})
		assert.Error(t, err)
	})

	t.Run("unknown exporter", func(t *testing.T) {
		_, err := telemetry.Setup(ctx, telemetry.Config{Exporter: "zipkin"})
		assert.Error(t, err)
	})
}
