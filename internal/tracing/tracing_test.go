package tracing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsStatusAndAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := InitWithExporter("staffplan-test", "dev", exporter)
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	ctx, parent := StartSpan(context.Background(), "parent")
	_, child := StartSpan(ctx, "child")
	child.WithAttributes(map[string]string{"tenant": "t1"}).SetInt("rows", 3)
	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	require.Equal(t, "child", spans[0].Name)
	require.Equal(t, codes.Error, spans[0].Status.Code)
	require.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	require.Equal(t, codes.Ok, spans[1].Status.Code)
}

func TestInit_DisabledAndFile(t *testing.T) {
	shutdown, err := Init("staffplan-test", "dev", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	path := filepath.Join(t.TempDir(), "traces.json")
	shutdown, err = Init("staffplan-test", "dev", path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.NoError(t, shutdown(context.Background()))
}

func TestNilSpanIsSafe(t *testing.T) {
	var sp *Span
	sp.WithAttributes(map[string]string{"a": "b"})
	sp.SetInt("n", 1)
	EndSpan(sp, nil)
}
