package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEndRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, ok := Start(context.Background(), "task.create", attribute.String("task.id", "t1"))
	End(ok, nil)
	_, failed := Start(context.Background(), "task.delete")
	End(failed, errors.New("store down"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 ended spans, got %d", len(spans))
	}
	if spans[0].Name() != "task.create" || spans[0].Status().Code != codes.Unset {
		t.Fatalf("unexpected span %s status %v", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "store down" {
		t.Fatalf("expected error status, got %v", spans[1].Status())
	}
	if len(spans[1].Events()) != 1 {
		t.Fatalf("expected recorded error event, got %d", len(spans[1].Events()))
	}
}

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), nil, "", "workforce", "test")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
