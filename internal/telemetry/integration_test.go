package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestMiddleware verifies spans for routed requests, trace context
// propagation, and that health checks are not traced
func TestMiddleware(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	r := mux.NewRouter()
	r.Use(Middleware("test-service"))
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	r.HandleFunc("/api/date-night", ok)
	r.HandleFunc("/healthz", ok)

	const parentTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"

	tests := []struct {
		name        string
		path        string
		traceParent string
		wantSpans   int
	}{
		{"routed request", "/api/date-night", "", 1},
		{"continues caller trace", "/api/date-night", "00-" + parentTraceID + "-00f067aa0ba902b7-01", 1},
		{"health check untraced", "/healthz", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter.Reset()

			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.traceParent != "" {
				req.Header.Set("traceparent", tt.traceParent)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("Expected status OK, got %d", rr.Code)
			}
			if err := tp.ForceFlush(context.Background()); err != nil {
				t.Errorf("Failed to flush tracer provider: %v", err)
			}

			spans := exporter.GetSpans()
			if len(spans) != tt.wantSpans {
				t.Fatalf("Expected %d spans, got %d", tt.wantSpans, len(spans))
			}
			if tt.traceParent != "" {
				if got := spans[0].SpanContext.TraceID().String(); got != parentTraceID {
					t.Errorf("trace ID = %s, want %s", got, parentTraceID)
				}
			}
		})
	}
}
