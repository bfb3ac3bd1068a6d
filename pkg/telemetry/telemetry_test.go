package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Disable: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		raw      string
		hostPort string
		insecure bool
	}{
		{"http://collector:4317", "collector:4317", true},
		{"https://otel.example.com:4317", "otel.example.com:4317", false},
		{"http://collector", "collector:4317", true},
		{"collector:4317", "collector:4317", true},
		{"127.0.0.1:4317", "127.0.0.1:4317", true},
	}
	for _, tt := range tests {
		got, err := parseEndpoint(tt.raw)
		if err != nil {
			t.Fatalf("parseEndpoint(%q) unexpected error: %v", tt.raw, err)
		}
		if got.hostPort != tt.hostPort || got.insecure != tt.insecure {
			t.Fatalf("parseEndpoint(%q) = %+v, want %s insecure=%v", tt.raw, got, tt.hostPort, tt.insecure)
		}
	}
}

func TestParseEndpoint_Invalid(t *testing.T) {
	for _, raw := range []string{"collector", "ftp://collector:4317", "://"} {
		if _, err := parseEndpoint(raw); err == nil {
			t.Fatalf("parseEndpoint(%q) expected error", raw)
		}
	}
}

func TestInit_InvalidEndpoint(t *testing.T) {
	_, err := Init(context.Background(), Config{ServiceName: "test", Endpoint: "collector"})
	if err == nil {
		t.Fatalf("expected error for endpoint without port")
	}
}

func TestEnd_RecordsStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	_, okSpan := tracer.Start(context.Background(), "ok")
	End(okSpan, nil)

	_, failSpan := tracer.Start(context.Background(), "fail")
	End(failSpan, errors.New("boom"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 ended spans, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Ok {
		t.Fatalf("expected ok status, got %v", spans[0].Status().Code)
	}
	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "boom" {
		t.Fatalf("unexpected error status: %+v", spans[1].Status())
	}
}

func TestEnd_NilSpan(t *testing.T) {
	End(nil, errors.New("ignored"))
}
