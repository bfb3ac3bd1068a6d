// Package telemetry wires OpenTelemetry tracing for the service.
package telemetry

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config controls initialization of the trace exporter.
type Config struct {
	ServiceName string
	Disable     bool
	// Endpoint is the OTLP gRPC collector, as a URL (http://collector:4317)
	// or a bare host:port. Empty selects the stdout exporter.
	Endpoint string
	Logger   domain.Logger
}

// Init configures the global tracer provider. The returned shutdown function
// flushes pending spans; it is a no-op when tracing is disabled.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if cfg.Disable {
		return func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "pdf-summarizer"
	}

	exp, err := newExporter(ctx, cfg.Endpoint, cfg.Logger)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)),
		resource.WithFromEnv(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Telemetry shutdown failed", err)
			}
			return err
		}
		return nil
	}, nil
}

func newExporter(ctx context.Context, endpoint string, logger domain.Logger) (sdktrace.SpanExporter, error) {
	if endpoint == "" {
		if logger != nil {
			logger.Warn("OTEL_EXPORTER_OTLP_ENDPOINT not set, using stdout trace exporter")
		}
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	target, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(target.hostPort)}
	if target.insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create OTLP exporter: %w", err)
	}
	if logger != nil {
		logger.Info("OTLP trace exporter configured", "endpoint", target.hostPort, "insecure", target.insecure)
	}
	return exp, nil
}

const defaultOTLPPort = "4317"

type otlpTarget struct {
	hostPort string
	insecure bool
}

// parseEndpoint accepts the URL form of OTEL_EXPORTER_OTLP_ENDPOINT as well as
// a bare host:port. Only https gets transport security.
func parseEndpoint(raw string) (otlpTarget, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		if _, _, splitErr := net.SplitHostPort(raw); splitErr == nil && !strings.Contains(raw, "://") {
			return otlpTarget{hostPort: raw, insecure: true}, nil
		}
		return otlpTarget{}, fmt.Errorf("telemetry: invalid OTLP endpoint %q", raw)
	}
	hostPort := u.Host
	if u.Port() == "" {
		hostPort = net.JoinHostPort(u.Hostname(), defaultOTLPPort)
	}
	return otlpTarget{hostPort: hostPort, insecure: u.Scheme == "http"}, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// End finalizes a span and captures the provided error.
func End(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, codes.Ok.String())
	}
	span.End()
}
