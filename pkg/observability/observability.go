package observability

import (
	"context"

	"supplygenie/backend/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// SetupTracing initializes OpenTelemetry tracing with a stdout exporter
// (replace with OTLP when a collector is available)
func SetupTracing(serviceName string) func() {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		logger.GetGlobal().LogError(err, "failed to initialize stdouttrace exporter")
		return func() {}
	}
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	provider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return func() { _ = provider.Shutdown(context.Background()) }
}

// SetupMetrics initializes the Prometheus metrics exporter
func SetupMetrics() *metric.MeterProvider {
	exp, err := otelprom.New()
	if err != nil {
		logger.GetGlobal().LogError(err, "failed to initialize prometheus exporter")
		return nil
	}
	mp := metric.NewMeterProvider(metric.WithReader(exp))
	otel.SetMeterProvider(mp)
	return mp
}

// Chat operation metrics

var (
	// ChatOps counts chat store operations by operation and result
	ChatOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supplygenie_chat_operations_total",
		Help: "Chat store operations by operation and result",
	}, []string{"operation", "result"})

	// StoreLatency observes document store round-trip latency per operation
	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supplygenie_store_latency_seconds",
		Help:    "Document store round-trip latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)
