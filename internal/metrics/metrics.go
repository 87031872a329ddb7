package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SreekarSamrudh/e-shop-central/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// AppMetrics holds all application metrics
type AppMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestsErrors  metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// Database metrics
	DBQueriesTotal  metric.Int64Counter
	DBQueryDuration metric.Float64Histogram

	// Business metrics
	OrdersCreated        metric.Int64Counter
	RevenueTotal         metric.Float64Counter
	LoyaltyPointsAwarded metric.Int64Counter
	ProductsViewed       metric.Int64Counter
	ReviewsSubmitted     metric.Int64Counter
	CartItemsCount       metric.Int64Gauge
	InventoryLevel       metric.Int64Gauge
	ActiveCartsCount     metric.Int64Gauge

	// Rating cache metrics
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter

	serviceName string
}

// InitMetrics initializes the OTLP exporter, meter provider, and the full
// application metric set.
func InitMetrics(ctx context.Context, cfg *config.Config) (*AppMetrics, *sdkmetric.MeterProvider, error) {
	envRes, err := resource.New(ctx, resource.WithFromEnv())
	if err != nil {
		envRes = resource.Empty()
	}

	explicitRes, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.OTELServiceName),
			semconv.ServiceVersion(cfg.OTELServiceVersion),
			attribute.String("deployment.environment", cfg.OTELDeploymentEnvironment),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Explicit attributes take precedence over OTEL_* environment values.
	res, err := resource.Merge(envRes, explicitRes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to merge resources: %w", err)
	}

	exporterOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.OTELExporterOTLPEndpoint),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if cfg.OTELExporterOTLPHeaders != "" {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithHeaders(parseHeaders(cfg.OTELExporterOTLPHeaders)))
	}
	if cfg.OTELExporterOTLPInsecure {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(10*time.Second),
	)

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(cfg.OTELServiceName)

	// Latency buckets in milliseconds, expanded to 60s.
	buckets := []float64{2, 4, 6, 8, 10, 50, 100, 200, 400, 800, 1000, 1400, 2000, 5000, 10000, 15000, 20000, 30000, 45000, 60000}

	m := &AppMetrics{serviceName: cfg.OTELServiceName}

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create http requests counter: %w", err)
	}

	if m.HTTPRequestsErrors, err = meter.Int64Counter(
		"http.server.request.error.count",
		metric.WithDescription("Total number of HTTP error requests"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create http errors counter: %w", err)
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(buckets...),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create http duration histogram: %w", err)
	}

	if m.DBQueriesTotal, err = meter.Int64Counter(
		"db.client.queries.count",
		metric.WithDescription("Total number of database queries"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create db queries counter: %w", err)
	}

	if m.DBQueryDuration, err = meter.Float64Histogram(
		"db.client.queries.duration",
		metric.WithDescription("Database query duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(buckets...),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create db duration histogram: %w", err)
	}

	if m.OrdersCreated, err = meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of orders created"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create orders counter: %w", err)
	}

	if m.RevenueTotal, err = meter.Float64Counter(
		"revenue_total",
		metric.WithDescription("Total revenue from finalized orders"),
		metric.WithUnit("USD"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create revenue counter: %w", err)
	}

	if m.LoyaltyPointsAwarded, err = meter.Int64Counter(
		"loyalty_points_awarded_total",
		metric.WithDescription("Total loyalty points awarded at checkout"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create loyalty points counter: %w", err)
	}

	if m.ProductsViewed, err = meter.Int64Counter(
		"products_viewed_total",
		metric.WithDescription("Total number of product views"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create products viewed counter: %w", err)
	}

	if m.ReviewsSubmitted, err = meter.Int64Counter(
		"reviews_submitted_total",
		metric.WithDescription("Total number of product reviews submitted"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create reviews counter: %w", err)
	}

	if m.CartItemsCount, err = meter.Int64Gauge(
		"cart_items_count",
		metric.WithDescription("Current number of items in user carts"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create cart items gauge: %w", err)
	}

	if m.InventoryLevel, err = meter.Int64Gauge(
		"inventory_level",
		metric.WithDescription("Current stock level for products"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create inventory gauge: %w", err)
	}

	if m.ActiveCartsCount, err = meter.Int64Gauge(
		"active_carts_count",
		metric.WithDescription("Number of carts that currently hold items"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create active carts gauge: %w", err)
	}

	if m.CacheHits, err = meter.Int64Counter(
		"rating_cache_hits_total",
		metric.WithDescription("Aggregate-rating cache hits"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create cache hits counter: %w", err)
	}

	if m.CacheMisses, err = meter.Int64Counter(
		"rating_cache_misses_total",
		metric.WithDescription("Aggregate-rating cache misses"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to create cache misses counter: %w", err)
	}

	return m, meterProvider, nil
}

// WithServiceName adds service.name to attributes
func (m *AppMetrics) WithServiceName(attrs []attribute.KeyValue) []attribute.KeyValue {
	return append(attrs, attribute.String("service.name", m.serviceName))
}

// RecordDBQuery records database query metrics including the SQL statement
func (m *AppMetrics) RecordDBQuery(ctx context.Context, operation, table, statement string, start time.Time, success bool) {
	duration := time.Since(start).Milliseconds()

	status := "success"
	if !success {
		status = "error"
	}

	attrs := []attribute.KeyValue{
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", table),
		attribute.String("db.statement", statement),
		attribute.String("db.system", "mysql"),
		attribute.String("status", status),
	}

	m.DBQueriesTotal.Add(ctx, 1, metric.WithAttributes(m.WithServiceName(attrs)...))
	m.DBQueryDuration.Record(ctx, float64(duration), metric.WithAttributes(m.WithServiceName(attrs)...))
}

// parseHeaders parses a header string in "key1=value1,key2=value2" form.
func parseHeaders(headerStr string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(headerStr, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 {
			headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return headers
}
