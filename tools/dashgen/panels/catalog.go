package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const (
	catalogRequests = "offers_catalog_requests_total"
	catalogDuration = "offers_catalog_request_duration_seconds"
	catalogRetries  = "offers_catalog_retries_total"
)

func timeseriesBase(title, description string, span uint32) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(span).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RequestRate returns a timeseries panel showing catalog requests per
// second for each operation.
func RequestRate() *timeseries.PanelBuilder {
	return timeseriesBase("Request Rate", "Catalog API requests per second by operation", TSWidth).
		WithTarget(PromQuery(Rate(catalogRequests, "operation"), "{{operation}}", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// catalog request latencies, retries and rate limiting included.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return timeseriesBase("Latency Percentiles", "Catalog request duration percentiles", TSWidth).
		WithTarget(PromQuery(Quantile(0.50, catalogDuration), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, catalogDuration), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, catalogDuration), "p99", "C")).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// ErrorRate returns a timeseries panel showing failed catalog requests as a
// percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return timeseriesBase("Error Rate %", "Failed catalog requests as percentage of total requests", TSWidth).
		WithTarget(PromQuery(
			`offers:catalog_errors:rate5m / offers:catalog_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// RetryRate returns a timeseries panel showing retried catalog HTTP requests.
func RetryRate() *timeseries.PanelBuilder {
	return timeseriesBase("Retries", "Retried catalog HTTP requests per second", TSWidth).
		WithTarget(PromQuery(`offers:catalog_retries:rate5m`, "retries/s", "A")).
		Unit("reqps").
		Thresholds(ThresholdsGreenYellowRed(0.1, 0.5)).
		ColorScheme(ColorSchemeThresholds())
}
