package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func statBase(title, description string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// RequestsStat returns a stat panel showing the total catalog request rate.
func RequestsStat() *stat.PanelBuilder {
	return statBase("Requests/s", "Catalog API requests per second").
		WithTarget(PromQuery(Rate(catalogRequests), "", "A")).
		Unit("reqps").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds())
}

// AvailabilityStat returns a stat panel showing the share of successful
// catalog requests.
func AvailabilityStat() *stat.PanelBuilder {
	return statBase("Availability", "Successful catalog requests over the last 5m").
		WithTarget(PromQuery(
			`(1 - offers:catalog_errors:rate5m / offers:catalog_requests:rate5m) * 100`,
			"", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsRedGreen(99)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground)
}

// P95Stat returns a stat panel showing the p95 catalog latency.
func P95Stat() *stat.PanelBuilder {
	return statBase("p95 Latency", "95th percentile catalog request duration").
		WithTarget(PromQuery(Quantile(0.95, catalogDuration), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(1, 2)).
		ColorScheme(ColorSchemeThresholds())
}

// RetriesStat returns a stat panel showing retries over the last hour.
func RetriesStat() *stat.PanelBuilder {
	return statBase("Retries (1h)", "Retried catalog HTTP requests in the last hour").
		WithTarget(PromQuery(`sum(increase(`+catalogRetries+`{`+JobSelector+`}[1h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(10, 100)).
		ColorScheme(ColorSchemeThresholds())
}
