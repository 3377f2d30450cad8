package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const tokenFetches = "offers_token_fetches_total"

// TokenFetches returns a timeseries panel showing user token lookups split
// into cache hits, registrations and failures.
func TokenFetches() *timeseries.PanelBuilder {
	return timeseriesBase("Token Fetches", "User token fetches per second by outcome", TSWidth).
		WithTarget(PromQuery(Rate(tokenFetches, "status"), "{{status}}", "A")).
		Unit("ops").
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// RegistrationFailures returns a stat panel showing failed device
// registrations over the last hour.
func RegistrationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Registration Failures (1h)").
		Description("Device registrations that failed in the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(offers_token_fetches_total{status="error", `+JobSelector+`}[1h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
