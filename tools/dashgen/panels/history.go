package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// HistoryEntries returns a timeseries panel showing the size of the
// in-memory search history.
func HistoryEntries() *timeseries.PanelBuilder {
	return timeseriesBase("History Size", "Entries in the search history", TSWidth).
		WithTarget(PromQuery(`max by (instance) (offers_history_entries{`+JobSelector+`})`, "{{instance}}", "A")).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// PersistFailures returns a timeseries panel showing swallowed history
// load and save failures.
func PersistFailures() *timeseries.PanelBuilder {
	return timeseriesBase("Persist Failures", "Search history load/save failures per second", TSWidth).
		WithTarget(PromQuery(Rate("offers_history_persist_failures_total", "op"), "{{op}}", "A")).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds())
}
