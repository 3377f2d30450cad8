// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/offer-catalog/tools/dashgen/panels"
)

// BuildOverview constructs the offer catalog client dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Offer Catalog Client").
		Uid("offers-overview").
		Tags([]string{"offers", "offer-catalog"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar()).
		WithVariable(jobVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.RequestsStat()).
		WithPanel(panels.AvailabilityStat()).
		WithPanel(panels.P95Stat()).
		WithPanel(panels.RetriesStat()))

	b.WithRow(dashboard.NewRowBuilder("Catalog API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RetryRate()))

	b.WithRow(dashboard.NewRowBuilder("User Tokens").
		WithPanel(panels.TokenFetches()).
		WithPanel(panels.RegistrationFailures()))

	b.WithRow(dashboard.NewRowBuilder("Search History").
		WithPanel(panels.HistoryEntries()).
		WithPanel(panels.PersistFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}

func jobVar() *dashboard.QueryVariableBuilder {
	return dashboard.NewQueryVariableBuilder("job").
		Label("Job").
		Datasource(panels.DSRef()).
		Query(dashboard.StringOrMap{String: cog.ToPtr("label_values(offers_catalog_requests_total, job)")}).
		Multi(true).
		IncludeAll(true)
}
