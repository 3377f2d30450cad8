package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("offers-recording-rules", RuleGroup{
		Name: "offers-recording",
		Rules: []Rule{
			{
				Record: "offers:catalog_requests:rate5m",
				Expr:   `sum(rate(offers_catalog_requests_total[5m]))`,
			},
			{
				Record: "offers:catalog_errors:rate5m",
				Expr:   `sum(rate(offers_catalog_requests_total{status="error"}[5m]))`,
			},
			{
				Record: "offers:catalog_retries:rate5m",
				Expr:   `sum(rate(offers_catalog_retries_total[5m]))`,
			},
			{
				Record: "offers:token_errors:rate5m",
				Expr:   `sum(rate(offers_token_fetches_total{status="error"}[5m]))`,
			},
			{
				Record: "offers:history_persist_failures:rate5m",
				Expr:   `sum(rate(offers_history_persist_failures_total[5m]))`,
			},
		},
	})
}
