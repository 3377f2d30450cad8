package rules

// AlertRules returns a PrometheusRule CR containing alert rules for processes
// embedding the offer catalog client.
func AlertRules() PrometheusRule {
	return newPrometheusRule("offers-alerts", RuleGroup{
		Name: "offers-alerts",
		Rules: []Rule{
			{
				Alert: "OffersCatalogHighErrorRate",
				Expr:  `offers:catalog_errors:rate5m / offers:catalog_requests:rate5m > 0.05`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "High catalog API error rate",
					"description": "More than 5% of catalog API requests have failed over the last 5 minutes.",
				},
			},
			{
				Alert: "OffersCatalogSlow",
				Expr:  `histogram_quantile(0.95, sum by (le) (rate(offers_catalog_request_duration_seconds_bucket[5m]))) > 2`,
				For:   "10m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Catalog API requests are slow",
					"description": "The 95th percentile catalog request duration has been above 2s for 10 minutes.",
				},
			},
			{
				Alert: "OffersCatalogRetrying",
				Expr:  `offers:catalog_retries:rate5m > 0.5`,
				For:   "10m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Catalog requests are being retried",
					"description": "Connection failures or 5xx responses are forcing more than 0.5 retries/s.",
				},
			},
			{
				Alert: "OffersTokenRegistrationFailing",
				Expr:  `offers:token_errors:rate5m > 0`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "User token registration is failing",
					"description": "Device registration has been failing for 5 minutes. Searches and redemption codes are unavailable.",
				},
			},
			{
				Alert: "OffersHistoryPersistFailures",
				Expr:  `increase(offers_history_persist_failures_total[15m]) > 0`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "info",
				},
				Annotations: map[string]string{
					"summary":     "Search history could not be persisted",
					"description": "Search history loads or saves failed; the history is kept in memory only.",
				},
			},
		},
	})
}
