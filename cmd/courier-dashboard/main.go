// Command courier-dashboard generates the Grafana dashboard JSON for the
// metrics courierd exposes on /metrics.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

func main() {
	builder := dashboard.NewDashboardBuilder("Courier Webhooks").
		Uid("courier-webhooks").
		Tags([]string{"courier", "webhooks", "prometheus"}).
		Refresh("1m").
		Time("now-6h", "now").
		Timezone(common.TimeZoneBrowser)

	builder = builder.WithRow(dashboard.NewRowBuilder("Dispatch"))
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Notification dispatch rate").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(courier_dispatches_total[5m]))`).
					LegendFormat("dispatches"),
			),
	)
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Webhook attempts by provider").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum by (provider) (rate(courier_webhook_attempts_total[5m]))`).
					LegendFormat("{{provider}}"),
			),
	)

	builder = builder.WithRow(dashboard.NewRowBuilder("Delivery Health"))
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Webhook failures by provider").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum by (provider) (rate(courier_webhook_failures_total[5m]))`).
					LegendFormat("{{provider}}"),
			),
	)
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Webhook request duration avg").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(courier_webhook_duration_seconds_sum[5m])) / sum(rate(courier_webhook_duration_seconds_count[5m]))`).
					LegendFormat("avg"),
			),
	)

	dashboardJSON, err := builder.Build()
	if err != nil {
		panic(err)
	}

	outputPath := os.Getenv("DASHBOARD_OUT")
	if outputPath == "" {
		outputPath = "dashboard.json"
	}

	payload, err := json.MarshalIndent(dashboardJSON, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		panic(err)
	}

	fmt.Printf("dashboard written to %s\n", outputPath)
}
