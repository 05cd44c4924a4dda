// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AdobeAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adobe_api_requests_total",
			Help: "Total number of User Management API requests by status class",
		},
		[]string{"status_class"},
	)

	AdobeAPIRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adobe_api_retries_total",
			Help: "Total number of retried User Management API requests",
		},
	)

	ReportNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_notifications_total",
			Help: "Total number of report deliveries by channel and outcome",
		},
		[]string{"channel", "status"},
	)

	MonitorRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_runs_total",
			Help: "Total number of monitor runs by outcome",
		},
		[]string{"status"},
	)
)
