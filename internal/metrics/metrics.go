// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DialogsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_dialogs_open",
			Help: "Number of product dialogs currently in an editing session.",
		})

	SubmitTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_submit_total",
			Help: "Cumulative number of product submissions attempted.",
		})

	SubmitErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_submit_errors_total",
			Help: "Cumulative number of product submissions that failed at the endpoint.",
		})

	ValidationFailTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_validation_fail_total",
			Help: "Cumulative number of submits rejected by client-side validation.",
		})

	StaleResolutionTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_stale_resolution_total",
			Help: "Cumulative number of submission resolutions discarded after dialog close.",
		})
)

func init() {
	prometheus.MustRegister(
		DialogsOpen,
		SubmitTotal,
		SubmitErrorsTotal,
		ValidationFailTotal,
		StaleResolutionTotal,
	)
}
