package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests       *prometheus.CounterVec
	calculations   *prometheus.CounterVec
	scenariosSaved prometheus.Counter
	reports        prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_roi_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_roi_calculations_total",
			Help: "Calculations by outcome (computed or fallback).",
		}, []string{"outcome"}),
		scenariosSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invoice_roi_scenarios_saved_total",
			Help: "Scenarios saved to the scenario store.",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invoice_roi_reports_rendered_total",
			Help: "PDF reports rendered.",
		}),
	}

	registerer.MustRegister(m.requests, m.calculations, m.scenariosSaved, m.reports)
	return m
}
