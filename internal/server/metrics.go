package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry    *prometheus.Registry
	formRenders *prometheus.CounterVec
	validations *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		formRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepkit_form_renders_total",
			Help: "Number of step forms described.",
		}, []string{"step"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepkit_validations_total",
			Help: "Number of step input validations by outcome.",
		}, []string{"step", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepkit_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.formRenders,
		m.validations,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func outcome(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
