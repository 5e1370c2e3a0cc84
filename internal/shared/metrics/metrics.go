// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	CoverGenerated = "generated"
	CoverFallback  = "fallback"
	CoverDisabled  = "disabled"
)

var HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_http_requests_total",
	Help: "HTTP requests by method, route and status",
}, []string{"method", "route", "status"})

var HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "catalog_http_request_duration_seconds",
	Help:    "HTTP request latency",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var CoverGeneration = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_cover_generation_total",
	Help: "Cover URL generation attempts by outcome",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPRequestDuration, CoverGeneration)
}
