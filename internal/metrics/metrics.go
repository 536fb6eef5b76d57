// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Password login attempts by result.",
	}, []string{"result"})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Accounts created.",
	})

	PasswordResetRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "password_reset_requests_total",
		Help: "Password reset requests accepted, including unknown emails.",
	})

	PasswordResetCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "password_reset_completions_total",
		Help: "Password reset completion attempts by result.",
	}, []string{"result"})

	EmailDeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_delivery_failures_total",
		Help: "Outbound email failures by message type.",
	}, []string{"type"})
)
