// Package prometheus provides a Prometheus-backed implementation of
// metrics.ClientMetrics.
package prometheus

import (
	"fmt"
	"time"

	"github.com/flightsim-go/simconnect/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// clientMetrics is the Prometheus implementation of metrics.ClientMetrics.
type clientMetrics struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	messagesTotal    *prometheus.CounterVec
	requestsActive   *prometheus.GaugeVec
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	exceptionsTotal  *prometheus.CounterVec
	activeRequests   prometheus.Gauge
	connectionState  prometheus.Gauge
	reconnectsTotal  *prometheus.CounterVec
}

// NewClientMetrics creates a new Prometheus-backed ClientMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called), so
// callers can pass the result straight through without an extra check.
func NewClientMetrics() metrics.ClientMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &clientMetrics{
		dispatchTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "simconnect_dispatch_polls_total",
				Help: "Total number of CallDispatch polls by outcome",
			},
			[]string{"delivered"}, // "true", "false"
		),
		dispatchDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "simconnect_dispatch_duration_milliseconds",
				Help: "Duration of a single CallDispatch poll in milliseconds",
				Buckets: []float64{
					0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100,
				},
			},
		),
		messagesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "simconnect_messages_total",
				Help: "Total number of messages received, by message type",
			},
			[]string{"message_type"},
		),
		requestsActive: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "simconnect_requests_in_flight",
				Help: "Current number of in-flight requests, by kind",
			},
			[]string{"kind"},
		),
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "simconnect_requests_total",
				Help: "Total number of completed requests by kind and outcome",
			},
			[]string{"kind", "outcome"}, // outcome: "ok", "cancelled", "exception"
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "simconnect_request_duration_milliseconds",
				Help: "Duration from request issue to completion callback, in milliseconds",
				Buckets: []float64{
					1, 5, 10, 50, 100, 500, 1000, 5000, 10000,
				},
			},
			[]string{"kind"},
		),
		exceptionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "simconnect_exceptions_total",
				Help: "Total number of host exception frames received, by exception code",
			},
			[]string{"code"},
		),
		activeRequests: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "simconnect_requests_active",
				Help: "Current number of in-flight requests across all kinds",
			},
		),
		connectionState: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "simconnect_connection_state",
				Help: "Connection state: 1 if connected to the host, 0 otherwise",
			},
		),
		reconnectsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "simconnect_reconnects_total",
				Help: "Total number of reconnect attempts, by outcome",
			},
			[]string{"outcome"}, // "ok", "error"
		),
	}
}

func (m *clientMetrics) RecordDispatch(duration time.Duration, delivered bool) {
	if m == nil {
		return
	}
	label := "false"
	if delivered {
		label = "true"
	}
	m.dispatchTotal.WithLabelValues(label).Inc()
	m.dispatchDuration.Observe(duration.Seconds() * 1000)
}

func (m *clientMetrics) RecordMessage(messageType string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(messageType).Inc()
}

func (m *clientMetrics) RecordRequestStart(kind string) {
	if m == nil {
		return
	}
	m.requestsActive.WithLabelValues(kind).Inc()
	m.activeRequests.Inc()
}

func (m *clientMetrics) RecordRequestEnd(kind string, duration time.Duration, outcome string) {
	if m == nil {
		return
	}
	m.requestsActive.WithLabelValues(kind).Dec()
	m.activeRequests.Dec()
	m.requestsTotal.WithLabelValues(kind, outcome).Inc()
	m.requestDuration.WithLabelValues(kind).Observe(duration.Seconds() * 1000)
}

func (m *clientMetrics) RecordException(code uint32) {
	if m == nil {
		return
	}
	m.exceptionsTotal.WithLabelValues(formatCode(code)).Inc()
}

func (m *clientMetrics) SetActiveRequests(count int) {
	if m == nil {
		return
	}
	m.activeRequests.Set(float64(count))
}

func (m *clientMetrics) SetConnectionState(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.connectionState.Set(1)
	} else {
		m.connectionState.Set(0)
	}
}

func (m *clientMetrics) RecordReconnect(outcome string) {
	if m == nil {
		return
	}
	m.reconnectsTotal.WithLabelValues(outcome).Inc()
}

func formatCode(code uint32) string {
	return fmt.Sprintf("0x%x", code)
}
