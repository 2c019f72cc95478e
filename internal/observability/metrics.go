package observability

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// Metrics holds the process counters exposed on /metrics. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	storeOps    *CounterVec
	storeLat    *HistogramVec
	tastings    *CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("barisense_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"barisense_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("barisense_api_inflight_requests", "In-flight API requests."),
		storeOps:    NewCounterVec("barisense_store_operations_total", "Store load/save calls by backend/operation/status.", []string{"backend", "operation", "status"}),
		storeLat: NewHistogramVec(
			"barisense_store_operation_duration_seconds",
			"Store load/save latency in seconds by backend/operation.",
			[]string{"backend", "operation"},
			[]float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		),
		tastings: NewCounterVec("barisense_tastings_recorded_total", "Tastings recorded by resulting verdict status.", []string{"verdict"}),
	}
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveStoreOperation(backend, operation string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.storeOps.Inc(backend, operation, status)
	m.storeLat.Observe(dur.Seconds(), backend, operation)
}

func (m *Metrics) IncTastingRecorded(verdict string) {
	if m == nil {
		return
	}
	m.tastings.Inc(verdict)
}

func (m *Metrics) StoreOperations(backend, operation, status string) float64 {
	if m == nil {
		return 0
	}
	return m.storeOps.Value(backend, operation, status)
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.storeOps,
		m.storeLat,
		m.tastings,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}
