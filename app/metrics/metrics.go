package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wishcrate"

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	OrderCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_cancellations_total",
			Help:      "Orders cancelled by their owner",
		},
	)

	PaymentNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_notifications_total",
			Help:      "Payment gateway notifications by resulting payment status",
		},
		[]string{"payment_status"},
	)
)

func ObserveRequest(method, path string, status int, started time.Time) {
	HttpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	HttpRequestDuration.WithLabelValues(method, path).Observe(time.Since(started).Seconds())
}

func RecordCheckout(outcome string) {
	CheckoutsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation() {
	OrderCancellationsTotal.Inc()
}

func RecordPaymentNotification(status string) {
	PaymentNotificationsTotal.WithLabelValues(status).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
