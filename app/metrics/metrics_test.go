package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCheckout(t *testing.T) {
	before := testutil.ToFloat64(CheckoutsTotal.WithLabelValues("placed"))
	RecordCheckout("placed")
	assert.Equal(t, before+1, testutil.ToFloat64(CheckoutsTotal.WithLabelValues("placed")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/api/cart", "4xx"))
	ObserveRequest("GET", "/api/cart", 404, time.Now())
	assert.Equal(t, before+1, testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/api/cart", "4xx")))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "2xx", statusLabel(201))
	assert.Equal(t, "3xx", statusLabel(302))
	assert.Equal(t, "4xx", statusLabel(409))
	assert.Equal(t, "5xx", statusLabel(503))
}
