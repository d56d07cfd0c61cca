package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

var _ ports.Metrics = (*Metrics)(nil)

func TestMetrics_ObserveUpstream(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.ObserveUpstream("chat", ports.OutcomeSuccess, 0.2)
	m.ObserveUpstream("chat", ports.OutcomeSuccess, 0.3)
	m.ObserveUpstream("summarize", ports.OutcomeUnconfigured, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("chat", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("summarize", "unconfigured")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.upstreamDuration))
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.DocumentTruncated()
	m.ConversationExported()
	m.ConversationExported()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentTruncated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.exports))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ConversationExported()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "neurobot_exports_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
