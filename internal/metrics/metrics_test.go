package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordChatReply(t *testing.T) {
	before := testutil.ToFloat64(chatReplies.WithLabelValues("pricing"))
	RecordChatReply("pricing")
	assert.Equal(t, before+1, testutil.ToFloat64(chatReplies.WithLabelValues("pricing")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTPRequest(http.MethodGet, "/api/health", "200", time.Millisecond)
	RecordContactMessage()

	resp := httptest.NewRecorder()
	Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `folio_http_requests_total{method="GET",route="/api/health",status="200"}`)
	assert.Contains(t, resp.Body.String(), "folio_contact_messages_total")
}
