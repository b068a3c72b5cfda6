package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"not found"}`, rec.Body.String())
}

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	SetupSSEHeaders(rec)

	require.NoError(t, SendSSEEvent(rec, rec, "chunk", map[string]string{"content": "hi"}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: chunk\ndata: {\"content\":\"hi\"}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	require.True(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, "ok", dst.Name)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.False(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	assert.False(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
