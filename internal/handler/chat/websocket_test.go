package chat

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatservice "github.com/zhouzirui/folio/backend/internal/service/chat"
)

type frame struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId"`
	Data      map[string]any `json:"data"`
}

func TestWebSocketReply(t *testing.T) {
	st := seededStore()
	r := chi.NewRouter()
	NewWebSocketHandler(chatservice.NewService(st)).RegisterWebSocketRoutes(r)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ws-session"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello frame
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "connected", hello.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "message",
		"data": map[string]any{"content": "what does it cost?", "mode": "Business"},
	}))

	var reply frame
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "reply", reply.Type)
	bot, ok := reply.Data["botResponse"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Business", bot["mode"])

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "audio"}))
	var bad frame
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "error", bad.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "message",
		"data": map[string]any{"content": "", "mode": "Business"},
	}))
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "error", bad.Type)

	assert.Len(t, st.ListChatMessages(context.Background(), "ws-session"), 2)
}
