package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/metrics"
	"github.com/zhouzirui/folio/backend/internal/model/chat"
	chatService "github.com/zhouzirui/folio/backend/internal/service/chat"
	"github.com/zhouzirui/folio/backend/internal/validate"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 54 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WebSocketHandler WebSocket聊天处理器，每条消息帧的处理与 POST /messages 相同
type WebSocketHandler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(chatSvc *chatService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TextMessage 文本消息
type TextMessage struct {
	Content  string         `json:"content"`
	Mode     string         `json:"mode"`
	Metadata map[string]any `json:"metadata"`
}

type outgoingFrame struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.WebsocketOpened()
	defer metrics.WebsocketClosed()
	log.Info().Str("session_id", sessionID).Msg("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	go pingLoop(ctx, conn)

	h.send(conn, outgoingFrame{Type: "connected", SessionID: sessionID})

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session_id", sessionID).Msg("websocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch frame.Type {
		case "message":
			h.handleTextMessage(ctx, conn, sessionID, frame.Data)
		default:
			h.sendError(conn, sessionID, "unsupported message type: "+frame.Type)
		}
	}
}

func (h *WebSocketHandler) handleTextMessage(ctx context.Context, conn *websocket.Conn, sessionID string, raw json.RawMessage) {
	var text TextMessage
	if err := json.Unmarshal(raw, &text); err != nil {
		h.sendError(conn, sessionID, "invalid message payload")
		return
	}
	if err := validate.ChatMessage(sessionID, text.Content, text.Mode); err != nil {
		h.sendError(conn, sessionID, err.Error())
		return
	}

	exchange, err := h.chatSvc.Send(ctx, chat.NewMessage{
		SessionID: sessionID,
		Content:   text.Content,
		Mode:      text.Mode,
		Metadata:  text.Metadata,
	})
	if err != nil {
		log.Error().Stack().Err(err).Str("session_id", sessionID).Msg("failed to process websocket message")
		h.sendError(conn, sessionID, "failed to process chat message")
		return
	}

	h.send(conn, outgoingFrame{Type: "reply", SessionID: sessionID, Data: exchange})
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.send(conn, outgoingFrame{
		Type:      "error",
		SessionID: sessionID,
		Data:      map[string]string{"message": message},
	})
}

func (h *WebSocketHandler) send(conn *websocket.Conn, frame outgoingFrame) {
	frame.Timestamp = time.Now().UnixMilli()
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		log.Warn().Err(err).Str("type", frame.Type).Msg("websocket write failed")
	}
}

// pingLoop 定期发送ping消息，WriteControl 可与其他写操作并发调用
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}
