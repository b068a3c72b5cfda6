package chat

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/model/chat"
	chatService "github.com/zhouzirui/folio/backend/internal/service/chat"
	"github.com/zhouzirui/folio/backend/internal/store"
	"github.com/zhouzirui/folio/backend/internal/validate"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	store   store.Store
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, st store.Store) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		store:   st,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/modes", h.handleListModes)
	r.Get("/modes/default", h.handleDefaultMode)
	r.Get("/modes/{id}", h.handleGetMode)
	r.Get("/messages/{sessionID}", h.handleListMessages)
	r.With(middleware.RequestSize(utils.MaxBodyBytes)).Post("/messages", h.handleCreateMessage)
	r.Post("/sessions", h.handleCreateSession)
}

type modeResponse struct {
	Mode chat.Mode `json:"mode"`
}

func (h *Handler) handleListModes(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]chat.Mode{
		"modes": h.store.ListChatModes(r.Context()),
	})
}

func (h *Handler) handleDefaultMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.store.GetDefaultChatMode(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "No chat modes available")
		return
	}
	utils.RespondJSON(w, http.StatusOK, modeResponse{Mode: mode})
}

func (h *Handler) handleGetMode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid mode id")
		return
	}

	mode, ok := h.store.GetChatMode(r.Context(), id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "Chat mode not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, modeResponse{Mode: mode})
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	utils.RespondJSON(w, http.StatusOK, map[string][]chat.Message{
		"messages": h.store.ListChatMessages(r.Context(), sessionID),
	})
}

type createMessageRequest struct {
	SessionID string         `json:"sessionId"`
	Content   string         `json:"content"`
	IsBot     chat.Flag      `json:"isBot"`
	Mode      string         `json:"mode"`
	Metadata  map[string]any `json:"metadata"`
}

// handleCreateMessage 保存消息并返回机器人回复
func (h *Handler) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var payload createMessageRequest
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}

	if err := validate.ChatMessage(payload.SessionID, payload.Content, payload.Mode); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exchange, err := h.chatSvc.Send(r.Context(), chat.NewMessage{
		SessionID: payload.SessionID,
		Content:   payload.Content,
		IsBot:     payload.IsBot,
		Mode:      payload.Mode,
		Metadata:  payload.Metadata,
	})
	if err != nil {
		log.Error().Stack().Err(err).Str("session_id", payload.SessionID).Msg("failed to process chat message")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, exchange)
}

// handleCreateSession 分配新的会话 ID
func (h *Handler) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"sessionId": uuid.NewString()})
}
